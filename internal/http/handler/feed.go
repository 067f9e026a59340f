package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/aandrewjuan1/planner-api/internal/schedule"
	"github.com/aandrewjuan1/planner-api/internal/service"
)

type FeedHandler struct {
	svc *service.FeedService
}

func NewFeedHandler(svc *service.FeedService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// feedInstance decorates an instance with its time-grid placement for the
// day/week views. Snapping is a display concern; the raw start/end stay
// untouched.
type feedInstance struct {
	schedule.Instance
	GridStart *time.Time `json:"grid_start,omitempty"`
	GridEnd   *time.Time `json:"grid_end,omitempty"`
}

type feedResponse struct {
	Window    schedule.Window                    `json:"window"`
	Instances []feedInstance                     `json:"instances,omitempty"`
	Buckets   map[schedule.Bucket][]feedInstance `json:"buckets,omitempty"`
}

// ServeHTTP handles GET /api/v1/feed.
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}

	userID := getUserID(r)
	query := parseFeedQuery(r)

	feed, err := h.svc.Assemble(r.Context(), userID, query)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	grid := query.View.TimeGrid()
	instances := make([]feedInstance, 0, len(feed.Instances))
	for _, in := range feed.Instances {
		instances = append(instances, decorate(in, grid))
	}

	resp := feedResponse{Window: feed.Window}
	if query.View == schedule.ViewBoard {
		resp.Buckets = bucketDecorated(feed.Instances, grid)
	} else {
		resp.Instances = instances
	}

	WriteJSON(w, http.StatusOK, resp)
}

// parseFeedQuery maps URL parameters onto the feed query. Unknown view,
// sort or filter values fall back to defaults downstream instead of
// failing the request.
func parseFeedQuery(r *http.Request) service.FeedQuery {
	q := r.URL.Query()

	query := service.FeedQuery{
		View:      schedule.ViewMode(q.Get("view")),
		SortKey:   schedule.SortKey(q.Get("sort")),
		Direction: schedule.Direction(q.Get("direction")),
	}

	if d, err := time.Parse(schedule.DateKeyLayout, q.Get("date")); err == nil {
		query.Anchor = d
	}
	if d, err := time.Parse(schedule.DateKeyLayout, q.Get("week_of")); err == nil {
		query.WeekAnchor = d
	}

	if kind := schedule.Kind(q.Get("type")); kind.IsValid() {
		query.Filter.Kind = kind
	}
	query.Filter.Priority = q.Get("priority")
	query.Filter.Status = q.Get("status")
	if tags := q.Get("tags"); tags != "" {
		for _, id := range strings.Split(tags, ",") {
			if id = strings.TrimSpace(id); id != "" {
				query.Filter.TagIDs = append(query.Filter.TagIDs, id)
			}
		}
	}

	return query
}

func decorate(in schedule.Instance, grid bool) feedInstance {
	out := feedInstance{Instance: in}
	if grid {
		if start, end, ok := schedule.GridSlot(in); ok {
			out.GridStart = &start
			out.GridEnd = &end
		}
	}
	return out
}

func bucketDecorated(instances []schedule.Instance, grid bool) map[schedule.Bucket][]feedInstance {
	buckets := schedule.BucketByStatus(instances)
	out := make(map[schedule.Bucket][]feedInstance, len(buckets))
	for bucket, members := range buckets {
		decorated := make([]feedInstance, 0, len(members))
		for _, in := range members {
			decorated = append(decorated, decorate(in, grid))
		}
		out[bucket] = decorated
	}
	return out
}
