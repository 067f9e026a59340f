package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/repository"
	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

// FeedQuery is the serializable view state of one feed request. Unknown
// view/sort values fall back to defaults downstream; they never fail the
// request.
type FeedQuery struct {
	View       schedule.ViewMode
	Anchor     time.Time
	WeekAnchor time.Time
	Filter     schedule.Query
	SortKey    schedule.SortKey
	Direction  schedule.Direction
}

type Feed struct {
	Window    schedule.Window     `json:"window"`
	Instances []schedule.Instance `json:"instances"`
}

// FeedService assembles the unified scheduling feed: it expands every
// accessible task and event into concrete occurrences for the requested
// window and runs them through the filter and sort stages. All four views
// consume the same pipeline output.
type FeedService struct {
	tasks      repository.TaskRepository
	events     repository.EventRepository
	exceptions repository.ExceptionRepository
	weekStart  time.Weekday
	logger     *slog.Logger
}

func NewFeedService(
	tasks repository.TaskRepository,
	events repository.EventRepository,
	exceptions repository.ExceptionRepository,
	weekStart time.Weekday,
	logger *slog.Logger,
) *FeedService {
	return &FeedService{
		tasks:      tasks,
		events:     events,
		exceptions: exceptions,
		weekStart:  weekStart,
		logger:     logger,
	}
}

func (s *FeedService) Assemble(ctx context.Context, userID string, q FeedQuery) (Feed, error) {
	window := schedule.ResolveWindow(q.View, q.Anchor, q.WeekAnchor, s.weekStart, time.Now())

	tasks, err := s.tasks.ListAccessible(ctx, userID)
	if err != nil {
		return Feed{}, fmt.Errorf("failed to load tasks for feed: %w", err)
	}
	events, err := s.events.ListAccessible(ctx, userID)
	if err != nil {
		return Feed{}, fmt.Errorf("failed to load events for feed: %w", err)
	}

	taskExceptions, err := s.loadExceptions(ctx, schedule.KindTask, recurringTaskIDs(tasks))
	if err != nil {
		return Feed{}, err
	}
	eventExceptions, err := s.loadExceptions(ctx, schedule.KindEvent, recurringEventIDs(events))
	if err != nil {
		return Feed{}, err
	}

	var instances []schedule.Instance
	for _, t := range tasks {
		instances = s.appendExpanded(ctx, instances, taskBase(t), taskExceptions[t.ID], window)
	}
	for _, e := range events {
		instances = s.appendExpanded(ctx, instances, eventBase(e), eventExceptions[e.ID], window)
	}

	filter := q.Filter
	filter.Schedulable = q.View.TimeGrid()

	filtered := schedule.Filter(instances, filter)
	sorted := schedule.Sort(filtered, q.SortKey, q.Direction)

	return Feed{Window: window, Instances: sorted}, nil
}

// appendExpanded expands one base item, skipping it on failure so a single
// malformed item cannot take down the whole feed.
func (s *FeedService) appendExpanded(ctx context.Context, instances []schedule.Instance, base schedule.Base, exceptions schedule.ExceptionSet, window schedule.Window) []schedule.Instance {
	expanded, err := schedule.Expand(base, exceptions, window)
	if err != nil {
		s.logger.WarnContext(ctx, "skipping item with failed expansion",
			"kind", base.Kind,
			"item_id", base.ID,
			"error", err,
		)
		return instances
	}
	return append(instances, expanded...)
}

func (s *FeedService) loadExceptions(ctx context.Context, kind schedule.Kind, seriesIDs []string) (map[string]schedule.ExceptionSet, error) {
	if len(seriesIDs) == 0 {
		return map[string]schedule.ExceptionSet{}, nil
	}
	rows, err := s.exceptions.ListBySeries(ctx, kind, seriesIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s exceptions: %w", kind, err)
	}
	return model.ExceptionSets(rows), nil
}

func recurringTaskIDs(tasks []model.Task) []string {
	var ids []string
	for _, t := range tasks {
		if t.Recurrence != nil {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func recurringEventIDs(events []model.Event) []string {
	var ids []string
	for _, e := range events {
		if e.Recurrence != nil {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
