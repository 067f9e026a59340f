package http_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	plannerhttp "github.com/aandrewjuan1/planner-api/internal/http"
	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/schedule"
	"github.com/aandrewjuan1/planner-api/internal/service"
)

// Stub repositories for router tests. Routing only needs handlers that do
// not blow up; behavior is covered by the handler and service tests.

type stubTaskRepo struct{}

func (s *stubTaskRepo) Create(ctx context.Context, task model.Task) (model.Task, error) {
	return task, nil
}
func (s *stubTaskRepo) GetByID(ctx context.Context, userID, taskID string) (model.Task, model.Permission, error) {
	return model.Task{}, "", sql.ErrNoRows
}
func (s *stubTaskRepo) Update(ctx context.Context, task model.Task) (model.Task, error) {
	return task, nil
}
func (s *stubTaskRepo) Delete(ctx context.Context, userID, taskID string) error { return nil }
func (s *stubTaskRepo) ListAccessible(ctx context.Context, userID string) ([]model.Task, error) {
	return nil, nil
}

type stubEventRepo struct{}

func (s *stubEventRepo) Create(ctx context.Context, event model.Event) (model.Event, error) {
	return event, nil
}
func (s *stubEventRepo) GetByID(ctx context.Context, userID, eventID string) (model.Event, model.Permission, error) {
	return model.Event{}, "", sql.ErrNoRows
}
func (s *stubEventRepo) Update(ctx context.Context, event model.Event) (model.Event, error) {
	return event, nil
}
func (s *stubEventRepo) Delete(ctx context.Context, userID, eventID string) error { return nil }
func (s *stubEventRepo) ListAccessible(ctx context.Context, userID string) ([]model.Event, error) {
	return nil, nil
}

type stubExceptionRepo struct{}

func (s *stubExceptionRepo) ListBySeries(ctx context.Context, kind schedule.Kind, seriesIDs []string) ([]model.Exception, error) {
	return nil, nil
}
func (s *stubExceptionRepo) MarkDeleted(ctx context.Context, kind schedule.Kind, seriesID string, date time.Time) error {
	return nil
}
func (s *stubExceptionRepo) UpsertOverride(ctx context.Context, ov model.InstanceOverride) (model.InstanceOverride, error) {
	return ov, nil
}

type stubProjectRepo struct{}

func (s *stubProjectRepo) Create(ctx context.Context, project model.Project) (model.Project, error) {
	return project, nil
}
func (s *stubProjectRepo) GetByID(ctx context.Context, userID, projectID string) (model.Project, error) {
	return model.Project{}, sql.ErrNoRows
}
func (s *stubProjectRepo) Update(ctx context.Context, project model.Project) (model.Project, error) {
	return project, nil
}
func (s *stubProjectRepo) Delete(ctx context.Context, userID, projectID string) error { return nil }
func (s *stubProjectRepo) ListByUser(ctx context.Context, userID string) ([]model.Project, error) {
	return nil, nil
}

type stubTagRepo struct{}

func (s *stubTagRepo) Create(ctx context.Context, tag model.Tag) (model.Tag, error) { return tag, nil }
func (s *stubTagRepo) Delete(ctx context.Context, userID, tagID string) error       { return nil }
func (s *stubTagRepo) ListByUser(ctx context.Context, userID string) ([]model.Tag, error) {
	return nil, nil
}

func newTestServices() plannerhttp.Services {
	tasks := &stubTaskRepo{}
	events := &stubEventRepo{}
	exceptions := &stubExceptionRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return plannerhttp.Services{
		Tasks:       service.NewTaskService(tasks),
		Events:      service.NewEventService(events),
		Occurrences: service.NewOccurrenceService(tasks, events, exceptions),
		Projects:    service.NewProjectService(&stubProjectRepo{}),
		Tags:        service.NewTagService(&stubTagRepo{}),
		Feed:        service.NewFeedService(tasks, events, exceptions, time.Monday, logger),
	}
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router := plannerhttp.NewRouter(newTestServices())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", result["status"])
	}
}

func TestRouter_FeedEndpointRegistered(t *testing.T) {
	router := plannerhttp.NewRouter(newTestServices())

	// The router does not enforce auth; that's the middleware's job. An
	// empty user just yields an empty feed here.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?view=list", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
}

func TestRouter_ItemEndpointsRegistered(t *testing.T) {
	router := plannerhttp.NewRouter(newTestServices())

	// A GET on a nonexistent ID proves the route is mounted: 404 from the
	// handler carries a JSON error body, unlike the mux's plain 404.
	paths := []string{
		"/api/v1/tasks/nope",
		"/api/v1/events/nope",
		"/api/v1/projects/nope",
	}
	for _, p := range paths {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected status 404, got %d", p, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s: expected JSON error body, got Content-Type %s", p, ct)
		}
	}
}

func TestRouter_AuthNotMountedWithoutProvider(t *testing.T) {
	// No identity provider configured: auth routes must 404.
	router := plannerhttp.NewRouter(newTestServices())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := plannerhttp.NewRouter(newTestServices())

	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
