package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/aandrewjuan1/planner-api/internal/middleware"
	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

type mockTaskRepo struct {
	createFn         func(ctx context.Context, task model.Task) (model.Task, error)
	getByIDFn        func(ctx context.Context, userID, taskID string) (model.Task, model.Permission, error)
	updateFn         func(ctx context.Context, task model.Task) (model.Task, error)
	deleteFn         func(ctx context.Context, userID, taskID string) error
	listAccessibleFn func(ctx context.Context, userID string) ([]model.Task, error)
}

func (m *mockTaskRepo) Create(ctx context.Context, task model.Task) (model.Task, error) {
	return m.createFn(ctx, task)
}
func (m *mockTaskRepo) GetByID(ctx context.Context, userID, taskID string) (model.Task, model.Permission, error) {
	return m.getByIDFn(ctx, userID, taskID)
}
func (m *mockTaskRepo) Update(ctx context.Context, task model.Task) (model.Task, error) {
	return m.updateFn(ctx, task)
}
func (m *mockTaskRepo) Delete(ctx context.Context, userID, taskID string) error {
	return m.deleteFn(ctx, userID, taskID)
}
func (m *mockTaskRepo) ListAccessible(ctx context.Context, userID string) ([]model.Task, error) {
	return m.listAccessibleFn(ctx, userID)
}

type mockEventRepo struct {
	createFn         func(ctx context.Context, event model.Event) (model.Event, error)
	getByIDFn        func(ctx context.Context, userID, eventID string) (model.Event, model.Permission, error)
	updateFn         func(ctx context.Context, event model.Event) (model.Event, error)
	deleteFn         func(ctx context.Context, userID, eventID string) error
	listAccessibleFn func(ctx context.Context, userID string) ([]model.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event model.Event) (model.Event, error) {
	return m.createFn(ctx, event)
}
func (m *mockEventRepo) GetByID(ctx context.Context, userID, eventID string) (model.Event, model.Permission, error) {
	return m.getByIDFn(ctx, userID, eventID)
}
func (m *mockEventRepo) Update(ctx context.Context, event model.Event) (model.Event, error) {
	return m.updateFn(ctx, event)
}
func (m *mockEventRepo) Delete(ctx context.Context, userID, eventID string) error {
	return m.deleteFn(ctx, userID, eventID)
}
func (m *mockEventRepo) ListAccessible(ctx context.Context, userID string) ([]model.Event, error) {
	return m.listAccessibleFn(ctx, userID)
}

type mockExceptionRepo struct {
	listBySeriesFn   func(ctx context.Context, kind schedule.Kind, seriesIDs []string) ([]model.Exception, error)
	markDeletedFn    func(ctx context.Context, kind schedule.Kind, seriesID string, date time.Time) error
	upsertOverrideFn func(ctx context.Context, ov model.InstanceOverride) (model.InstanceOverride, error)
}

func (m *mockExceptionRepo) ListBySeries(ctx context.Context, kind schedule.Kind, seriesIDs []string) ([]model.Exception, error) {
	return m.listBySeriesFn(ctx, kind, seriesIDs)
}
func (m *mockExceptionRepo) MarkDeleted(ctx context.Context, kind schedule.Kind, seriesID string, date time.Time) error {
	return m.markDeletedFn(ctx, kind, seriesID, date)
}
func (m *mockExceptionRepo) UpsertOverride(ctx context.Context, ov model.InstanceOverride) (model.InstanceOverride, error) {
	return m.upsertOverrideFn(ctx, ov)
}

func emptyTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{
		listAccessibleFn: func(ctx context.Context, userID string) ([]model.Task, error) { return nil, nil },
	}
}

func emptyEventRepo() *mockEventRepo {
	return &mockEventRepo{
		listAccessibleFn: func(ctx context.Context, userID string) ([]model.Event, error) { return nil, nil },
	}
}

func emptyExceptionRepo() *mockExceptionRepo {
	return &mockExceptionRepo{
		listBySeriesFn: func(ctx context.Context, kind schedule.Kind, seriesIDs []string) ([]model.Exception, error) {
			return nil, nil
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authedRequest builds a request carrying the given user in its context, the
// way the auth middleware would.
func authedRequest(method, target string, body io.Reader, userID string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.SetUserID(req.Context(), userID))
}

func timePtr(t time.Time) *time.Time { return &t }
