package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/schedule"
	"github.com/aandrewjuan1/planner-api/internal/service"
)

func recurringTask(perm model.Permission) *mockTaskRepo {
	return &mockTaskRepo{
		getByIDFn: func(ctx context.Context, userID, taskID string) (model.Task, model.Permission, error) {
			return model.Task{
				ID:        taskID,
				UserID:    "owner-1",
				Title:     "daily review",
				Status:    model.TaskStatusToDo,
				CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				Recurrence: &schedule.RecurrenceRule{
					Freq:     schedule.FreqDaily,
					Interval: 1,
					Start:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
				},
			}, perm, nil
		},
	}
}

func TestOccurrenceSetStatus(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var upserted model.InstanceOverride
	exceptions := emptyExceptionRepo()
	exceptions.upsertOverrideFn = func(ctx context.Context, ov model.InstanceOverride) (model.InstanceOverride, error) {
		upserted = ov
		ov.ID = "ov-1"
		return ov, nil
	}

	svc := service.NewOccurrenceService(recurringTask(model.PermissionOwner), emptyEventRepo(), exceptions)

	got, err := svc.SetStatus(context.Background(), "owner-1", schedule.KindTask, "t1", date, schedule.StatusTaskDone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "ov-1" {
		t.Errorf("expected materialized override id, got %q", got.ID)
	}
	if upserted.SeriesID != "t1" || upserted.Status != schedule.StatusTaskDone {
		t.Errorf("unexpected upsert payload: %+v", upserted)
	}
	if !upserted.OccurrenceDate.Equal(date) {
		t.Errorf("expected occurrence date %s, got %s", date, upserted.OccurrenceDate)
	}
}

func TestOccurrenceSetStatusValidation(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		kind   schedule.Kind
		status string
	}{
		{"invalid task status", schedule.KindTask, "completed"},
		{"invalid event status", schedule.KindEvent, "done"},
		{"unknown kind", "note", "done"},
	}

	svc := service.NewOccurrenceService(recurringTask(model.PermissionOwner), emptyEventRepo(), emptyExceptionRepo())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetStatus(context.Background(), "owner-1", tt.kind, "t1", date, tt.status)
			if !errors.Is(err, service.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestOccurrenceViewPermissionForbidden(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	svc := service.NewOccurrenceService(recurringTask(model.PermissionView), emptyEventRepo(), emptyExceptionRepo())

	_, err := svc.SetStatus(context.Background(), "viewer-1", schedule.KindTask, "t1", date, schedule.StatusTaskDone)
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for view-only access, got %v", err)
	}
}

func TestOccurrenceNotRecurring(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tasks := &mockTaskRepo{
		getByIDFn: func(ctx context.Context, userID, taskID string) (model.Task, model.Permission, error) {
			return model.Task{ID: taskID, Status: model.TaskStatusToDo}, model.PermissionOwner, nil
		},
	}

	svc := service.NewOccurrenceService(tasks, emptyEventRepo(), emptyExceptionRepo())

	_, err := svc.SetStatus(context.Background(), "owner-1", schedule.KindTask, "t1", date, schedule.StatusTaskDone)
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-recurring item, got %v", err)
	}
}

func TestOccurrenceDateNotInCadence(t *testing.T) {
	// Weekly Mondays; a Tuesday date has no occurrence.
	tasks := &mockTaskRepo{
		getByIDFn: func(ctx context.Context, userID, taskID string) (model.Task, model.Permission, error) {
			return model.Task{
				ID:        taskID,
				Status:    model.TaskStatusToDo,
				CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				Recurrence: &schedule.RecurrenceRule{
					Freq:      schedule.FreqWeekly,
					Interval:  1,
					ByWeekday: []time.Weekday{time.Monday},
					Start:     time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
				},
			}, model.PermissionOwner, nil
		},
	}

	svc := service.NewOccurrenceService(tasks, emptyEventRepo(), emptyExceptionRepo())

	tuesday := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	_, err := svc.SetStatus(context.Background(), "owner-1", schedule.KindTask, "t1", tuesday, schedule.StatusTaskDone)
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for off-cadence date, got %v", err)
	}
}

func TestOccurrenceDelete(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var deletedSeries string
	var deletedDate time.Time
	exceptions := emptyExceptionRepo()
	exceptions.markDeletedFn = func(ctx context.Context, kind schedule.Kind, seriesID string, d time.Time) error {
		deletedSeries = seriesID
		deletedDate = d
		return nil
	}

	svc := service.NewOccurrenceService(recurringTask(model.PermissionEdit), emptyEventRepo(), exceptions)

	if err := svc.Delete(context.Background(), "collab-1", schedule.KindTask, "t1", date); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedSeries != "t1" || !deletedDate.Equal(date) {
		t.Errorf("unexpected delete call: series=%s date=%s", deletedSeries, deletedDate)
	}
}

func TestOccurrenceMove(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	newStart := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	newEnd := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	badEnd := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   *time.Time
		end     *time.Time
		wantErr error
	}{
		{"move start and end", &newStart, &newEnd, nil},
		{"move start only", &newStart, nil, nil},
		{"no new datetime", nil, nil, service.ErrInvalidInput},
		{"end precedes start", &newStart, &badEnd, service.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exceptions := emptyExceptionRepo()
			exceptions.upsertOverrideFn = func(ctx context.Context, ov model.InstanceOverride) (model.InstanceOverride, error) {
				return ov, nil
			}
			svc := service.NewOccurrenceService(recurringTask(model.PermissionOwner), emptyEventRepo(), exceptions)

			got, err := svc.Move(context.Background(), "owner-1", schedule.KindTask, "t1", date, tt.start, tt.end)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.StartAt != tt.start || got.EndAt != tt.end {
				t.Errorf("override payload mismatch: %+v", got)
			}
		})
	}
}
