package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/repository"
	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

// OccurrenceService handles the per-occurrence commands against recurring
// series: status changes, deletions and moves. The override row backing an
// occurrence is materialized on first mutation; non-recurring items are
// mutated through their own item endpoints instead.
type OccurrenceService struct {
	tasks      repository.TaskRepository
	events     repository.EventRepository
	exceptions repository.ExceptionRepository
}

func NewOccurrenceService(
	tasks repository.TaskRepository,
	events repository.EventRepository,
	exceptions repository.ExceptionRepository,
) *OccurrenceService {
	return &OccurrenceService{tasks: tasks, events: events, exceptions: exceptions}
}

func (s *OccurrenceService) SetStatus(ctx context.Context, userID string, kind schedule.Kind, seriesID string, date time.Time, status string) (model.InstanceOverride, error) {
	if err := validateStatus(kind, status); err != nil {
		return model.InstanceOverride{}, err
	}
	if err := s.checkOccurrence(ctx, userID, kind, seriesID, date); err != nil {
		return model.InstanceOverride{}, err
	}

	ov, err := s.exceptions.UpsertOverride(ctx, model.InstanceOverride{
		Kind:           kind,
		SeriesID:       seriesID,
		OccurrenceDate: date,
		Status:         status,
	})
	if err != nil {
		return model.InstanceOverride{}, fmt.Errorf("failed to set occurrence status: %w", err)
	}
	return ov, nil
}

func (s *OccurrenceService) Delete(ctx context.Context, userID string, kind schedule.Kind, seriesID string, date time.Time) error {
	if err := s.checkOccurrence(ctx, userID, kind, seriesID, date); err != nil {
		return err
	}
	if err := s.exceptions.MarkDeleted(ctx, kind, seriesID, date); err != nil {
		return fmt.Errorf("failed to delete occurrence: %w", err)
	}
	return nil
}

func (s *OccurrenceService) Move(ctx context.Context, userID string, kind schedule.Kind, seriesID string, date time.Time, newStart, newEnd *time.Time) (model.InstanceOverride, error) {
	if newStart == nil && newEnd == nil {
		return model.InstanceOverride{}, fmt.Errorf("%w: a new start or end is required", ErrInvalidInput)
	}
	if newStart != nil && newEnd != nil && newEnd.Before(*newStart) {
		return model.InstanceOverride{}, fmt.Errorf("%w: end precedes start", ErrInvalidInput)
	}
	if err := s.checkOccurrence(ctx, userID, kind, seriesID, date); err != nil {
		return model.InstanceOverride{}, err
	}

	ov, err := s.exceptions.UpsertOverride(ctx, model.InstanceOverride{
		Kind:           kind,
		SeriesID:       seriesID,
		OccurrenceDate: date,
		StartAt:        newStart,
		EndAt:          newEnd,
	})
	if err != nil {
		return model.InstanceOverride{}, fmt.Errorf("failed to move occurrence: %w", err)
	}
	return ov, nil
}

// checkOccurrence verifies that the series exists, is editable by the user,
// is actually recurring, and has a live occurrence on the given date. The
// date check runs the real expander over the single-day window so cadence
// and exception rules are applied exactly once, here and in the feed.
func (s *OccurrenceService) checkOccurrence(ctx context.Context, userID string, kind schedule.Kind, seriesID string, date time.Time) error {
	base, perm, err := s.loadBase(ctx, userID, kind, seriesID)
	if err != nil {
		return err
	}
	if !perm.CanEdit() {
		return ErrForbidden
	}
	if base.Rule == nil {
		return fmt.Errorf("%w: %s is not recurring, mutate the item itself", ErrInvalidInput, kind)
	}

	day := schedule.Window{Start: startOfDay(date), End: startOfDay(date).AddDate(0, 0, 1)}
	instances, err := schedule.Expand(base, nil, day)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(instances) == 0 {
		return fmt.Errorf("%w: no occurrence on %s", ErrNotFound, date.Format(schedule.DateKeyLayout))
	}
	return nil
}

func (s *OccurrenceService) loadBase(ctx context.Context, userID string, kind schedule.Kind, seriesID string) (schedule.Base, model.Permission, error) {
	switch kind {
	case schedule.KindTask:
		task, perm, err := s.tasks.GetByID(ctx, userID, seriesID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return schedule.Base{}, "", ErrNotFound
			}
			return schedule.Base{}, "", fmt.Errorf("failed to get task: %w", err)
		}
		return taskBase(task), perm, nil
	case schedule.KindEvent:
		event, perm, err := s.events.GetByID(ctx, userID, seriesID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return schedule.Base{}, "", ErrNotFound
			}
			return schedule.Base{}, "", fmt.Errorf("failed to get event: %w", err)
		}
		return eventBase(event), perm, nil
	default:
		return schedule.Base{}, "", fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}
}

func validateStatus(kind schedule.Kind, status string) error {
	switch kind {
	case schedule.KindTask:
		if !model.TaskStatus(status).IsValid() {
			return fmt.Errorf("%w: invalid task status %q", ErrInvalidInput, status)
		}
	case schedule.KindEvent:
		if !model.EventStatus(status).IsValid() {
			return fmt.Errorf("%w: invalid event status %q", ErrInvalidInput, status)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
