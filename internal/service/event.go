package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/repository"
)

type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	Color       string
	AllDay      bool
	Status      string
	StartAt     *string // RFC3339
	EndAt       *string // RFC3339
	TagIDs      []string
	Recurrence  *RecurrenceInput
}

type UpdateEventInput struct {
	Title           *string
	Description     *string
	Location        *string
	Color           *string
	AllDay          *bool
	StartAt         *string
	EndAt           *string
	TagIDs          []string // nil = unchanged, empty = clear
	Recurrence      *RecurrenceInput
	ClearRecurrence bool
}

type EventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) Create(ctx context.Context, userID string, input CreateEventInput) (model.Event, error) {
	if input.Title == "" {
		return model.Event{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	status := model.EventStatus(input.Status)
	if input.Status == "" {
		status = model.EventStatusScheduled
	} else if !status.IsValid() {
		return model.Event{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, input.Status)
	}

	startAt, err := parseDateTime("start_at", input.StartAt)
	if err != nil {
		return model.Event{}, err
	}
	endAt, err := parseDateTime("end_at", input.EndAt)
	if err != nil {
		return model.Event{}, err
	}
	if startAt == nil {
		return model.Event{}, fmt.Errorf("%w: start_at is required", ErrInvalidInput)
	}
	if endAt != nil && endAt.Before(*startAt) {
		return model.Event{}, fmt.Errorf("%w: end_at precedes start_at", ErrInvalidInput)
	}

	rule, err := parseRecurrence(input.Recurrence)
	if err != nil {
		return model.Event{}, err
	}

	event := model.Event{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Color:       input.Color,
		AllDay:      input.AllDay,
		Status:      status,
		StartAt:     startAt,
		EndAt:       endAt,
		Recurrence:  rule,
		TagIDs:      input.TagIDs,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (s *EventService) GetByID(ctx context.Context, userID, eventID string) (model.Event, error) {
	event, _, err := s.repo.GetByID(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, ErrNotFound
		}
		return model.Event{}, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, userID, eventID string, input UpdateEventInput) (model.Event, error) {
	existing, perm, err := s.repo.GetByID(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, ErrNotFound
		}
		return model.Event{}, fmt.Errorf("failed to get event for update: %w", err)
	}
	if !perm.CanEdit() {
		return model.Event{}, ErrForbidden
	}

	if input.Title != nil {
		if *input.Title == "" {
			return model.Event{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Location != nil {
		existing.Location = *input.Location
	}
	if input.Color != nil {
		existing.Color = *input.Color
	}
	if input.AllDay != nil {
		existing.AllDay = *input.AllDay
	}
	if input.StartAt != nil {
		startAt, err := parseDateTime("start_at", input.StartAt)
		if err != nil {
			return model.Event{}, err
		}
		existing.StartAt = startAt
	}
	if input.EndAt != nil {
		endAt, err := parseDateTime("end_at", input.EndAt)
		if err != nil {
			return model.Event{}, err
		}
		existing.EndAt = endAt
	}
	if input.TagIDs != nil {
		existing.TagIDs = input.TagIDs
	}
	switch {
	case input.ClearRecurrence:
		existing.Recurrence = nil
	case input.Recurrence != nil:
		rule, err := parseRecurrence(input.Recurrence)
		if err != nil {
			return model.Event{}, err
		}
		existing.Recurrence = rule
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, userID, eventID string) error {
	err := s.repo.Delete(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (s *EventService) UpdateStatus(ctx context.Context, userID, eventID string, status model.EventStatus) (model.Event, error) {
	if !status.IsValid() {
		return model.Event{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, status)
	}

	existing, perm, err := s.repo.GetByID(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, ErrNotFound
		}
		return model.Event{}, fmt.Errorf("failed to get event for status update: %w", err)
	}
	if !perm.CanEdit() {
		return model.Event{}, ErrForbidden
	}

	existing.Status = status

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to update event status: %w", err)
	}
	return updated, nil
}
