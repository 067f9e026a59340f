package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/repository"
)

type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   *string
	Status      string
	Priority    string
	Complexity  string
	DurationMin int
	StartAt     *string // RFC3339
	EndAt       *string // RFC3339
	TagIDs      []string
	Recurrence  *RecurrenceInput
}

type UpdateTaskInput struct {
	Title           *string
	Description     *string
	ProjectID       *string
	Priority        *string
	Complexity      *string
	DurationMin     *int
	StartAt         *string
	EndAt           *string
	TagIDs          []string // nil = unchanged, empty = clear
	Recurrence      *RecurrenceInput
	ClearRecurrence bool
}

type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (model.Task, error) {
	if input.Title == "" {
		return model.Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	status := model.TaskStatus(input.Status)
	if input.Status == "" {
		status = model.TaskStatusToDo
	} else if !status.IsValid() {
		return model.Task{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, input.Status)
	}

	priority := model.TaskPriority(input.Priority)
	if input.Priority == "" {
		priority = model.TaskPriorityMedium
	} else if !priority.IsValid() {
		return model.Task{}, fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, input.Priority)
	}

	complexity := model.TaskComplexity(input.Complexity)
	if input.Complexity == "" {
		complexity = model.TaskComplexityModerate
	} else if !complexity.IsValid() {
		return model.Task{}, fmt.Errorf("%w: invalid complexity %q", ErrInvalidInput, input.Complexity)
	}

	if input.DurationMin < 0 {
		return model.Task{}, fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}

	startAt, err := parseDateTime("start_at", input.StartAt)
	if err != nil {
		return model.Task{}, err
	}
	endAt, err := parseDateTime("end_at", input.EndAt)
	if err != nil {
		return model.Task{}, err
	}
	if startAt != nil && endAt != nil && endAt.Before(*startAt) {
		return model.Task{}, fmt.Errorf("%w: end_at precedes start_at", ErrInvalidInput)
	}

	rule, err := parseRecurrence(input.Recurrence)
	if err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		UserID:      userID,
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		Complexity:  complexity,
		DurationMin: input.DurationMin,
		StartAt:     startAt,
		EndAt:       endAt,
		Recurrence:  rule,
		TagIDs:      input.TagIDs,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

func (s *TaskService) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	task, _, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, input UpdateTaskInput) (model.Task, error) {
	existing, perm, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task for update: %w", err)
	}
	if !perm.CanEdit() {
		return model.Task{}, ErrForbidden
	}

	if input.Title != nil {
		if *input.Title == "" {
			return model.Task{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.ProjectID != nil {
		if *input.ProjectID == "" {
			existing.ProjectID = nil
		} else {
			existing.ProjectID = input.ProjectID
		}
	}
	if input.Priority != nil {
		p := model.TaskPriority(*input.Priority)
		if !p.IsValid() {
			return model.Task{}, fmt.Errorf("%w: invalid priority %q", ErrInvalidInput, *input.Priority)
		}
		existing.Priority = p
	}
	if input.Complexity != nil {
		c := model.TaskComplexity(*input.Complexity)
		if !c.IsValid() {
			return model.Task{}, fmt.Errorf("%w: invalid complexity %q", ErrInvalidInput, *input.Complexity)
		}
		existing.Complexity = c
	}
	if input.DurationMin != nil {
		if *input.DurationMin < 0 {
			return model.Task{}, fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
		}
		existing.DurationMin = *input.DurationMin
	}
	if input.StartAt != nil {
		startAt, err := parseDateTime("start_at", input.StartAt)
		if err != nil {
			return model.Task{}, err
		}
		existing.StartAt = startAt
	}
	if input.EndAt != nil {
		endAt, err := parseDateTime("end_at", input.EndAt)
		if err != nil {
			return model.Task{}, err
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
			return model.Task{}, err
		}
		existing.Recurrence = rule
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	err := s.repo.Delete(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, userID, taskID string, status model.TaskStatus) (model.Task, error) {
	if !status.IsValid() {
		return model.Task{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, status)
	}

	existing, perm, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task for status update: %w", err)
	}
	if !perm.CanEdit() {
		return model.Task{}, ErrForbidden
	}

	existing.Status = status

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task status: %w", err)
	}
	return updated, nil
}
