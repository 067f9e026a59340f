package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/repository"
)

type CreateProjectInput struct {
	Name        string
	Description string
	Status      string
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *string
}

type ProjectService struct {
	repo repository.ProjectRepository
}

func NewProjectService(repo repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) Create(ctx context.Context, userID string, input CreateProjectInput) (model.Project, error) {
	if input.Name == "" {
		return model.Project{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	status := model.ProjectStatus(input.Status)
	if input.Status == "" {
		status = model.ProjectStatusActive
	} else if !status.IsValid() {
		return model.Project{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, input.Status)
	}

	project := model.Project{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

func (s *ProjectService) GetByID(ctx context.Context, userID, projectID string) (model.Project, error) {
	project, err := s.repo.GetByID(ctx, userID, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, projectID string, input UpdateProjectInput) (model.Project, error) {
	existing, err := s.repo.GetByID(ctx, userID, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to get project for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return model.Project{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		existing.Name = *input.Name
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Status != nil {
		status := model.ProjectStatus(*input.Status)
		if !status.IsValid() {
			return model.Project{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *input.Status)
		}
		existing.Status = status
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to update project: %w", err)
	}
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	err := s.repo.Delete(ctx, userID, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]model.Project, error) {
	projects, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}
