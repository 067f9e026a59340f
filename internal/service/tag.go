package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/repository"
)

type TagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) Create(ctx context.Context, userID, name, color string) (model.Tag, error) {
	if name == "" {
		return model.Tag{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	tag, err := s.repo.Create(ctx, model.Tag{UserID: userID, Name: name, Color: color})
	if err != nil {
		return model.Tag{}, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, userID, tagID string) error {
	err := s.repo.Delete(ctx, userID, tagID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

func (s *TagService) List(ctx context.Context, userID string) ([]model.Tag, error) {
	tags, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}
