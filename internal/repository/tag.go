package repository

import (
	"context"

	"github.com/aandrewjuan1/planner-api/internal/model"
)

type TagRepository interface {
	Create(ctx context.Context, tag model.Tag) (model.Tag, error)
	Delete(ctx context.Context, userID, tagID string) error
	ListByUser(ctx context.Context, userID string) ([]model.Tag, error)
}
