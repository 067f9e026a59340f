package repository

import (
	"context"

	"github.com/aandrewjuan1/planner-api/internal/model"
)

type ProjectRepository interface {
	Create(ctx context.Context, project model.Project) (model.Project, error)
	GetByID(ctx context.Context, userID, projectID string) (model.Project, error)
	Update(ctx context.Context, project model.Project) (model.Project, error)
	Delete(ctx context.Context, userID, projectID string) error
	ListByUser(ctx context.Context, userID string) ([]model.Project, error)
}
