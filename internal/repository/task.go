package repository

import (
	"context"

	"github.com/aandrewjuan1/planner-api/internal/model"
)

type TaskRepository interface {
	Create(ctx context.Context, task model.Task) (model.Task, error)
	// GetByID returns the task together with the caller's access level.
	// sql.ErrNoRows means the task does not exist or is not accessible.
	GetByID(ctx context.Context, userID, taskID string) (model.Task, model.Permission, error)
	Update(ctx context.Context, task model.Task) (model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	// ListAccessible returns every task the user owns or collaborates on.
	ListAccessible(ctx context.Context, userID string) ([]model.Task, error)
}
