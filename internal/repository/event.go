package repository

import (
	"context"

	"github.com/aandrewjuan1/planner-api/internal/model"
)

type EventRepository interface {
	Create(ctx context.Context, event model.Event) (model.Event, error)
	// GetByID returns the event together with the caller's access level.
	// sql.ErrNoRows means the event does not exist or is not accessible.
	GetByID(ctx context.Context, userID, eventID string) (model.Event, model.Permission, error)
	Update(ctx context.Context, event model.Event) (model.Event, error)
	Delete(ctx context.Context, userID, eventID string) error
	// ListAccessible returns every event the user owns or collaborates on.
	ListAccessible(ctx context.Context, userID string) ([]model.Event, error)
}
