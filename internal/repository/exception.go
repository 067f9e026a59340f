package repository

import (
	"context"
	"time"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

type ExceptionRepository interface {
	// ListBySeries returns every exception (with its override, if any) for
	// the given series of one kind.
	ListBySeries(ctx context.Context, kind schedule.Kind, seriesIDs []string) ([]model.Exception, error)
	// MarkDeleted records a deleted-occurrence exception for (series, date).
	MarkDeleted(ctx context.Context, kind schedule.Kind, seriesID string, date time.Time) error
	// UpsertOverride materializes (or updates) the override row for one
	// occurrence and links it from the exception record.
	UpsertOverride(ctx context.Context, ov model.InstanceOverride) (model.InstanceOverride, error)
}
