package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/aandrewjuan1/planner-api/internal/model"
	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

type PostgresExceptionRepository struct {
	db *sql.DB
}

func NewPostgresException(db *sql.DB) *PostgresExceptionRepository {
	return &PostgresExceptionRepository{db: db}
}

func (r *PostgresExceptionRepository) ListBySeries(ctx context.Context, kind schedule.Kind, seriesIDs []string) ([]model.Exception, error) {
	if len(seriesIDs) == 0 {
		return []model.Exception{}, nil
	}

	query := `
		SELECT x.series_id, x.occurrence_date, x.deleted,
			o.id, o.status, o.start_at, o.end_at, o.created_at, o.updated_at
		FROM occurrence_exceptions x
		LEFT JOIN occurrence_overrides o ON o.id = x.override_id
		WHERE x.kind = $1 AND x.series_id = ANY($2)`

	rows, err := r.db.QueryContext(ctx, query, string(kind), pq.Array(seriesIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}
	defer rows.Close()

	exceptions := []model.Exception{}
	for rows.Next() {
		var (
			ex        model.Exception
			ovID      sql.NullString
			ovStatus  sql.NullString
			ovStart   sql.NullTime
			ovEnd     sql.NullTime
			ovCreated sql.NullTime
			ovUpdated sql.NullTime
		)
		err := rows.Scan(
			&ex.SeriesID, &ex.OccurrenceDate, &ex.Deleted,
			&ovID, &ovStatus, &ovStart, &ovEnd, &ovCreated, &ovUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exception: %w", err)
		}
		ex.Kind = kind
		if ovID.Valid {
			ov := &model.InstanceOverride{
				ID:             ovID.String,
				Kind:           kind,
				SeriesID:       ex.SeriesID,
				OccurrenceDate: ex.OccurrenceDate,
				Status:         ovStatus.String,
				CreatedAt:      ovCreated.Time,
				UpdatedAt:      ovUpdated.Time,
			}
			if ovStart.Valid {
				t := ovStart.Time
				ov.StartAt = &t
			}
			if ovEnd.Valid {
				t := ovEnd.Time
				ov.EndAt = &t
			}
			ex.Override = ov
		}
		exceptions = append(exceptions, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exceptions: %w", err)
	}
	return exceptions, nil
}

func (r *PostgresExceptionRepository) MarkDeleted(ctx context.Context, kind schedule.Kind, seriesID string, date time.Time) error {
	query := `
		INSERT INTO occurrence_exceptions (kind, series_id, occurrence_date, deleted, override_id)
		VALUES ($1, $2, $3, true, NULL)
		ON CONFLICT (kind, series_id, occurrence_date)
		DO UPDATE SET deleted = true, override_id = NULL`

	if _, err := r.db.ExecContext(ctx, query, string(kind), seriesID, dateOnly(date)); err != nil {
		return fmt.Errorf("failed to mark occurrence deleted: %w", err)
	}
	return nil
}

func (r *PostgresExceptionRepository) UpsertOverride(ctx context.Context, ov model.InstanceOverride) (model.InstanceOverride, error) {
	if ov.ID == "" {
		ov.ID = uuid.NewString()
	}

	query := `
		INSERT INTO occurrence_overrides (id, kind, series_id, occurrence_date, status, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (kind, series_id, occurrence_date)
		DO UPDATE SET
			status = CASE WHEN EXCLUDED.status <> '' THEN EXCLUDED.status ELSE occurrence_overrides.status END,
			start_at = COALESCE(EXCLUDED.start_at, occurrence_overrides.start_at),
			end_at = COALESCE(EXCLUDED.end_at, occurrence_overrides.end_at),
			updated_at = now()
		RETURNING id, status, start_at, end_at, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		ov.ID, string(ov.Kind), ov.SeriesID, dateOnly(ov.OccurrenceDate),
		ov.Status, ov.StartAt, ov.EndAt,
	)

	var (
		startAt sql.NullTime
		endAt   sql.NullTime
	)
	if err := row.Scan(&ov.ID, &ov.Status, &startAt, &endAt, &ov.CreatedAt, &ov.UpdatedAt); err != nil {
		return model.InstanceOverride{}, fmt.Errorf("failed to upsert override: %w", err)
	}
	ov.StartAt, ov.EndAt = nil, nil
	if startAt.Valid {
		t := startAt.Time
		ov.StartAt = &t
	}
	if endAt.Valid {
		t := endAt.Time
		ov.EndAt = &t
	}

	// Link the override from the exception record so feed expansion sees it.
	link := `
		INSERT INTO occurrence_exceptions (kind, series_id, occurrence_date, deleted, override_id)
		VALUES ($1, $2, $3, false, $4)
		ON CONFLICT (kind, series_id, occurrence_date)
		DO UPDATE SET deleted = false, override_id = EXCLUDED.override_id`
	if _, err := r.db.ExecContext(ctx, link, string(ov.Kind), ov.SeriesID, dateOnly(ov.OccurrenceDate), ov.ID); err != nil {
		return model.InstanceOverride{}, fmt.Errorf("failed to link override: %w", err)
	}

	return ov, nil
}

func dateOnly(t time.Time) string {
	return t.Format(schedule.DateKeyLayout)
}

var _ ExceptionRepository = (*PostgresExceptionRepository)(nil)
