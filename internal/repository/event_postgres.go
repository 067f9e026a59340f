package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/aandrewjuan1/planner-api/internal/model"
)

type PostgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEvent(db *sql.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

const eventColumns = `
	e.id, e.user_id, e.title, e.description, e.location, e.color,
	e.all_day, e.status, e.start_at, e.end_at,
	e.recur_freq, e.recur_interval, e.recur_weekdays, e.recur_start, e.recur_until,
	e.created_at, e.updated_at,
	COALESCE(array_agg(et.tag_id::text) FILTER (WHERE et.tag_id IS NOT NULL), '{}') AS tag_ids`

func (r *PostgresEventRepository) Create(ctx context.Context, event model.Event) (model.Event, error) {
	query := `
		INSERT INTO events (
			user_id, title, description, location, color, all_day, status,
			start_at, end_at,
			recur_freq, recur_interval, recur_weekdays, recur_start, recur_until
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`

	args := []any{
		event.UserID, event.Title, event.Description, event.Location,
		event.Color, event.AllDay, event.Status, event.StartAt, event.EndAt,
	}
	args = append(args, recurrenceArgs(event.Recurrence)...)

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt); err != nil {
		return model.Event{}, fmt.Errorf("failed to insert event: %w", err)
	}

	if err := r.replaceTags(ctx, event.ID, event.TagIDs); err != nil {
		return model.Event{}, err
	}
	if event.TagIDs == nil {
		event.TagIDs = []string{}
	}
	return event, nil
}

func (r *PostgresEventRepository) GetByID(ctx context.Context, userID, eventID string) (model.Event, model.Permission, error) {
	query := `
		SELECT ` + eventColumns + `,
			CASE WHEN e.user_id = $1 THEN 'owner' ELSE s.permission END AS permission
		FROM events e
		LEFT JOIN event_tags et ON et.event_id = e.id
		LEFT JOIN item_shares s
			ON s.kind = 'event' AND s.item_id = e.id AND s.user_id = $1
		WHERE e.id = $2 AND (e.user_id = $1 OR s.user_id IS NOT NULL)
		GROUP BY e.id, s.permission`

	row := r.db.QueryRowContext(ctx, query, userID, eventID)
	return scanEventWithPermission(row)
}

func (r *PostgresEventRepository) Update(ctx context.Context, event model.Event) (model.Event, error) {
	query := `
		UPDATE events
		SET title = $1, description = $2, location = $3, color = $4,
			all_day = $5, status = $6, start_at = $7, end_at = $8,
			recur_freq = $9, recur_interval = $10, recur_weekdays = $11,
			recur_start = $12, recur_until = $13,
			updated_at = now()
		WHERE id = $14
		RETURNING updated_at`

	args := []any{
		event.Title, event.Description, event.Location, event.Color,
		event.AllDay, event.Status, event.StartAt, event.EndAt,
	}
	args = append(args, recurrenceArgs(event.Recurrence)...)
	args = append(args, event.ID)

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&event.UpdatedAt); err != nil {
		return model.Event{}, fmt.Errorf("failed to update event: %w", err)
	}

	if err := r.replaceTags(ctx, event.ID, event.TagIDs); err != nil {
		return model.Event{}, err
	}
	if event.TagIDs == nil {
		event.TagIDs = []string{}
	}
	return event, nil
}

func (r *PostgresEventRepository) Delete(ctx context.Context, userID, eventID string) error {
	query := `DELETE FROM events WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresEventRepository) ListAccessible(ctx context.Context, userID string) ([]model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		LEFT JOIN event_tags et ON et.event_id = e.id
		WHERE e.user_id = $1 OR EXISTS (
			SELECT 1 FROM item_shares s
			WHERE s.kind = 'event' AND s.item_id = e.id AND s.user_id = $1
		)
		GROUP BY e.id
		ORDER BY e.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

func (r *PostgresEventRepository) replaceTags(ctx context.Context, eventID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM event_tags WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to clear event tags: %w", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO event_tags (event_id, tag_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, eventID, pq.Array(tagIDs)); err != nil {
		return fmt.Errorf("failed to assign event tags: %w", err)
	}
	return nil
}

func scanEventDests(e *model.Event, recur *recurrenceCols, tagIDs *pq.StringArray) []any {
	dests := []any{
		&e.ID, &e.UserID, &e.Title, &e.Description, &e.Location, &e.Color,
		&e.AllDay, &e.Status, &e.StartAt, &e.EndAt,
	}
	dests = append(dests, recur.dests()...)
	dests = append(dests, &e.CreatedAt, &e.UpdatedAt, tagIDs)
	return dests
}

func scanEvent(row scannable) (model.Event, error) {
	var (
		e      model.Event
		recur  recurrenceCols
		tagIDs pq.StringArray
	)
	if err := row.Scan(scanEventDests(&e, &recur, &tagIDs)...); err != nil {
		return model.Event{}, fmt.Errorf("failed to scan event: %w", err)
	}
	e.Recurrence = recur.rule()
	e.TagIDs = tagIDs
	if e.TagIDs == nil {
		e.TagIDs = []string{}
	}
	return e, nil
}

func scanEventWithPermission(row scannable) (model.Event, model.Permission, error) {
	var (
		e      model.Event
		recur  recurrenceCols
		tagIDs pq.StringArray
		perm   model.Permission
	)
	dests := append(scanEventDests(&e, &recur, &tagIDs), &perm)
	if err := row.Scan(dests...); err != nil {
		if err == sql.ErrNoRows {
			return model.Event{}, "", err
		}
		return model.Event{}, "", fmt.Errorf("failed to scan event: %w", err)
	}
	e.Recurrence = recur.rule()
	e.TagIDs = tagIDs
	if e.TagIDs == nil {
		e.TagIDs = []string{}
	}
	return e, perm, nil
}

var _ EventRepository = (*PostgresEventRepository)(nil)
