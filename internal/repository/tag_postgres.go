package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aandrewjuan1/planner-api/internal/model"
)

type PostgresTagRepository struct {
	db *sql.DB
}

func NewPostgresTag(db *sql.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

func (r *PostgresTagRepository) Create(ctx context.Context, tag model.Tag) (model.Tag, error) {
	query := `
		INSERT INTO tags (user_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, color, created_at`

	row := r.db.QueryRowContext(ctx, query, tag.UserID, tag.Name, tag.Color)
	return scanTag(row)
}

func (r *PostgresTagRepository) Delete(ctx context.Context, userID, tagID string) error {
	query := `DELETE FROM tags WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, tagID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
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

func (r *PostgresTagRepository) ListByUser(ctx context.Context, userID string) ([]model.Tag, error) {
	query := `
		SELECT id, user_id, name, color, created_at
		FROM tags
		WHERE user_id = $1
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}

func scanTag(row scannable) (model.Tag, error) {
	var t model.Tag
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
		return model.Tag{}, fmt.Errorf("failed to scan tag: %w", err)
	}
	return t, nil
}

var _ TagRepository = (*PostgresTagRepository)(nil)
