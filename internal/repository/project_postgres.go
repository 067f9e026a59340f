package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aandrewjuan1/planner-api/internal/model"
)

type PostgresProjectRepository struct {
	db *sql.DB
}

func NewPostgresProject(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) Create(ctx context.Context, project model.Project) (model.Project, error) {
	query := `
		INSERT INTO projects (user_id, name, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, description, status, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		project.UserID, project.Name, project.Description, project.Status,
	)
	return scanProject(row)
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, userID, projectID string) (model.Project, error) {
	query := `
		SELECT id, user_id, name, description, status, created_at, updated_at
		FROM projects
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, projectID, userID)
	return scanProject(row)
}

func (r *PostgresProjectRepository) Update(ctx context.Context, project model.Project) (model.Project, error) {
	query := `
		UPDATE projects
		SET name = $1, description = $2, status = $3, updated_at = now()
		WHERE id = $4 AND user_id = $5
		RETURNING id, user_id, name, description, status, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		project.Name, project.Description, project.Status, project.ID, project.UserID,
	)
	return scanProject(row)
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, userID, projectID string) error {
	query := `DELETE FROM projects WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
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

func (r *PostgresProjectRepository) ListByUser(ctx context.Context, userID string) ([]model.Project, error) {
	query := `
		SELECT id, user_id, name, description, status, created_at, updated_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

func scanProject(row scannable) (model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Project{}, err
		}
		return model.Project{}, fmt.Errorf("failed to scan project: %w", err)
	}
	return p, nil
}

var _ ProjectRepository = (*PostgresProjectRepository)(nil)
