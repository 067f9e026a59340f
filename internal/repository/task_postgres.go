package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/aandrewjuan1/planner-api/internal/model"
)

type PostgresTaskRepository struct {
	db *sql.DB
}

func NewPostgresTask(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

const taskColumns = `
	t.id, t.user_id, t.project_id, t.title, t.description, t.status,
	t.priority, t.complexity, t.duration_min, t.start_at, t.end_at,
	t.recur_freq, t.recur_interval, t.recur_weekdays, t.recur_start, t.recur_until,
	t.created_at, t.updated_at,
	COALESCE(array_agg(tt.tag_id::text) FILTER (WHERE tt.tag_id IS NOT NULL), '{}') AS tag_ids`

func (r *PostgresTaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		INSERT INTO tasks (
			user_id, project_id, title, description, status, priority,
			complexity, duration_min, start_at, end_at,
			recur_freq, recur_interval, recur_weekdays, recur_start, recur_until
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`

	args := []any{
		task.UserID, task.ProjectID, task.Title, task.Description,
		task.Status, task.Priority, task.Complexity, task.DurationMin,
		task.StartAt, task.EndAt,
	}
	args = append(args, recurrenceArgs(task.Recurrence)...)

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return model.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	if err := r.replaceTags(ctx, task.ID, task.TagIDs); err != nil {
		return model.Task{}, err
	}
	if task.TagIDs == nil {
		task.TagIDs = []string{}
	}
	return task, nil
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, userID, taskID string) (model.Task, model.Permission, error) {
	query := `
		SELECT ` + taskColumns + `,
			CASE WHEN t.user_id = $1 THEN 'owner' ELSE s.permission END AS permission
		FROM tasks t
		LEFT JOIN task_tags tt ON tt.task_id = t.id
		LEFT JOIN item_shares s
			ON s.kind = 'task' AND s.item_id = t.id AND s.user_id = $1
		WHERE t.id = $2 AND (t.user_id = $1 OR s.user_id IS NOT NULL)
		GROUP BY t.id, s.permission`

	row := r.db.QueryRowContext(ctx, query, userID, taskID)
	return scanTaskWithPermission(row)
}

func (r *PostgresTaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		UPDATE tasks
		SET project_id = $1, title = $2, description = $3, status = $4,
			priority = $5, complexity = $6, duration_min = $7,
			start_at = $8, end_at = $9,
			recur_freq = $10, recur_interval = $11, recur_weekdays = $12,
			recur_start = $13, recur_until = $14,
			updated_at = now()
		WHERE id = $15
		RETURNING updated_at`

	args := []any{
		task.ProjectID, task.Title, task.Description, task.Status,
		task.Priority, task.Complexity, task.DurationMin,
		task.StartAt, task.EndAt,
	}
	args = append(args, recurrenceArgs(task.Recurrence)...)
	args = append(args, task.ID)

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&task.UpdatedAt); err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	if err := r.replaceTags(ctx, task.ID, task.TagIDs); err != nil {
		return model.Task{}, err
	}
	if task.TagIDs == nil {
		task.TagIDs = []string{}
	}
	return task, nil
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
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

func (r *PostgresTaskRepository) ListAccessible(ctx context.Context, userID string) ([]model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		LEFT JOIN task_tags tt ON tt.task_id = t.id
		WHERE t.user_id = $1 OR EXISTS (
			SELECT 1 FROM item_shares s
			WHERE s.kind = 'task' AND s.item_id = t.id AND s.user_id = $1
		)
		GROUP BY t.id
		ORDER BY t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// replaceTags swaps the full tag set of a task. Tag assignment is always a
// whole-set write from the service layer.
func (r *PostgresTaskRepository) replaceTags(ctx context.Context, taskID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("failed to clear task tags: %w", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO task_tags (task_id, tag_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, taskID, pq.Array(tagIDs)); err != nil {
		return fmt.Errorf("failed to assign task tags: %w", err)
	}
	return nil
}

func scanTaskDests(t *model.Task, recur *recurrenceCols, tagIDs *pq.StringArray) []any {
	dests := []any{
		&t.ID, &t.UserID, &t.ProjectID, &t.Title, &t.Description, &t.Status,
		&t.Priority, &t.Complexity, &t.DurationMin, &t.StartAt, &t.EndAt,
	}
	dests = append(dests, recur.dests()...)
	dests = append(dests, &t.CreatedAt, &t.UpdatedAt, tagIDs)
	return dests
}

func scanTask(row scannable) (model.Task, error) {
	var (
		t      model.Task
		recur  recurrenceCols
		tagIDs pq.StringArray
	)
	if err := row.Scan(scanTaskDests(&t, &recur, &tagIDs)...); err != nil {
		return model.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}
	t.Recurrence = recur.rule()
	t.TagIDs = tagIDs
	if t.TagIDs == nil {
		t.TagIDs = []string{}
	}
	return t, nil
}

func scanTaskWithPermission(row scannable) (model.Task, model.Permission, error) {
	var (
		t      model.Task
		recur  recurrenceCols
		tagIDs pq.StringArray
		perm   model.Permission
	)
	dests := append(scanTaskDests(&t, &recur, &tagIDs), &perm)
	if err := row.Scan(dests...); err != nil {
		if err == sql.ErrNoRows {
			return model.Task{}, "", err
		}
		return model.Task{}, "", fmt.Errorf("failed to scan task: %w", err)
	}
	t.Recurrence = recur.rule()
	t.TagIDs = tagIDs
	if t.TagIDs == nil {
		t.TagIDs = []string{}
	}
	return t, perm, nil
}

var _ TaskRepository = (*PostgresTaskRepository)(nil)
