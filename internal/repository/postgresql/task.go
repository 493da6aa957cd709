package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/task"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskColumns = `t.id, t.title, t.description, t.assigned_to, t.status, t.priority,
		t.due_date, t.created_by, t.created_at, t.updated_at, u.full_name`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.AssignedTo,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.AssigneeName,
	)
	return t, err
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO tasks (title, description, assigned_to, status, priority, due_date, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, title, description, assigned_to, status, priority, due_date, created_by, created_at, updated_at
		)
		SELECT t.id, t.title, t.description, t.assigned_to, t.status, t.priority,
			   t.due_date, t.created_by, t.created_at, t.updated_at, u.full_name
		FROM inserted t
		LEFT JOIN users u ON u.id = t.assigned_to
	`

	created, err := scanTask(q.QueryRow(ctx, query,
		t.Title,
		t.Description,
		t.AssignedTo,
		t.Status,
		t.Priority,
		t.DueDate,
		t.CreatedBy,
	))
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assigned_to
		WHERE t.id = $1
	`

	found, err := scanTask(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return found, nil
}

// UpdateStatus implements task.TaskRepository. The WHERE clause pins
// the expected current status so a concurrent transition loses
// instead of overwriting.
func (r *taskRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to task.Status) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH updated AS (
			UPDATE tasks
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status = $3
			RETURNING id, title, description, assigned_to, status, priority, due_date, created_by, created_at, updated_at
		)
		SELECT t.id, t.title, t.description, t.assigned_to, t.status, t.priority,
			   t.due_date, t.created_by, t.created_at, t.updated_at, u.full_name
		FROM updated t
		LEFT JOIN users u ON u.id = t.assigned_to
	`

	updated, err := scanTask(q.QueryRow(ctx, query, to, id, from))
	if err != nil {
		if err == pgx.ErrNoRows {
			return task.Task{}, task.ErrInvalidTransition
		}
		return task.Task{}, fmt.Errorf("failed to update task status: %w", err)
	}
	return updated, nil
}

// Update implements task.TaskRepository.
func (r *taskRepositoryImpl) Update(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH updated AS (
			UPDATE tasks
			SET title = $1, description = $2, assigned_to = $3, status = $4,
				priority = $5, due_date = $6, updated_at = NOW()
			WHERE id = $7
			RETURNING id, title, description, assigned_to, status, priority, due_date, created_by, created_at, updated_at
		)
		SELECT t.id, t.title, t.description, t.assigned_to, t.status, t.priority,
			   t.due_date, t.created_by, t.created_at, t.updated_at, u.full_name
		FROM updated t
		LEFT JOIN users u ON u.id = t.assigned_to
	`

	updated, err := scanTask(q.QueryRow(ctx, query,
		t.Title,
		t.Description,
		t.AssignedTo,
		t.Status,
		t.Priority,
		t.DueDate,
		t.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// Delete implements task.TaskRepository.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// List implements task.TaskRepository.
func (r *taskRepositoryImpl) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, int64, error) {
	return r.list(ctx, "", filter)
}

// GetByAssignee implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByAssignee(ctx context.Context, userID string, filter task.TaskFilter) ([]task.Task, int64, error) {
	return r.list(ctx, userID, filter)
}

func (r *taskRepositoryImpl) list(ctx context.Context, assigneeID string, filter task.TaskFilter) ([]task.Task, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if assigneeID != "" {
		conditions = append(conditions, fmt.Sprintf("t.assigned_to = $%d", argPos))
		args = append(args, assigneeID)
		argPos++
	} else if filter.AssignedTo != "" {
		conditions = append(conditions, fmt.Sprintf("t.assigned_to = $%d", argPos))
		args = append(args, filter.AssignedTo)
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(t.title ILIKE $%d OR t.description ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM tasks t WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+taskColumns+`
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assigned_to
		WHERE %s
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}
