package task

import "context"

// TaskRepository defines data access methods for tasks.
type TaskRepository interface {
	// Create inserts a new task with initial status pending
	Create(ctx context.Context, t Task) (Task, error)

	// GetByID retrieves a task by ID
	GetByID(ctx context.Context, id string) (Task, error)

	// UpdateStatus writes a new status and bumps updated_at in one
	// statement, guarded by the expected current status so a
	// concurrent change loses cleanly instead of clobbering
	UpdateStatus(ctx context.Context, id string, from, to Status) (Task, error)

	// Update overwrites task fields (admin edits)
	Update(ctx context.Context, t Task) (Task, error)

	// Delete removes a task
	Delete(ctx context.Context, id string) error

	// List retrieves tasks with filters and pagination
	List(ctx context.Context, filter TaskFilter) ([]Task, int64, error)

	// GetByAssignee retrieves tasks assigned to one user
	GetByAssignee(ctx context.Context, userID string, filter TaskFilter) ([]Task, int64, error)
}
