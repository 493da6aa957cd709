package task

import "context"

// TaskService defines business logic for task operations
type TaskService interface {
	// CreateTask creates a task with initial status pending (admin)
	CreateTask(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)

	// GetTask retrieves a single task by ID
	GetTask(ctx context.Context, id string) (TaskResponse, error)

	// ListTasks retrieves tasks with filters (admin)
	ListTasks(ctx context.Context, filter TaskFilter) (ListTasksResponse, error)

	// GetMyTasks retrieves the authenticated user's assigned tasks
	GetMyTasks(ctx context.Context, filter TaskFilter) (ListTasksResponse, error)

	// Transition applies an assignee-requested status change through
	// the lifecycle table
	Transition(ctx context.Context, req TransitionRequest) (TaskResponse, error)

	// UpdateTask edits task fields freely, including reassignment (admin)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (TaskResponse, error)

	// CancelTask moves any non-terminal task to cancelled (admin)
	CancelTask(ctx context.Context, id string) (TaskResponse, error)

	// DeleteTask removes a task (admin)
	DeleteTask(ctx context.Context, id string) error
}
