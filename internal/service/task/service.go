package task

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/task"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/user"
)

type TaskServiceImpl struct {
	task.TaskRepository
	user.UserRepository
}

func NewTaskService(taskRepository task.TaskRepository, userRepository user.UserRepository) task.TaskService {
	return &TaskServiceImpl{
		TaskRepository: taskRepository,
		UserRepository: userRepository,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

func toResponse(t task.Task) task.TaskResponse {
	resp := task.TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		AssignedTo:   t.AssignedTo,
		AssigneeName: t.AssigneeName,
		Status:       string(t.Status),
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.Priority != nil {
		p := string(*t.Priority)
		resp.Priority = &p
	}
	if t.DueDate != nil {
		d := t.DueDate.Format("2006-01-02")
		resp.DueDate = &d
	}
	return resp
}

func listResponse(tasks []task.Task, total int64, page, limit int) task.ListTasksResponse {
	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toResponse(t))
	}
	return task.ListTasksResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Tasks:      responses,
	}
}

// checkAssignee verifies the target user exists and holds an
// assignable account.
func (s *TaskServiceImpl) checkAssignee(ctx context.Context, assigneeID string) error {
	_, err := s.UserRepository.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return task.ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to check assignee: %w", err)
	}
	return nil
}

// CreateTask implements task.TaskService.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	creatorID, err := userIDFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if req.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
			return task.TaskResponse{}, err
		}
	}

	newTask := task.Task{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      task.StatusPending,
		CreatedBy:   creatorID,
	}
	if req.Priority != nil {
		p := task.Priority(*req.Priority)
		newTask.Priority = &p
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return task.TaskResponse{}, fmt.Errorf("failed to parse due date: %w", err)
		}
		newTask.DueDate = &due
	}

	created, err := s.TaskRepository.Create(ctx, newTask)
	if err != nil {
		return task.TaskResponse{}, err
	}

	return toResponse(created), nil
}

// GetTask implements task.TaskService.
func (s *TaskServiceImpl) GetTask(ctx context.Context, id string) (task.TaskResponse, error) {
	found, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return toResponse(found), nil
}

// ListTasks implements task.TaskService.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filter task.TaskFilter) (task.ListTasksResponse, error) {
	filter.Normalize()

	tasks, total, err := s.TaskRepository.List(ctx, filter)
	if err != nil {
		return task.ListTasksResponse{}, err
	}

	return listResponse(tasks, total, filter.Page, filter.Limit), nil
}

// GetMyTasks implements task.TaskService.
func (s *TaskServiceImpl) GetMyTasks(ctx context.Context, filter task.TaskFilter) (task.ListTasksResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return task.ListTasksResponse{}, err
	}
	filter.Normalize()

	tasks, total, err := s.TaskRepository.GetByAssignee(ctx, userID, filter)
	if err != nil {
		return task.ListTasksResponse{}, err
	}

	return listResponse(tasks, total, filter.Page, filter.Limit), nil
}

// Transition implements task.TaskService. The lifecycle table is
// checked against the task's current status, and the write itself is
// guarded by that status so concurrent transitions cannot interleave.
func (s *TaskServiceImpl) Transition(ctx context.Context, req task.TransitionRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	current, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if current.AssignedTo == nil || *current.AssignedTo != userID {
		return task.TaskResponse{}, task.ErrNotAssignee
	}

	newStatus := task.Status(req.NewStatus)
	if err := task.CanTransition(current.Status, newStatus); err != nil {
		return task.TaskResponse{}, err
	}

	updated, err := s.TaskRepository.UpdateStatus(ctx, req.ID, current.Status, newStatus)
	if err != nil {
		return task.TaskResponse{}, err
	}

	return toResponse(updated), nil
}

// UpdateTask implements task.TaskService. Admin edits bypass the
// assignee lifecycle table.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	current, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if req.Title != nil {
		current.Title = *req.Title
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			current.AssignedTo = nil
		} else {
			if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
				return task.TaskResponse{}, err
			}
			current.AssignedTo = req.AssignedTo
		}
	}
	if req.Status != nil {
		current.Status = task.Status(*req.Status)
	}
	if req.Priority != nil {
		p := task.Priority(*req.Priority)
		current.Priority = &p
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			current.DueDate = nil
		} else {
			due, err := time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				return task.TaskResponse{}, fmt.Errorf("failed to parse due date: %w", err)
			}
			current.DueDate = &due
		}
	}

	updated, err := s.TaskRepository.Update(ctx, current)
	if err != nil {
		return task.TaskResponse{}, err
	}

	return toResponse(updated), nil
}

// CancelTask implements task.TaskService. Cancellation is an admin
// capability over any non-terminal task.
func (s *TaskServiceImpl) CancelTask(ctx context.Context, id string) (task.TaskResponse, error) {
	current, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if current.Status.IsTerminal() {
		return task.TaskResponse{}, task.ErrTaskTerminal
	}

	updated, err := s.TaskRepository.UpdateStatus(ctx, id, current.Status, task.StatusCancelled)
	if err != nil {
		return task.TaskResponse{}, err
	}

	return toResponse(updated), nil
}

// DeleteTask implements task.TaskService.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	return s.TaskRepository.Delete(ctx, id)
}
