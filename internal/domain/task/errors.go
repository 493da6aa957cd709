package task

import "errors"

// Task domain errors
var (
	// Lifecycle errors
	ErrTaskTerminal      = errors.New("task is in a terminal state")
	ErrInvalidTransition = errors.New("status transition is not allowed")
	ErrNotAssignee       = errors.New("task is not assigned to you")

	// General errors
	ErrTaskNotFound     = errors.New("task not found")
	ErrAssigneeNotFound = errors.New("assignee not found")
)
