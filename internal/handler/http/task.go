package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/task"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/handler/http/response"
)

type TaskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyTasks(w http.ResponseWriter, r *http.Request)
	Transition(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type TaskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &TaskHandlerImpl{taskService: taskService}
}

func taskFilterFromQuery(r *http.Request) task.TaskFilter {
	return task.TaskFilter{
		Status:     r.URL.Query().Get("status"),
		AssignedTo: r.URL.Query().Get("assigned_to"),
		Search:     r.URL.Query().Get("search"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}
}

// Create implements TaskHandler.
func (h *TaskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req task.CreateTaskRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.taskService.CreateTask(r.Context(), req)
	if err != nil {
		slog.Error("CreateTask service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task created")
	response.Created(w, "Task created successfully", created)
}

// Get implements TaskHandler.
func (h *TaskHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.taskService.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// List implements TaskHandler.
func (h *TaskHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.taskService.ListTasks(r.Context(), taskFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Tasks, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// GetMyTasks implements TaskHandler.
func (h *TaskHandlerImpl) GetMyTasks(w http.ResponseWriter, r *http.Request) {
	list, err := h.taskService.GetMyTasks(r.Context(), taskFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Tasks, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// Transition implements TaskHandler.
func (h *TaskHandlerImpl) Transition(w http.ResponseWriter, r *http.Request) {
	var req task.TransitionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Transition decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.taskService.Transition(r.Context(), req)
	if err != nil {
		slog.Error("Transition service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task status changed", "task_id", req.ID, "status", req.NewStatus)
	response.SuccessWithMessage(w, "Task status updated successfully", updated)
}

// Update implements TaskHandler.
func (h *TaskHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req task.UpdateTaskRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.taskService.UpdateTask(r.Context(), req)
	if err != nil {
		slog.Error("UpdateTask service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task updated", "task_id", req.ID)
	response.SuccessWithMessage(w, "Task updated successfully", updated)
}

// Cancel implements TaskHandler.
func (h *TaskHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	updated, err := h.taskService.CancelTask(r.Context(), id)
	if err != nil {
		slog.Error("CancelTask service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task cancelled", "task_id", id)
	response.SuccessWithMessage(w, "Task cancelled successfully", updated)
}

// Delete implements TaskHandler.
func (h *TaskHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		slog.Error("DeleteTask service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task deleted", "task_id", id)
	response.SuccessWithMessage(w, "Task deleted successfully", nil)
}
