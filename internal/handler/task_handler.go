package handler

import (
	"net/http"

	"Mansoor88-6/mastery-tracker/internal/models"
	"Mansoor88-6/mastery-tracker/internal/service"

	"go.uber.org/zap"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(service *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger,
	}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, r, err, "list tasks")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, h.logger, r, err, "decode task")
		return
	}

	task, err := h.service.CreateTask(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.logger, r, err, "create task")
		return
	}

	h.logger.Info("Task created",
		zap.String("task_id", task.ID),
		zap.String("category", task.Category),
	)
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	task, err := h.service.GetTask(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, r, err, "get task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, h.logger, r, err, "decode task update")
		return
	}

	task, err := h.service.UpdateTask(r.Context(), userID, r.PathValue("id"), &req)
	if err != nil {
		writeServiceError(w, h.logger, r, err, "update task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if err := h.service.DeleteTask(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.logger, r, err, "delete task")
		return
	}

	h.logger.Info("Task deleted", zap.String("task_id", id))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, r, err, "compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
