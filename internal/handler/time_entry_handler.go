package handler

import (
	"net/http"

	"Mansoor88-6/mastery-tracker/internal/models"
	"Mansoor88-6/mastery-tracker/internal/service"

	"go.uber.org/zap"
)

type TimeEntryHandler struct {
	service *service.TimeEntryService
	logger  *zap.Logger
}

func NewTimeEntryHandler(service *service.TimeEntryService, logger *zap.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{
		service: service,
		logger:  logger,
	}
}

func (h *TimeEntryHandler) CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req models.CreateTimeEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, h.logger, r, err, "decode time entry")
		return
	}

	entry, err := h.service.RecordTimeEntry(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.logger, r, err, "create time entry")
		return
	}

	h.logger.Info("Time entry recorded",
		zap.String("task_id", entry.TaskID),
		zap.Int64("duration_seconds", entry.DurationSeconds),
	)
	writeJSON(w, http.StatusCreated, entry)
}

func (h *TimeEntryHandler) CreateManualEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req models.ManualTimeEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, h.logger, r, err, "decode manual entry")
		return
	}

	entry, err := h.service.RecordManualEntry(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.logger, r, err, "create manual entry")
		return
	}

	h.logger.Info("Manual time entry recorded",
		zap.String("task_id", entry.TaskID),
		zap.Int64("duration_seconds", entry.DurationSeconds),
	)
	writeJSON(w, http.StatusCreated, entry)
}

// ListTimeEntries lists the caller's entries, optionally narrowed with ?task_id=
func (h *TimeEntryHandler) ListTimeEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	entries, err := h.service.ListTimeEntries(r.Context(), userID, r.URL.Query().Get("task_id"))
	if err != nil {
		writeServiceError(w, h.logger, r, err, "get time entries")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
