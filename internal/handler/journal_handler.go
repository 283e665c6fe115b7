package handler

import (
	"net/http"
	"time"

	"Mansoor88-6/mastery-tracker/internal/models"
	"Mansoor88-6/mastery-tracker/internal/service"

	"go.uber.org/zap"
)

type JournalHandler struct {
	service *service.JournalService
	logger  *zap.Logger
}

func NewJournalHandler(service *service.JournalService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{
		service: service,
		logger:  logger,
	}
}

func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	entries, err := h.service.ListJournalEntries(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, r, err, "list journal entries")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *JournalHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Questions())
}

func (h *JournalHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	entry, err := h.service.GetJournalEntry(r.Context(), userID, r.PathValue("date"), h.callerLocation(r))
	if err != nil {
		writeServiceError(w, h.logger, r, err, "get journal entry")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *JournalHandler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var fields models.JournalFields
	if err := decodeJSON(r, &fields); err != nil {
		writeServiceError(w, h.logger, r, err, "decode journal entry")
		return
	}

	entry, err := h.service.SaveJournalEntry(r.Context(), userID, r.PathValue("date"), h.callerLocation(r), &fields)
	if err != nil {
		writeServiceError(w, h.logger, r, err, "save journal entry")
		return
	}

	h.logger.Info("Journal entry saved", zap.String("entry_date", entry.EntryDate))
	writeJSON(w, http.StatusOK, entry)
}

// callerLocation reads the IANA zone from ?tz=. Nil means the configured default.
func (h *JournalHandler) callerLocation(r *http.Request) *time.Location {
	tz := r.URL.Query().Get("tz")
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		h.logger.Debug("Ignoring unknown timezone", zap.String("tz", tz))
		return nil
	}
	return loc
}
