package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"Mansoor88-6/mastery-tracker/internal/apperrors"
	"Mansoor88-6/mastery-tracker/internal/models"
)

// Today is the date keyword that resolves to the caller's current local date
const Today = "today"

type JournalService struct {
	journal  JournalStore
	location *time.Location
	now      func() time.Time
}

// NewJournalService creates a journal service; loc is used when a caller supplies no timezone
func NewJournalService(journal JournalStore, loc *time.Location) *JournalService {
	if loc == nil {
		loc = time.UTC
	}
	return &JournalService{
		journal:  journal,
		location: loc,
		now:      time.Now,
	}
}

// ResolveDate turns "today" into a concrete date in loc and validates explicit YYYY-MM-DD dates
func (s *JournalService) ResolveDate(date string, loc *time.Location) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" || strings.EqualFold(date, Today) {
		if loc == nil {
			loc = s.location
		}
		return s.now().In(loc).Format(models.DateLayout), nil
	}

	parsed, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return "", apperrors.Validation("Invalid date %q, expected YYYY-MM-DD", date)
	}
	return parsed.Format(models.DateLayout), nil
}

// SaveJournalEntry creates the entry for the date or merges the supplied answers into the existing one
func (s *JournalService) SaveJournalEntry(ctx context.Context, userID, date string, loc *time.Location, fields *models.JournalFields) (*models.JournalEntry, error) {
	entryDate, err := s.ResolveDate(date, loc)
	if err != nil {
		return nil, err
	}

	now := timestamp(s.now)
	entry := &models.JournalEntry{
		ID:        newID(),
		UserID:    userID,
		EntryDate: entryDate,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	if fields != nil {
		entry.JournalFields = *fields
	}

	return s.journal.Upsert(ctx, entry)
}

// GetJournalEntry returns the entry for date. For "today" a missing entry yields an unsaved draft
// instead of ErrNotFound.
func (s *JournalService) GetJournalEntry(ctx context.Context, userID, date string, loc *time.Location) (*models.JournalEntry, error) {
	entryDate, err := s.ResolveDate(date, loc)
	if err != nil {
		return nil, err
	}

	entry, err := s.journal.GetByDate(ctx, userID, entryDate)
	if errors.Is(err, apperrors.ErrNotFound) && isToday(date) {
		return &models.JournalEntry{UserID: userID, EntryDate: entryDate}, nil
	}
	return entry, err
}

func (s *JournalService) ListJournalEntries(ctx context.Context, userID string) ([]*models.JournalEntry, error) {
	return s.journal.ListByUser(ctx, userID)
}

func (s *JournalService) Questions() []models.JournalQuestion {
	return models.JournalQuestions
}

func isToday(date string) bool {
	date = strings.TrimSpace(date)
	return date == "" || strings.EqualFold(date, Today)
}
