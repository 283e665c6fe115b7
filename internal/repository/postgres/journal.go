package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Mansoor88-6/mastery-tracker/internal/apperrors"
	"Mansoor88-6/mastery-tracker/internal/models"

	pgxTransactor "github.com/Thiht/transactor/pgx"
	"github.com/jackc/pgx/v5"
)

var (
	journalColumns = `id, user_id, entry_date, ` + strings.Join(models.JournalColumns, ", ") + `, created_at, updated_at`

	upsertJournal = func() string {
		n := len(models.JournalColumns)
		placeholders := make([]string, 0, n+5)
		for i := 1; i <= n+5; i++ {
			placeholders = append(placeholders, fmt.Sprintf("$%d", i))
		}

		merges := make([]string, 0, n+1)
		for _, col := range models.JournalColumns {
			merges = append(merges, fmt.Sprintf("%s = COALESCE(EXCLUDED.%s, journal_entries.%s)", col, col, col))
		}
		merges = append(merges, "updated_at = EXCLUDED.updated_at")

		return fmt.Sprintf(`
			INSERT INTO journal_entries (%s)
			VALUES (%s)
			ON CONFLICT ON CONSTRAINT journal_entries_user_date_key DO UPDATE SET %s
			RETURNING %s`,
			journalColumns, strings.Join(placeholders, ", "), strings.Join(merges, ", "), journalColumns)
	}()
)

// JournalStore is a PostgreSQL-backed journal store with one row per user and date.
type JournalStore struct {
	dbGetter pgxTransactor.DBGetter
}

// NewJournalStore creates a JournalStore.
func NewJournalStore(dbGetter pgxTransactor.DBGetter) *JournalStore {
	return &JournalStore{dbGetter: dbGetter}
}

// Upsert creates the entry for (user, date) or merges the supplied answers into it.
func (s *JournalStore) Upsert(ctx context.Context, e *models.JournalEntry) (*models.JournalEntry, error) {
	args := []any{e.ID, e.UserID, e.EntryDate}
	for _, answer := range e.Pointers() {
		args = append(args, answer)
	}
	args = append(args, e.CreatedAt, e.UpdatedAt)

	saved, err := scanJournalEntry(s.dbGetter(ctx).QueryRow(ctx, upsertJournal, args...))
	if err != nil {
		return nil, fmt.Errorf("save journal entry %s: %w", e.EntryDate, err)
	}
	return saved, nil
}

// GetByDate retrieves the user's entry for date (YYYY-MM-DD).
func (s *JournalStore) GetByDate(ctx context.Context, userID, date string) (*models.JournalEntry, error) {
	row := s.dbGetter(ctx).QueryRow(ctx, `SELECT `+journalColumns+` FROM journal_entries WHERE user_id = $1 AND entry_date = $2`, userID, date)
	e, err := scanJournalEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("journal entry %s: %w", date, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get journal entry %s: %w", date, err)
	}
	return e, nil
}

// ListByUser returns all of the user's entries, most recent date first.
func (s *JournalStore) ListByUser(ctx context.Context, userID string) ([]*models.JournalEntry, error) {
	rows, err := s.dbGetter(ctx).Query(ctx, `SELECT `+journalColumns+` FROM journal_entries WHERE user_id = $1 ORDER BY entry_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	entries := []*models.JournalEntry{}
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return entries, nil
}

func scanJournalEntry(row pgx.Row) (*models.JournalEntry, error) {
	var e models.JournalEntry
	dest := []any{&e.ID, &e.UserID, &e.EntryDate}
	dest = append(dest, e.ScanTargets()...)
	dest = append(dest, &e.CreatedAt, &e.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &e, nil
}
