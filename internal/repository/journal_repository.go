package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"Mansoor88-6/mastery-tracker/internal/apperrors"
	"Mansoor88-6/mastery-tracker/internal/models"

	txStdLib "github.com/Thiht/transactor/stdlib"
)

var (
	journalAnswerColumns = strings.Join(models.JournalColumns, ", ")

	selectJournal = `SELECT id, user_id, entry_date, ` + journalAnswerColumns + `, created_at, updated_at FROM journal_entries`

	// upsertJournal keeps the stored answer wherever the incoming one is NULL
	upsertJournal = func() string {
		merges := make([]string, 0, len(models.JournalColumns)+1)
		for _, col := range models.JournalColumns {
			merges = append(merges, fmt.Sprintf("%s = COALESCE(excluded.%s, journal_entries.%s)", col, col, col))
		}
		merges = append(merges, "updated_at = excluded.updated_at")

		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(models.JournalColumns)+5), ", ")
		return fmt.Sprintf(`
			INSERT INTO journal_entries (id, user_id, entry_date, %s, created_at, updated_at)
			VALUES (%s)
			ON CONFLICT (user_id, entry_date) DO UPDATE SET %s
		`, journalAnswerColumns, placeholders, strings.Join(merges, ", "))
	}()
)

type JournalRepository struct {
	dbGetter txStdLib.DBGetter
}

func NewJournalRepository(dbGetter txStdLib.DBGetter) *JournalRepository {
	return &JournalRepository{dbGetter: dbGetter}
}

func (r *JournalRepository) Upsert(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	args := []any{entry.ID, entry.UserID, entry.EntryDate}
	for _, answer := range entry.Pointers() {
		args = append(args, answer)
	}
	args = append(args, entry.CreatedAt, entry.UpdatedAt)

	if _, err := r.dbGetter(ctx).ExecContext(ctx, upsertJournal, args...); err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	return r.GetByDate(ctx, entry.UserID, entry.EntryDate)
}

func (r *JournalRepository) GetByDate(ctx context.Context, userID, date string) (*models.JournalEntry, error) {
	row := r.dbGetter(ctx).QueryRowContext(ctx, selectJournal+` WHERE user_id = ? AND entry_date = ?`, userID, date)

	entry, err := scanJournalEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("journal entry %s: %w", date, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return entry, nil
}

func (r *JournalRepository) ListByUser(ctx context.Context, userID string) ([]*models.JournalEntry, error) {
	rows, err := r.dbGetter(ctx).QueryContext(ctx, selectJournal+` WHERE user_id = ? ORDER BY entry_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []*models.JournalEntry{}
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

func scanJournalEntry(row scannable) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	dest := []any{&entry.ID, &entry.UserID, &entry.EntryDate}
	dest = append(dest, entry.ScanTargets()...)
	dest = append(dest, &entry.CreatedAt, &entry.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &entry, nil
}
