package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vaneapp/vane/internal/core/domain"
)

type PostgresEntryRepository struct {
	db *sqlx.DB
}

func NewPostgresEntryRepository(db *sqlx.DB) *PostgresEntryRepository {
	return &PostgresEntryRepository{db: db}
}

type entryRow struct {
	ID        string    `db:"id"`
	EntryDate string    `db:"entry_date"`
	Scheduled []byte    `db:"scheduled_habits"`
	Completed []byte    `db:"completed_habits"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row *entryRow) toDomain() (*domain.Entry, error) {
	e := &domain.Entry{
		ID:              row.ID,
		Date:            row.EntryDate,
		ScheduledHabits: []domain.ScheduledHabit{},
		CompletedHabits: []domain.CompletedHabit{},
	}

	if len(row.Scheduled) > 0 {
		if err := json.Unmarshal(row.Scheduled, &e.ScheduledHabits); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scheduled habits: %w", err)
		}
	}
	if len(row.Completed) > 0 {
		if err := json.Unmarshal(row.Completed, &e.CompletedHabits); err != nil {
			return nil, fmt.Errorf("failed to unmarshal completed habits: %w", err)
		}
	}

	// The rate is always derived from the sets, never trusted from storage.
	if n := len(e.ScheduledHabits); n > 0 {
		e.Stats.CompletionRate = float64(len(e.CompletedHabits)) / float64(n) * 100
	}

	return e, nil
}

func (r *PostgresEntryRepository) GetByDate(ctx context.Context, date string) (*domain.Entry, error) {
	var row entryRow
	query := `SELECT * FROM entries WHERE entry_date = $1`

	err := r.db.GetContext(ctx, &row, query, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	return row.toDomain()
}

// Upsert creates or replaces the record for entry.Date. The date column
// carries a unique constraint; a concurrent insert degrades to an update.
func (r *PostgresEntryRepository) Upsert(ctx context.Context, entry *domain.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	scheduledJSON, err := json.Marshal(entry.ScheduledHabits)
	if err != nil {
		return fmt.Errorf("failed to marshal scheduled habits: %w", err)
	}
	completedJSON, err := json.Marshal(entry.CompletedHabits)
	if err != nil {
		return fmt.Errorf("failed to marshal completed habits: %w", err)
	}

	now := time.Now().UTC()

	query := `
		INSERT INTO entries (
			id, entry_date, scheduled_habits, completed_habits,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (entry_date) DO UPDATE SET
			scheduled_habits = EXCLUDED.scheduled_habits,
			completed_habits = EXCLUDED.completed_habits,
			updated_at = EXCLUDED.updated_at
		RETURNING id`

	row := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.Date, scheduledJSON, completedJSON, now,
	)

	if err := row.Scan(&entry.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			return domain.ErrInvalidDate
		}
		return fmt.Errorf("entry upsert failed: %w", err)
	}

	return nil
}

func (r *PostgresEntryRepository) ListByMonth(ctx context.Context, year, month int) ([]*domain.Entry, error) {
	start := fmt.Sprintf("%04d-%02d-01", year, month)
	next := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	end := next.Format(domain.ISODateLayout)

	rows := []entryRow{}
	query := `
		SELECT * FROM entries
		WHERE entry_date >= $1 AND entry_date < $2
		ORDER BY entry_date ASC`

	if err := r.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for i := range rows {
		e, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
