package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vaneapp/vane/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresHabitRepository) scanRow(row scannable) (*domain.Habit, error) {
	var h domain.Habit
	var daysJSON []byte
	var lastCompleted sql.NullString

	err := row.Scan(
		&h.ID, &h.Name, &h.Description, &daysJSON, &h.Done,
		&h.Stats.TotalCompleted, &lastCompleted, &h.Stats.Streak,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(daysJSON) > 0 {
		if err := json.Unmarshal(daysJSON, &h.Days); err != nil {
			return nil, fmt.Errorf("failed to unmarshal days: %w", err)
		}
	}

	if lastCompleted.Valid {
		h.Stats.LastCompletedDate = &lastCompleted.String
	}

	return &h, nil
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	daysJSON, err := json.Marshal(h.Days)
	if err != nil {
		return fmt.Errorf("failed to marshal days: %w", err)
	}

	query := `
        INSERT INTO habits (
            id, name, description, days, done,
            total_completed, last_completed_date, streak,
            created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5,
            $6, $7, $8,
            $9, $10
        )`

	_, err = r.db.ExecContext(ctx, query,
		h.ID, h.Name, h.Description, daysJSON, h.Done,
		h.Stats.TotalCompleted, h.Stats.LastCompletedDate, h.Stats.Streak,
		h.CreatedAt, h.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	query := `SELECT * FROM habits WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	h, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return h, nil
}

func (r *PostgresHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	query := `SELECT * FROM habits ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var habits []*domain.Habit

	for rows.Next() {
		h, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	daysJSON, err := json.Marshal(h.Days)
	if err != nil {
		return err
	}

	query := `
        UPDATE habits SET
            name=$1, description=$2, days=$3, done=$4,
            total_completed=$5, last_completed_date=$6, streak=$7,
            updated_at=NOW()
        WHERE id=$8`

	res, err := r.db.ExecContext(ctx, query,
		h.Name, h.Description, daysJSON, h.Done,
		h.Stats.TotalCompleted, h.Stats.LastCompletedDate, h.Stats.Streak,
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}
