package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lucabarzi/ritmo/internal/core/domain"
)

type PostgresEntryRepository struct {
	db *sqlx.DB
}

func NewPostgresEntryRepository(db *sqlx.DB) *PostgresEntryRepository {
	return &PostgresEntryRepository{db: db}
}

// entries.date is a DATE column; it is always read back through to_char so
// the domain sees plain ISO strings.
const entrySelect = `
	SELECT id, habit_id, user_id, to_char(date, 'YYYY-MM-DD') AS date,
	       actual_cu, status, note, version, created_at, updated_at, deleted_at
	FROM entries`

func (r *PostgresEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO entries (
			id, habit_id, user_id,
			date, actual_cu, status, note,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :habit_id, :user_id,
			:date, :actual_cu, :status, :note,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return errors.New("referenced habit or user does not exist")
			}
			if pqErr.Code == "23505" {
				return domain.ErrEntryConflict
			}
		}
		return err
	}
	return nil
}

func (r *PostgresEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	query := `
		UPDATE entries SET
			actual_cu = :actual_cu, status = :status, note = :note,
			version = :version, updated_at = :updated_at
		WHERE id = :id AND version = :version - 1 AND deleted_at IS NULL`

	res, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntryConflict
	}
	return nil
}

func (r *PostgresEntryRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `
		UPDATE entries
		SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *PostgresEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	var entry domain.Entry
	query := entrySelect + ` WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &entry, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *PostgresEntryRepository) ListByUserIDAndDateRange(ctx context.Context, userID, from, to string) ([]*domain.Entry, error) {
	entries := []*domain.Entry{}

	query := entrySelect + `
		WHERE user_id = $1
		  AND date >= $2::date
		  AND date <= $3::date
		  AND deleted_at IS NULL
		ORDER BY date ASC, created_at ASC`

	err := r.db.SelectContext(ctx, &entries, query, userID, from, to)
	return entries, err
}

func (r *PostgresEntryRepository) ListByHabitIDAndDateRange(ctx context.Context, habitID, from, to string) ([]*domain.Entry, error) {
	entries := []*domain.Entry{}

	query := entrySelect + `
		WHERE habit_id = $1
		  AND date >= $2::date
		  AND date <= $3::date
		  AND deleted_at IS NULL
		ORDER BY date ASC, created_at ASC`

	err := r.db.SelectContext(ctx, &entries, query, habitID, from, to)
	return entries, err
}

func (r *PostgresEntryRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Entry, error) {
	entries := []*domain.Entry{}

	query := entrySelect + `
		WHERE user_id = $1 AND updated_at > $2
		ORDER BY updated_at ASC`

	err := r.db.SelectContext(ctx, &entries, query, userID, since)
	return entries, err
}
