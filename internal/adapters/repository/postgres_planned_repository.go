package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lucabarzi/ritmo/internal/core/domain"
)

type PostgresPlannedRepository struct {
	db *sqlx.DB
}

func NewPostgresPlannedRepository(db *sqlx.DB) *PostgresPlannedRepository {
	return &PostgresPlannedRepository{db: db}
}

const plannedSelect = `
	SELECT id, user_id, habit_id, to_char(date, 'YYYY-MM-DD') AS date,
	       planned_cu, context_tag, version, created_at, updated_at, deleted_at
	FROM planned_occurrences`

func (r *PostgresPlannedRepository) Create(ctx context.Context, planned *domain.PlannedOccurrence) error {
	if planned.ID == "" {
		planned.ID = uuid.NewString()
	}

	query := `
		INSERT INTO planned_occurrences (
			id, user_id, habit_id, date, planned_cu, context_tag,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :user_id, :habit_id, :date, :planned_cu, :context_tag,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, planned)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return errors.New("referenced habit or user does not exist")
			}
			// unique (habit_id, date) where deleted_at is null
			if pqErr.Code == "23505" {
				return domain.ErrPlannedConflict
			}
		}
		return err
	}
	return nil
}

func (r *PostgresPlannedRepository) GetByID(ctx context.Context, id string) (*domain.PlannedOccurrence, error) {
	var planned domain.PlannedOccurrence
	query := plannedSelect + ` WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &planned, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlannedNotFound
		}
		return nil, err
	}
	return &planned, nil
}

func (r *PostgresPlannedRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `
		UPDATE planned_occurrences
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
		return domain.ErrPlannedNotFound
	}
	return nil
}

func (r *PostgresPlannedRepository) ListByUserIDAndDateRange(ctx context.Context, userID, from, to string) ([]*domain.PlannedOccurrence, error) {
	planned := []*domain.PlannedOccurrence{}

	query := plannedSelect + `
		WHERE user_id = $1
		  AND date >= $2::date
		  AND date <= $3::date
		  AND deleted_at IS NULL
		ORDER BY date ASC, created_at ASC`

	err := r.db.SelectContext(ctx, &planned, query, userID, from, to)
	return planned, err
}

func (r *PostgresPlannedRepository) ListByHabitIDAndDateRange(ctx context.Context, habitID, from, to string) ([]*domain.PlannedOccurrence, error) {
	planned := []*domain.PlannedOccurrence{}

	query := plannedSelect + `
		WHERE habit_id = $1
		  AND date >= $2::date
		  AND date <= $3::date
		  AND deleted_at IS NULL
		ORDER BY date ASC, created_at ASC`

	err := r.db.SelectContext(ctx, &planned, query, habitID, from, to)
	return planned, err
}
