package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lucabarzi/ritmo/internal/core/domain"
)

type PostgresCapacityRepository struct {
	db *sqlx.DB
}

func NewPostgresCapacityRepository(db *sqlx.DB) *PostgresCapacityRepository {
	return &PostgresCapacityRepository{db: db}
}

func (r *PostgresCapacityRepository) Upsert(ctx context.Context, capacity *domain.WeeklyCapacity) error {
	if capacity.ID == "" {
		capacity.ID = uuid.NewString()
	}

	query := `
		INSERT INTO weekly_capacities (
			id, user_id, week_start, capacity_cu, created_at, updated_at
		) VALUES (
			:id, :user_id, :week_start, :capacity_cu, :created_at, :updated_at
		)
		ON CONFLICT (user_id, week_start) DO UPDATE
		SET capacity_cu = EXCLUDED.capacity_cu, updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, capacity)
	return err
}

func (r *PostgresCapacityRepository) ListByUserIDAndRange(ctx context.Context, userID, from, to string) ([]*domain.WeeklyCapacity, error) {
	capacities := []*domain.WeeklyCapacity{}

	query := `
		SELECT id, user_id, to_char(week_start, 'YYYY-MM-DD') AS week_start,
		       capacity_cu, created_at, updated_at
		FROM weekly_capacities
		WHERE user_id = $1
		  AND week_start >= $2::date
		  AND week_start <= $3::date
		ORDER BY week_start ASC`

	err := r.db.SelectContext(ctx, &capacities, query, userID, from, to)
	return capacities, err
}
