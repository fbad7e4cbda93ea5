package domain

import (
	"context"
	"errors"
)

var (
	ErrPlannedNotFound = errors.New("planned occurrence not found")
	ErrPlannedConflict = errors.New("planned occurrence already exists for that habit and date")
)

type PlannedRepository interface {
	// Create persists a new planned occurrence. A duplicate (habit, date)
	// pair fails with ErrPlannedConflict.
	Create(ctx context.Context, planned *PlannedOccurrence) error

	// GetByID retrieves a single active occurrence by its ID.
	GetByID(ctx context.Context, id string) (*PlannedOccurrence, error)

	// Delete soft-deletes an occurrence, scoped to its owner.
	Delete(ctx context.Context, id string, userID string) error

	// ListByUserIDAndDateRange retrieves all of a user's planned
	// occurrences with a date in [from, to], ISO dates inclusive.
	ListByUserIDAndDateRange(ctx context.Context, userID, from, to string) ([]*PlannedOccurrence, error)

	// ListByHabitIDAndDateRange retrieves one habit's occurrences in range.
	ListByHabitIDAndDateRange(ctx context.Context, habitID, from, to string) ([]*PlannedOccurrence, error)
}

type CapacityRepository interface {
	// Upsert creates or replaces the capacity override for a week.
	Upsert(ctx context.Context, capacity *WeeklyCapacity) error

	// ListByUserIDAndRange retrieves overrides whose week start falls in
	// [from, to].
	ListByUserIDAndRange(ctx context.Context, userID, from, to string) ([]*WeeklyCapacity, error)
}
