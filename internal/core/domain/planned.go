package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidPlannedCU = errors.New("planned weight must be positive")

// PlannedOccurrence schedules one habit on one calendar day with a planned
// CU weight. At most one per (habit, date); the storage layer enforces it,
// the analytics engine tolerates duplicates last-write-wins.
type PlannedOccurrence struct {
	ID         string  `json:"id" db:"id"`
	UserID     string  `json:"user_id" db:"user_id"`
	HabitID    string  `json:"habit_id" db:"habit_id"`
	Date       string  `json:"date" db:"date"`
	PlannedCU  float64 `json:"planned_cu" db:"planned_cu"`
	ContextTag string  `json:"context_tag,omitempty" db:"context_tag"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewPlannedOccurrence(userID, habitID, date string, plannedCU float64, contextTag string) (*PlannedOccurrence, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}
	if plannedCU <= 0 {
		return nil, ErrInvalidPlannedCU
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidEntryDate
	}

	now := time.Now().UTC()
	return &PlannedOccurrence{
		UserID:     userID,
		HabitID:    habitID,
		Date:       date,
		PlannedCU:  plannedCU,
		ContextTag: strings.TrimSpace(contextTag),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
