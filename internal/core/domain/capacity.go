package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidWeekStart  = errors.New("week start must be a Monday in YYYY-MM-DD format")
	ErrInvalidCapacityCU = errors.New("weekly capacity must be positive")
)

// WeeklyCapacity is a per-week CU budget override. Weeks without an override
// fall back to the user's default capacity, if any.
type WeeklyCapacity struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	WeekStart  string    `json:"week_start" db:"week_start"`
	CapacityCU float64   `json:"capacity_cu" db:"capacity_cu"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func NewWeeklyCapacity(userID, weekStart string, capacityCU float64) (*WeeklyCapacity, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	t, err := time.Parse("2006-01-02", weekStart)
	if err != nil || t.Weekday() != time.Monday {
		return nil, ErrInvalidWeekStart
	}
	if capacityCU <= 0 {
		return nil, ErrInvalidCapacityCU
	}

	now := time.Now().UTC()
	return &WeeklyCapacity{
		UserID:     userID,
		WeekStart:  weekStart,
		CapacityCU: capacityCU,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
