package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidEntryStatus = errors.New("invalid entry status")
	ErrInvalidEntryDate   = errors.New("entry date must be YYYY-MM-DD")
)

// Entry statuses. "recovered" marks a completion that caught up a recent
// miss; it can be set by the client or by the recovery worker.
const (
	EntryDone      = "done"
	EntryMicroDone = "micro_done"
	EntrySkipped   = "skipped"
	EntryRecovered = "recovered"
)

// Entry is the recorded outcome for a habit on one calendar day. Dates are
// abstract days stored as ISO strings, never timestamps.
type Entry struct {
	ID      string `json:"id" db:"id"`
	HabitID string `json:"habit_id" db:"habit_id"`
	UserID  string `json:"user_id" db:"user_id"`

	Date     string  `json:"date" db:"date"`
	ActualCU float64 `json:"actual_cu" db:"actual_cu"`
	Status   string  `json:"status" db:"status"`
	Note     string  `json:"note" db:"note"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewEntry(habitID, userID, date, status string, actualCU float64) *Entry {
	now := time.Now().UTC()

	return &Entry{
		HabitID:  habitID,
		UserID:   userID,
		Date:     date,
		ActualCU: actualCU,
		Status:   status,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ValidEntryStatus(status string) bool {
	switch status {
	case EntryDone, EntryMicroDone, EntrySkipped, EntryRecovered:
		return true
	}
	return false
}

func (e *Entry) Validate() error {
	if strings.TrimSpace(e.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(e.UserID) == "" {
		return errors.New("user_id is required")
	}
	if e.ActualCU < 0 {
		return errors.New("actual_cu cannot be negative")
	}
	if !ValidEntryStatus(e.Status) {
		return ErrInvalidEntryStatus
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return ErrInvalidEntryDate
	}
	return nil
}
