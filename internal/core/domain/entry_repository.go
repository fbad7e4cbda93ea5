package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrEntryConflict = errors.New("entry version conflict")
)

type EntryRepository interface {
	// Create persists a new entry to the storage.
	Create(ctx context.Context, entry *Entry) error

	// Update modifies an existing entry.
	// Implementations must handle optimistic locking (version check).
	Update(ctx context.Context, entry *Entry) error

	// Delete performs a soft delete on the entry, scoped to its owner.
	Delete(ctx context.Context, id string, userID string) error

	// GetByID retrieves a single active (non-deleted) entry by its ID.
	GetByID(ctx context.Context, id string) (*Entry, error)

	// ListByUserIDAndDateRange retrieves all of a user's entries with a
	// date in [from, to], ISO dates inclusive.
	ListByUserIDAndDateRange(ctx context.Context, userID, from, to string) ([]*Entry, error)

	// ListByHabitIDAndDateRange retrieves one habit's entries in range.
	ListByHabitIDAndDateRange(ctx context.Context, habitID, from, to string) ([]*Entry, error)

	// GetChanges returns all changes after the since timestamp, for
	// offline-first synchronization.
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*Entry, error)
}
