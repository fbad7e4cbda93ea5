package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucabarzi/ritmo/internal/core/domain"
)

// In-memory repositories for tests and local development. They implement the
// same interfaces as the postgres adapters, including the (habit, date)
// uniqueness rules.

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok || habit.DeletedAt != nil {
		return nil, domain.ErrHabitNotFound
	}
	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) listWhere(userID string, keep func(*domain.Habit) bool) []*domain.Habit {
	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID && h.DeletedAt == nil && keep(h) {
			clone := *h
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].SortOrder != habits[j].SortOrder {
			return habits[i].SortOrder < habits[j].SortOrder
		}
		return habits[i].ID < habits[j].ID
	})

	return habits
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listWhere(userID, func(*domain.Habit) bool { return true }), nil
}

func (r *InMemoryHabitRepository) ListActiveByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listWhere(userID, func(h *domain.Habit) bool { return h.IsActive }), nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[habit.ID]
	if !ok || existing.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}
	if existing.Version != habit.Version {
		return domain.ErrHabitConflict
	}

	clone := *habit
	clone.Version++
	r.store[habit.ID] = &clone
	habit.Version = clone.Version
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.store[id]
	if !ok || habit.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}

	now := time.Now().UTC()
	habit.DeletedAt = &now
	habit.UpdatedAt = now
	habit.Version++
	return nil
}

func (r *InMemoryHabitRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID && h.UpdatedAt.After(since) {
			clone := *h
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].UpdatedAt.Before(habits[j].UpdatedAt)
	})

	return habits, nil
}

type InMemoryPlannedRepository struct {
	store map[string]*domain.PlannedOccurrence

	mu sync.RWMutex
}

func NewInMemoryPlannedRepository() *InMemoryPlannedRepository {
	return &InMemoryPlannedRepository{
		store: make(map[string]*domain.PlannedOccurrence),
	}
}

func (r *InMemoryPlannedRepository) Create(ctx context.Context, planned *domain.PlannedOccurrence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.store {
		if p.HabitID == planned.HabitID && p.Date == planned.Date && p.DeletedAt == nil {
			return domain.ErrPlannedConflict
		}
	}

	if planned.ID == "" {
		planned.ID = uuid.NewString()
	}
	clone := *planned
	r.store[planned.ID] = &clone
	return nil
}

func (r *InMemoryPlannedRepository) GetByID(ctx context.Context, id string) (*domain.PlannedOccurrence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	planned, ok := r.store[id]
	if !ok || planned.DeletedAt != nil {
		return nil, domain.ErrPlannedNotFound
	}
	clone := *planned
	return &clone, nil
}

func (r *InMemoryPlannedRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	planned, ok := r.store[id]
	if !ok || planned.DeletedAt != nil || planned.UserID != userID {
		return domain.ErrPlannedNotFound
	}

	now := time.Now().UTC()
	planned.DeletedAt = &now
	planned.UpdatedAt = now
	planned.Version++
	return nil
}

func sortPlanned(planned []*domain.PlannedOccurrence) {
	sort.Slice(planned, func(i, j int) bool {
		if planned[i].Date != planned[j].Date {
			return planned[i].Date < planned[j].Date
		}
		return planned[i].ID < planned[j].ID
	})
}

func (r *InMemoryPlannedRepository) ListByUserIDAndDateRange(ctx context.Context, userID, from, to string) ([]*domain.PlannedOccurrence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var planned []*domain.PlannedOccurrence
	for _, p := range r.store {
		if p.UserID == userID && p.DeletedAt == nil && p.Date >= from && p.Date <= to {
			clone := *p
			planned = append(planned, &clone)
		}
	}
	sortPlanned(planned)
	return planned, nil
}

func (r *InMemoryPlannedRepository) ListByHabitIDAndDateRange(ctx context.Context, habitID, from, to string) ([]*domain.PlannedOccurrence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var planned []*domain.PlannedOccurrence
	for _, p := range r.store {
		if p.HabitID == habitID && p.DeletedAt == nil && p.Date >= from && p.Date <= to {
			clone := *p
			planned = append(planned, &clone)
		}
	}
	sortPlanned(planned)
	return planned, nil
}

type InMemoryEntryRepository struct {
	store map[string]*domain.Entry

	mu sync.RWMutex
}

func NewInMemoryEntryRepository() *InMemoryEntryRepository {
	return &InMemoryEntryRepository{
		store: make(map[string]*domain.Entry),
	}
}

func (r *InMemoryEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.store {
		if e.HabitID == entry.HabitID && e.Date == entry.Date && e.DeletedAt == nil {
			return domain.ErrEntryConflict
		}
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	clone := *entry
	r.store[entry.ID] = &clone
	return nil
}

func (r *InMemoryEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[entry.ID]
	if !ok || existing.DeletedAt != nil {
		return domain.ErrEntryNotFound
	}
	if existing.Version != entry.Version-1 {
		return domain.ErrEntryConflict
	}

	clone := *entry
	r.store[entry.ID] = &clone
	return nil
}

func (r *InMemoryEntryRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.store[id]
	if !ok || entry.DeletedAt != nil || entry.UserID != userID {
		return domain.ErrEntryNotFound
	}

	now := time.Now().UTC()
	entry.DeletedAt = &now
	entry.UpdatedAt = now
	entry.Version++
	return nil
}

func (r *InMemoryEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.store[id]
	if !ok || entry.DeletedAt != nil {
		return nil, domain.ErrEntryNotFound
	}
	clone := *entry
	return &clone, nil
}

func sortEntries(entries []*domain.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].ID < entries[j].ID
	})
}

func (r *InMemoryEntryRepository) ListByUserIDAndDateRange(ctx context.Context, userID, from, to string) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*domain.Entry
	for _, e := range r.store {
		if e.UserID == userID && e.DeletedAt == nil && e.Date >= from && e.Date <= to {
			clone := *e
			entries = append(entries, &clone)
		}
	}
	sortEntries(entries)
	return entries, nil
}

func (r *InMemoryEntryRepository) ListByHabitIDAndDateRange(ctx context.Context, habitID, from, to string) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*domain.Entry
	for _, e := range r.store {
		if e.HabitID == habitID && e.DeletedAt == nil && e.Date >= from && e.Date <= to {
			clone := *e
			entries = append(entries, &clone)
		}
	}
	sortEntries(entries)
	return entries, nil
}

func (r *InMemoryEntryRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*domain.Entry
	for _, e := range r.store {
		if e.UserID == userID && e.UpdatedAt.After(since) {
			clone := *e
			entries = append(entries, &clone)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.Before(entries[j].UpdatedAt)
	})

	return entries, nil
}

type InMemoryCapacityRepository struct {
	store map[string]*domain.WeeklyCapacity

	mu sync.RWMutex
}

func NewInMemoryCapacityRepository() *InMemoryCapacityRepository {
	return &InMemoryCapacityRepository{
		store: make(map[string]*domain.WeeklyCapacity),
	}
}

func (r *InMemoryCapacityRepository) Upsert(ctx context.Context, capacity *domain.WeeklyCapacity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := capacity.UserID + "|" + capacity.WeekStart
	if existing, ok := r.store[key]; ok {
		capacity.ID = existing.ID
		capacity.CreatedAt = existing.CreatedAt
	} else if capacity.ID == "" {
		capacity.ID = uuid.NewString()
	}

	clone := *capacity
	r.store[key] = &clone
	return nil
}

func (r *InMemoryCapacityRepository) ListByUserIDAndRange(ctx context.Context, userID, from, to string) ([]*domain.WeeklyCapacity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var capacities []*domain.WeeklyCapacity
	for _, c := range r.store {
		if c.UserID == userID && c.WeekStart >= from && c.WeekStart <= to {
			clone := *c
			capacities = append(capacities, &clone)
		}
	}

	sort.Slice(capacities, func(i, j int) bool {
		return capacities[i].WeekStart < capacities[j].WeekStart
	})

	return capacities, nil
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.store[user.ID] = &clone
	return nil
}
