package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucabarzi/ritmo/internal/core/domain"
)

func ptr[T any](v T) *T {
	return &v
}

// Hand-rolled in-memory repositories. Each carries a simulateError switch so
// failure paths can be exercised without a database.

type MockHabitRepo struct {
	store         map[string]*domain.Habit
	simulateError error
	mu            sync.Mutex
}

func NewMockHabitRepo() *MockHabitRepo {
	return &MockHabitRepo{store: make(map[string]*domain.Habit)}
}

func (m *MockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *habit
	m.store[habit.ID] = &clone
	return nil
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.store[id]
	if !ok || h.DeletedAt != nil {
		return nil, domain.ErrHabitNotFound
	}
	clone := *h
	return &clone, nil
}

func (m *MockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID && h.DeletedAt == nil {
			clone := *h
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockHabitRepo) ListActiveByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID && h.DeletedAt == nil && h.IsActive {
			clone := *h
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockHabitRepo) Update(ctx context.Context, habit *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.store[habit.ID]
	if !ok || existing.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}
	if existing.Version != habit.Version {
		return domain.ErrHabitConflict
	}
	clone := *habit
	clone.Version++
	m.store[habit.ID] = &clone
	habit.Version = clone.Version
	return nil
}

func (m *MockHabitRepo) Delete(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.store[id]
	if !ok || h.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}
	now := time.Now().UTC()
	h.DeletedAt = &now
	h.Version++
	return nil
}

func (m *MockHabitRepo) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var changes []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID && h.UpdatedAt.After(since) {
			clone := *h
			changes = append(changes, &clone)
		}
	}
	return changes, nil
}

type MockPlannedRepo struct {
	store         map[string]*domain.PlannedOccurrence
	simulateError error
	mu            sync.Mutex
}

func NewMockPlannedRepo() *MockPlannedRepo {
	return &MockPlannedRepo{store: make(map[string]*domain.PlannedOccurrence)}
}

func (m *MockPlannedRepo) Create(ctx context.Context, planned *domain.PlannedOccurrence) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.store {
		if p.HabitID == planned.HabitID && p.Date == planned.Date && p.DeletedAt == nil {
			return domain.ErrPlannedConflict
		}
	}
	if planned.ID == "" {
		planned.ID = uuid.NewString()
	}
	clone := *planned
	m.store[planned.ID] = &clone
	return nil
}

func (m *MockPlannedRepo) GetByID(ctx context.Context, id string) (*domain.PlannedOccurrence, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok || p.DeletedAt != nil {
		return nil, domain.ErrPlannedNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *MockPlannedRepo) Delete(ctx context.Context, id string, userID string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok || p.DeletedAt != nil || p.UserID != userID {
		return domain.ErrPlannedNotFound
	}
	now := time.Now().UTC()
	p.DeletedAt = &now
	return nil
}

func (m *MockPlannedRepo) ListByUserIDAndDateRange(ctx context.Context, userID, from, to string) ([]*domain.PlannedOccurrence, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*domain.PlannedOccurrence
	for _, p := range m.store {
		if p.UserID == userID && p.DeletedAt == nil && p.Date >= from && p.Date <= to {
			clone := *p
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockPlannedRepo) ListByHabitIDAndDateRange(ctx context.Context, habitID, from, to string) ([]*domain.PlannedOccurrence, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*domain.PlannedOccurrence
	for _, p := range m.store {
		if p.HabitID == habitID && p.DeletedAt == nil && p.Date >= from && p.Date <= to {
			clone := *p
			list = append(list, &clone)
		}
	}
	return list, nil
}

type MockEntryRepo struct {
	store         map[string]*domain.Entry
	simulateError error
	mu            sync.Mutex
}

func NewMockEntryRepo() *MockEntryRepo {
	return &MockEntryRepo{store: make(map[string]*domain.Entry)}
}

func (m *MockEntryRepo) Create(ctx context.Context, entry *domain.Entry) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.store {
		if e.HabitID == entry.HabitID && e.Date == entry.Date && e.DeletedAt == nil {
			return domain.ErrEntryConflict
		}
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	clone := *entry
	m.store[entry.ID] = &clone
	return nil
}

func (m *MockEntryRepo) Update(ctx context.Context, entry *domain.Entry) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.store[entry.ID]
	if !ok || existing.DeletedAt != nil {
		return domain.ErrEntryNotFound
	}
	if existing.Version != entry.Version-1 {
		return domain.ErrEntryConflict
	}
	clone := *entry
	m.store[entry.ID] = &clone
	return nil
}

func (m *MockEntryRepo) Delete(ctx context.Context, id string, userID string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok || e.DeletedAt != nil || e.UserID != userID {
		return domain.ErrEntryNotFound
	}
	now := time.Now().UTC()
	e.DeletedAt = &now
	return nil
}

func (m *MockEntryRepo) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok || e.DeletedAt != nil {
		return nil, domain.ErrEntryNotFound
	}
	clone := *e
	return &clone, nil
}

func (m *MockEntryRepo) ListByUserIDAndDateRange(ctx context.Context, userID, from, to string) ([]*domain.Entry, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*domain.Entry
	for _, e := range m.store {
		if e.UserID == userID && e.DeletedAt == nil && e.Date >= from && e.Date <= to {
			clone := *e
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockEntryRepo) ListByHabitIDAndDateRange(ctx context.Context, habitID, from, to string) ([]*domain.Entry, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*domain.Entry
	for _, e := range m.store {
		if e.HabitID == habitID && e.DeletedAt == nil && e.Date >= from && e.Date <= to {
			clone := *e
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockEntryRepo) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Entry, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var changes []*domain.Entry
	for _, e := range m.store {
		if e.UserID == userID && e.UpdatedAt.After(since) {
			clone := *e
			changes = append(changes, &clone)
		}
	}
	return changes, nil
}

type MockCapacityRepo struct {
	store         map[string]*domain.WeeklyCapacity
	simulateError error
	mu            sync.Mutex
}

func NewMockCapacityRepo() *MockCapacityRepo {
	return &MockCapacityRepo{store: make(map[string]*domain.WeeklyCapacity)}
}

func (m *MockCapacityRepo) Upsert(ctx context.Context, capacity *domain.WeeklyCapacity) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *capacity
	m.store[capacity.UserID+"|"+capacity.WeekStart] = &clone
	return nil
}

func (m *MockCapacityRepo) ListByUserIDAndRange(ctx context.Context, userID, from, to string) ([]*domain.WeeklyCapacity, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []*domain.WeeklyCapacity
	for _, c := range m.store {
		if c.UserID == userID && c.WeekStart >= from && c.WeekStart <= to {
			clone := *c
			list = append(list, &clone)
		}
	}
	return list, nil
}

type MockUserRepo struct {
	store         map[string]*domain.User
	simulateError error
	mu            sync.Mutex
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{store: make(map[string]*domain.User)}
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	clone := *user
	m.store[user.ID] = &clone
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	m.store[user.ID] = &clone
	return nil
}
