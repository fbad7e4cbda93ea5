package services

import (
	"context"
	"time"

	"github.com/lucabarzi/ritmo/internal/core/domain"
	"github.com/lucabarzi/ritmo/internal/core/workers"
)

type EntryService struct {
	repo      domain.EntryRepository
	habitRepo domain.HabitRepository
	worker    *workers.RecoveryWorker
}

func NewEntryService(repo domain.EntryRepository, habitRepo domain.HabitRepository, worker *workers.RecoveryWorker) *EntryService {
	return &EntryService{
		repo:      repo,
		habitRepo: habitRepo,
		worker:    worker,
	}
}

type CreateEntryInput struct {
	HabitID  string
	UserID   string
	Date     string
	ActualCU float64
	Status   string
	Note     string
}

type UpdateEntryInput struct {
	ID       string
	UserID   string
	ActualCU float64
	Status   string
	Note     string
	Version  int
}

func (s *EntryService) Create(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	entry := domain.NewEntry(input.HabitID, input.UserID, input.Date, input.Status, input.ActualCU)
	entry.Note = input.Note

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	habit, err := s.habitRepo.GetByID(ctx, entry.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != entry.UserID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.worker.Enqueue(entry.HabitID)

	return entry, nil
}

func (s *EntryService) Update(ctx context.Context, input UpdateEntryInput) (*domain.Entry, error) {
	existing, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && existing.Version != input.Version {
		return nil, domain.ErrEntryConflict
	}

	if input.Status != "" {
		if !domain.ValidEntryStatus(input.Status) {
			return nil, domain.ErrInvalidEntryStatus
		}
		existing.Status = input.Status
	}
	existing.ActualCU = input.ActualCU
	existing.Note = input.Note

	existing.Version++
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.worker.Enqueue(existing.HabitID)

	return existing, nil
}

func (s *EntryService) GetByID(ctx context.Context, id string, userID string) (*domain.Entry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return entry, nil
}

func (s *EntryService) ListByHabitID(ctx context.Context, habitID string, userID string, from, to string) ([]*domain.Entry, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	return s.repo.ListByHabitIDAndDateRange(ctx, habitID, from, to)
}

func (s *EntryService) Delete(ctx context.Context, id string, userID string) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if entry.UserID != userID {
		return domain.ErrUnauthorized
	}

	return s.repo.Delete(ctx, id, userID)
}

func (s *EntryService) GetDelta(ctx context.Context, userID string, since time.Time) ([]*domain.Entry, error) {
	return s.repo.GetChanges(ctx, userID, since)
}
