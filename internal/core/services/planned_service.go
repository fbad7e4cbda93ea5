package services

import (
	"context"

	"github.com/lucabarzi/ritmo/internal/core/domain"
)

type PlannedService struct {
	repo      domain.PlannedRepository
	habitRepo domain.HabitRepository
}

func NewPlannedService(repo domain.PlannedRepository, habitRepo domain.HabitRepository) *PlannedService {
	return &PlannedService{
		repo:      repo,
		habitRepo: habitRepo,
	}
}

type CreatePlannedInput struct {
	UserID     string
	HabitID    string
	Date       string
	PlannedCU  float64
	ContextTag string
}

func (s *PlannedService) Create(ctx context.Context, input CreatePlannedInput) (*domain.PlannedOccurrence, error) {
	habit, err := s.habitRepo.GetByID(ctx, input.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != input.UserID {
		return nil, domain.ErrUnauthorized
	}

	plannedCU := input.PlannedCU
	if plannedCU <= 0 {
		// default to the habit's full weight
		plannedCU = habit.WeightCU
	}

	planned, err := domain.NewPlannedOccurrence(input.UserID, input.HabitID, input.Date, plannedCU, input.ContextTag)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, planned); err != nil {
		return nil, err
	}

	return planned, nil
}

func (s *PlannedService) ListByDateRange(ctx context.Context, userID, from, to string) ([]*domain.PlannedOccurrence, error) {
	return s.repo.ListByUserIDAndDateRange(ctx, userID, from, to)
}

func (s *PlannedService) Delete(ctx context.Context, id string, userID string) error {
	planned, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if planned.UserID != userID {
		return domain.ErrUnauthorized
	}

	return s.repo.Delete(ctx, id, userID)
}
