package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lucabarzi/ritmo/internal/core/domain"
)

type HabitService struct {
	repo domain.HabitRepository
}

func NewHabitService(repo domain.HabitRepository) *HabitService {
	return &HabitService{
		repo: repo,
	}
}

type CreateHabitInput struct {
	UserID        string
	Title         string
	MicroTitle    string
	WeightCU      float64
	MicroWeightCU float64
	ContextTags   []string
}

type UpdateHabitInput struct {
	ID            string
	UserID        string
	Title         string
	MicroTitle    string
	WeightCU      float64
	MicroWeightCU float64
	ContextTags   []string
	IsActive      *bool
	Version       int
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Title, input.MicroTitle, input.WeightCU, input.MicroWeightCU, input.ContextTags)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) GetDelta(ctx context.Context, userID string, lastSync time.Time) ([]*domain.Habit, error) {
	return s.repo.GetChanges(ctx, userID, lastSync)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if habit.UserID != input.UserID {
		return nil, domain.ErrHabitNotFound
	}

	if input.Version > 0 && habit.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrHabitConflict, input.Version, habit.Version)
	}

	if input.IsActive != nil {
		if *input.IsActive {
			habit.Activate()
		} else {
			habit.Deactivate()
		}
	}

	if habit.IsActive {
		title := input.Title
		if title == "" {
			title = habit.Title
		}
		weight := input.WeightCU
		if weight <= 0 {
			weight = habit.WeightCU
		}
		tags := habit.ContextTags
		if input.ContextTags != nil {
			tags = input.ContextTags
		}
		microTitle := input.MicroTitle
		microWeight := input.MicroWeightCU
		if microTitle == "" && habit.MicroTitle != nil {
			microTitle = *habit.MicroTitle
			microWeight = habit.MicroWeightCU
		}

		if err := habit.Update(title, microTitle, weight, microWeight, tags); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if habit.UserID != userID {
		return domain.ErrHabitNotFound
	}

	return s.repo.Delete(ctx, id)
}
