package services

import (
	"context"

	"github.com/lucabarzi/ritmo/internal/core/domain"
)

type CapacityService struct {
	repo     domain.CapacityRepository
	userRepo domain.UserRepository
}

func NewCapacityService(repo domain.CapacityRepository, userRepo domain.UserRepository) *CapacityService {
	return &CapacityService{
		repo:     repo,
		userRepo: userRepo,
	}
}

type SetCapacityInput struct {
	UserID     string
	WeekStart  string
	CapacityCU float64
}

func (s *CapacityService) SetWeek(ctx context.Context, input SetCapacityInput) (*domain.WeeklyCapacity, error) {
	capacity, err := domain.NewWeeklyCapacity(input.UserID, input.WeekStart, input.CapacityCU)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, capacity); err != nil {
		return nil, err
	}
	return capacity, nil
}

func (s *CapacityService) ListByRange(ctx context.Context, userID, from, to string) ([]*domain.WeeklyCapacity, error) {
	return s.repo.ListByUserIDAndRange(ctx, userID, from, to)
}

func (s *CapacityService) SetDefault(ctx context.Context, userID string, capacityCU *float64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.SetDefaultCapacity(capacityCU); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
