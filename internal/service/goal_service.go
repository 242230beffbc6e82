package service

import (
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/repository"
	"context"
)

type GoalService interface {
	CreateGoal(ctx context.Context, userID string, goal domain.Goal) (*domain.Goal, error)
	GetGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID string, patch domain.GoalPatch) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

type goalService struct {
	goalRepo repository.GoalRepository
}

func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

func (s *goalService) CreateGoal(ctx context.Context, userID string, goal domain.Goal) (*domain.Goal, error) {
	goal.UserID = userID
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.goalRepo.Create(ctx, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *goalService) GetGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, userID, goalID)
	if err != nil {
		return nil, mapNotFound(err, ErrGoalNotFound)
	}
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.goalRepo.List(ctx, userID)
}

func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID string, patch domain.GoalPatch) (*domain.Goal, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	patch.Apply(goal)
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, mapNotFound(err, ErrGoalNotFound)
	}
	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return mapNotFound(s.goalRepo.Delete(ctx, userID, goalID), ErrGoalNotFound)
}
