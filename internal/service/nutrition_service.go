package service

import (
	"alcyxob/lifelog-app/internal/aggregate"
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/metrics"
	"alcyxob/lifelog-app/internal/repository"
	"context"
	"errors"
	"fmt"
)

type NutritionService interface {
	CreateMeal(ctx context.Context, userID string, meal domain.MealEntry) (*domain.MealEntry, error)
	GetMeal(ctx context.Context, userID, mealID string) (*domain.MealEntry, error)
	ListMeals(ctx context.Context, userID, date string) ([]domain.MealEntry, error)
	UpdateMeal(ctx context.Context, userID, mealID string, patch domain.MealPatch) (*domain.MealEntry, error)
	DeleteMeal(ctx context.Context, userID, mealID string) error

	// DailyTotals summarizes the meals of one day against the active goal.
	DailyTotals(ctx context.Context, userID, date string) (aggregate.DailyNutrition, error)
	// WeeklyReport covers the seven days ending on today; an empty today
	// means the current day.
	WeeklyReport(ctx context.Context, userID, today string) (aggregate.WeeklyReport, error)

	GetGoal(ctx context.Context, userID string) (*domain.NutritionGoal, error)
	// SetGoal replaces the targets of the active goal, creating it if needed.
	SetGoal(ctx context.Context, userID string, goal domain.NutritionGoal) (*domain.NutritionGoal, error)
}

type nutritionService struct {
	mealRepo repository.MealRepository
	goalRepo repository.NutritionGoalRepository
	calendar Calendar
	metrics  *metrics.Manager
}

func NewNutritionService(
	mealRepo repository.MealRepository,
	goalRepo repository.NutritionGoalRepository,
	calendar Calendar,
	m *metrics.Manager,
) NutritionService {
	return &nutritionService{
		mealRepo: mealRepo,
		goalRepo: goalRepo,
		calendar: calendar,
		metrics:  m,
	}
}

func (s *nutritionService) CreateMeal(ctx context.Context, userID string, meal domain.MealEntry) (*domain.MealEntry, error) {
	meal.UserID = userID
	if meal.Date == "" {
		meal.Date = s.calendar.Today()
	}
	if err := meal.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.mealRepo.Create(ctx, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *nutritionService) GetMeal(ctx context.Context, userID, mealID string) (*domain.MealEntry, error) {
	meal, err := s.mealRepo.GetByID(ctx, userID, mealID)
	if err != nil {
		return nil, mapNotFound(err, ErrMealNotFound)
	}
	return meal, nil
}

func (s *nutritionService) ListMeals(ctx context.Context, userID, date string) ([]domain.MealEntry, error) {
	if date == "" {
		date = s.calendar.Today()
	}
	if !domain.IsValidDay(date) {
		return nil, fmt.Errorf("%w: date must be a YYYY-MM-DD date", ErrValidationFailed)
	}
	return s.mealRepo.ListByDate(ctx, userID, date)
}

func (s *nutritionService) UpdateMeal(ctx context.Context, userID, mealID string, patch domain.MealPatch) (*domain.MealEntry, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	meal, err := s.GetMeal(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}
	patch.Apply(meal)
	if err := s.mealRepo.Update(ctx, meal); err != nil {
		return nil, mapNotFound(err, ErrMealNotFound)
	}
	return meal, nil
}

func (s *nutritionService) DeleteMeal(ctx context.Context, userID, mealID string) error {
	return mapNotFound(s.mealRepo.Delete(ctx, userID, mealID), ErrMealNotFound)
}

func (s *nutritionService) DailyTotals(ctx context.Context, userID, date string) (aggregate.DailyNutrition, error) {
	if !domain.IsValidDay(date) {
		return aggregate.DailyNutrition{}, fmt.Errorf("%w: date must be a YYYY-MM-DD date", ErrValidationFailed)
	}
	meals, err := s.mealRepo.ListByDate(ctx, userID, date)
	if err != nil {
		return aggregate.DailyNutrition{}, err
	}
	goal, err := s.activeGoal(ctx, userID)
	if err != nil {
		return aggregate.DailyNutrition{}, err
	}
	s.metrics.Aggregated(metrics.AggDailyNutrition)
	return aggregate.DailyNutritionSummary(date, meals, goal), nil
}

func (s *nutritionService) WeeklyReport(ctx context.Context, userID, today string) (aggregate.WeeklyReport, error) {
	if today == "" {
		today = s.calendar.Today()
	}
	window := aggregate.WeekWindow(today)
	if window == nil {
		return aggregate.WeeklyReport{}, fmt.Errorf("%w: today must be a YYYY-MM-DD date", ErrValidationFailed)
	}
	meals, err := s.mealRepo.ListByDateRange(ctx, userID, window[0], window[len(window)-1])
	if err != nil {
		return aggregate.WeeklyReport{}, err
	}
	s.metrics.Aggregated(metrics.AggWeeklyReport)
	return aggregate.WeeklyNutrition(today, meals), nil
}

func (s *nutritionService) GetGoal(ctx context.Context, userID string) (*domain.NutritionGoal, error) {
	goal, err := s.activeGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, ErrNutritionGoalNotFound
	}
	return goal, nil
}

func (s *nutritionService) SetGoal(ctx context.Context, userID string, goal domain.NutritionGoal) (*domain.NutritionGoal, error) {
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	goal.UserID = userID
	goal.Active = true

	existing, err := s.activeGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if _, err := s.goalRepo.Create(ctx, &goal); err != nil {
			return nil, err
		}
		return &goal, nil
	}

	goal.ID = existing.ID
	goal.CreatedAt = existing.CreatedAt
	if err := s.goalRepo.Update(ctx, &goal); err != nil {
		return nil, mapNotFound(err, ErrNutritionGoalNotFound)
	}
	return &goal, nil
}

// activeGoal returns nil without error when the user has no active goal.
func (s *nutritionService) activeGoal(ctx context.Context, userID string) (*domain.NutritionGoal, error) {
	goal, err := s.goalRepo.GetActive(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}
