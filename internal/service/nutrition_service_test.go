package service_test

import (
	"alcyxob/lifelog-app/internal/aggregate"
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/service"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNutritionService(t *testing.T) service.NutritionService {
	store := newStore(t)
	return service.NewNutritionService(store.Meals, store.NutritionGoals, fixedCalendar(), nil)
}

func TestNutritionService_DailyTotals(t *testing.T) {
	ctx := context.Background()
	svc := newNutritionService(t)

	_, err := svc.CreateMeal(ctx, testUser, domain.MealEntry{
		Date:     "2024-03-10",
		MealType: domain.MealLunch,
		Foods: []domain.FoodItem{
			{Name: "rice", Calories: 400, Protein: 8, Carbs: 90, Fat: 1},
			{Name: "beans", Calories: 200, Protein: 14, Carbs: 30, Fat: 1, Fiber: ptr(10.0), Sodium: ptr(400.0)},
		},
	})
	require.NoError(t, err)
	_, err = svc.CreateMeal(ctx, testUser, domain.MealEntry{Date: "2024-03-10", MealType: domain.MealSnack})
	require.NoError(t, err)

	// without a goal only totals are reported
	day, err := svc.DailyTotals(ctx, testUser, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2, day.MealCount)
	assert.Equal(t, 600.0, day.Totals.Calories)
	assert.Equal(t, 10.0, day.Totals.Fiber)
	assert.Nil(t, day.Goals)
	assert.Nil(t, day.Progress)
	assert.Empty(t, day.Warnings)

	_, err = svc.SetGoal(ctx, testUser, domain.NutritionGoal{CalorieTarget: 2000, ProteinTarget: 100})
	require.NoError(t, err)

	day, err = svc.DailyTotals(ctx, testUser, "2024-03-10")
	require.NoError(t, err)
	require.NotNil(t, day.Progress)
	assert.Equal(t, 30, day.Progress.Calories)
	assert.Equal(t, 40, day.Progress.Fiber)
	assert.Equal(t, 17, day.Progress.Sodium)
	assert.Equal(t, []string{aggregate.WarnLowFiber, aggregate.WarnLowProtein}, day.Warnings)

	_, err = svc.DailyTotals(ctx, testUser, "2024-3-10")
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}

func TestNutritionService_SetGoalUpserts(t *testing.T) {
	ctx := context.Background()
	svc := newNutritionService(t)

	_, err := svc.GetGoal(ctx, testUser)
	assert.ErrorIs(t, err, service.ErrNutritionGoalNotFound)

	first, err := svc.SetGoal(ctx, testUser, domain.NutritionGoal{CalorieTarget: 1800})
	require.NoError(t, err)
	second, err := svc.SetGoal(ctx, testUser, domain.NutritionGoal{CalorieTarget: 2200, FiberTarget: ptr(30.0)})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	active, err := svc.GetGoal(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 2200.0, active.CalorieTarget)
	assert.Equal(t, 30.0, active.Fiber())
	assert.True(t, active.Active)

	_, err = svc.SetGoal(ctx, testUser, domain.NutritionGoal{CalorieTarget: -1})
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}

func TestNutritionService_WeeklyReport(t *testing.T) {
	ctx := context.Background()
	svc := newNutritionService(t)

	for _, date := range []string{"2024-03-03", "2024-03-04", "2024-03-10", "2024-03-11"} {
		_, err := svc.CreateMeal(ctx, testUser, domain.MealEntry{
			Date:        date,
			MealType:    domain.MealDinner,
			TotalsCache: &domain.NutrientTotals{Calories: 700, Protein: 35},
		})
		require.NoError(t, err)
	}

	// defaults to the calendar's today
	report, err := svc.WeeklyReport(ctx, testUser, "")
	require.NoError(t, err)
	require.Len(t, report.Daily, aggregate.WeekDays)
	assert.Equal(t, "2024-03-04", report.Daily[0].Date)
	assert.Equal(t, "2024-03-10", report.Daily[6].Date)
	assert.Equal(t, 200.0, report.Averages.Calories)
	assert.Equal(t, 10.0, report.Averages.Protein)
	assert.Equal(t, "7 days", report.Period)

	_, err = svc.WeeklyReport(ctx, testUser, "yesterday")
	assert.ErrorIs(t, err, service.ErrValidationFailed)
}

func TestNutritionService_UpdateMealRecomputesTotals(t *testing.T) {
	ctx := context.Background()
	svc := newNutritionService(t)

	meal, err := svc.CreateMeal(ctx, testUser, domain.MealEntry{
		MealType: domain.MealBreakfast,
		Foods:    []domain.FoodItem{{Name: "oats", Calories: 300}},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", meal.Date)
	require.NotNil(t, meal.TotalsCache)

	foods := []domain.FoodItem{{Name: "eggs", Calories: 150, Protein: 12}, {Name: "toast", Calories: 100}}
	updated, err := svc.UpdateMeal(ctx, testUser, meal.ID, domain.MealPatch{Foods: &foods})
	require.NoError(t, err)
	require.NotNil(t, updated.TotalsCache)
	assert.Equal(t, 250.0, updated.TotalsCache.Calories)
	assert.Equal(t, 12.0, updated.TotalsCache.Protein)

	meals, err := svc.ListMeals(ctx, testUser, "")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, 250.0, meals[0].TotalsCache.Calories)

	require.NoError(t, svc.DeleteMeal(ctx, testUser, meal.ID))
	assert.ErrorIs(t, svc.DeleteMeal(ctx, testUser, meal.ID), service.ErrMealNotFound)
}
