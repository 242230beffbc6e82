package aggregate

import (
	"alcyxob/lifelog-app/internal/domain"
)

const (
	WarnLowFiber   = "Low fiber intake"
	WarnHighSodium = "High sodium intake"
	WarnLowProtein = "Low protein intake"
)

// NutrientSums are the summed totals of a set of meals.
type NutrientSums struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// NutritionProgress holds percentage-of-target per tracked nutrient.
type NutritionProgress struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Fiber    int `json:"fiber"`
	Sodium   int `json:"sodium"`
}

// DailyNutrition is the day view served by GET /day/:date/totals.
type DailyNutrition struct {
	Date      string                `json:"date"`
	Totals    NutrientSums          `json:"totals"`
	Goals     *domain.NutritionGoal `json:"goals"`
	Progress  *NutritionProgress    `json:"progress"`
	Warnings  []string              `json:"warnings"`
	MealCount int                   `json:"mealCount"`
}

// SumMeals adds up the cached totals of meals, skipping meals without a cache.
func SumMeals(meals []domain.MealEntry) NutrientSums {
	var s NutrientSums
	for _, m := range meals {
		t := m.TotalsCache
		if t == nil {
			continue
		}
		s.Calories += t.Calories
		s.Protein += t.Protein
		s.Carbs += t.Carbs
		s.Fat += t.Fat
		s.Fiber += valueOrZero(t.Fiber)
		s.Sugar += valueOrZero(t.Sugar)
		s.Sodium += valueOrZero(t.Sodium)
	}
	return s
}

// DailyNutritionSummary aggregates the meals logged on date against goal,
// which may be nil.
func DailyNutritionSummary(date string, meals []domain.MealEntry, goal *domain.NutritionGoal) DailyNutrition {
	out := DailyNutrition{
		Date:      date,
		Totals:    SumMeals(meals),
		Warnings:  []string{},
		MealCount: len(meals),
	}
	if goal == nil {
		return out
	}

	g := *goal
	out.Goals = &g
	t := out.Totals
	fiberTarget, sodiumTarget := g.Fiber(), g.Sodium()
	out.Progress = &NutritionProgress{
		Calories: percentOf(t.Calories, g.CalorieTarget),
		Protein:  percentOf(t.Protein, g.ProteinTarget),
		Carbs:    percentOf(t.Carbs, g.CarbsTarget),
		Fat:      percentOf(t.Fat, g.FatTarget),
		Fiber:    percentOf(t.Fiber, fiberTarget),
		Sodium:   percentOf(t.Sodium, sodiumTarget),
	}

	if t.Fiber < fiberTarget*0.5 {
		out.Warnings = append(out.Warnings, WarnLowFiber)
	}
	if t.Sodium > sodiumTarget*1.5 {
		out.Warnings = append(out.Warnings, WarnHighSodium)
	}
	if t.Protein < g.ProteinTarget*0.7 {
		out.Warnings = append(out.Warnings, WarnLowProtein)
	}
	return out
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
