package mongo

import (
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// NewStore returns a Store whose repositories are backed by collections of db.
func NewStore(db *mongo.Database) *repository.Store {
	return &repository.Store{
		Habits:         &mongoHabitRepository{newCollection[domain.Habit](db, habitCollectionName)},
		HabitEntries:   &mongoHabitEntryRepository{newCollection[domain.HabitEntry](db, habitEntryCollectionName)},
		Meals:          &mongoMealRepository{newCollection[domain.MealEntry](db, mealCollectionName)},
		NutritionGoals: &mongoNutritionGoalRepository{newCollection[domain.NutritionGoal](db, nutritionGoalCollectionName)},
		Exercises:      &mongoExerciseRepository{newCollection[domain.Exercise](db, exerciseCollectionName)},
		Workouts:       &mongoWorkoutRepository{newCollection[domain.Workout](db, workoutCollectionName)},
		Sets:           &mongoSetRepository{newCollection[domain.Set](db, setCollectionName)},
		Goals:          &mongoGoalRepository{newCollection[domain.Goal](db, goalCollectionName)},
		HealthMetrics:  &mongoHealthMetricRepository{newCollection[domain.HealthMetric](db, healthMetricCollectionName)},
		ScreenTime:     &mongoScreenTimeRepository{newCollection[domain.ScreenTimeEntry](db, screenTimeCollectionName)},
		Todos:          &mongoTodoRepository{newCollection[domain.Todo](db, todoCollectionName)},
		Exports:        &mongoExportRepository{newCollection[domain.Export](db, exportCollectionName)},
	}
}

// EnsureIndexes creates the indexes of every collection. It keeps going after
// a failure and returns the first error.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var first error
	for _, ensure := range []func(context.Context, *mongo.Database) error{
		EnsureHabitIndexes,
		EnsureNutritionIndexes,
		EnsureWorkoutIndexes,
		EnsureLifelogIndexes,
		EnsureExportIndexes,
	} {
		if err := ensure(ctx, db); err != nil && first == nil {
			first = err
		}
	}
	return first
}
