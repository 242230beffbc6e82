package repository

import (
	"alcyxob/lifelog-app/internal/domain"
	"context"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	ErrInvalidID    = RepositoryError("invalid id")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Every lookup is scoped by user id; a record owned by someone else is
// reported as ErrNotFound. List methods return an empty slice, never
// ErrNotFound. Create assigns ID, CreatedAt and UpdatedAt on the passed
// record; Update refreshes UpdatedAt.

type HabitRepository interface {
	Create(ctx context.Context, habit *domain.Habit) (string, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Habit, error)
	List(ctx context.Context, userID string) ([]domain.Habit, error)
	Update(ctx context.Context, habit *domain.Habit) error
	Delete(ctx context.Context, userID, id string) error
}

type HabitEntryRepository interface {
	Create(ctx context.Context, entry *domain.HabitEntry) (string, error)
	GetByID(ctx context.Context, userID, id string) (*domain.HabitEntry, error)
	ListByHabit(ctx context.Context, userID, habitID string) ([]domain.HabitEntry, error)
	Update(ctx context.Context, entry *domain.HabitEntry) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByHabit(ctx context.Context, userID, habitID string) (int, error)
}

type MealRepository interface {
	Create(ctx context.Context, meal *domain.MealEntry) (string, error)
	GetByID(ctx context.Context, userID, id string) (*domain.MealEntry, error)
	ListByDate(ctx context.Context, userID, date string) ([]domain.MealEntry, error)
	// ListByDateRange returns meals with from <= date <= to.
	ListByDateRange(ctx context.Context, userID, from, to string) ([]domain.MealEntry, error)
	Update(ctx context.Context, meal *domain.MealEntry) error
	Delete(ctx context.Context, userID, id string) error
}

type NutritionGoalRepository interface {
	Create(ctx context.Context, goal *domain.NutritionGoal) (string, error)
	// GetActive returns the most recently updated active goal or ErrNotFound.
	GetActive(ctx context.Context, userID string) (*domain.NutritionGoal, error)
	Update(ctx context.Context, goal *domain.NutritionGoal) error
}

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Exercise, error)
	List(ctx context.Context, userID string) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, userID, id string) error
}

type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Workout, error)
	// List returns workouts newest first.
	List(ctx context.Context, userID string) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, userID, id string) error
}

type SetRepository interface {
	Create(ctx context.Context, set *domain.Set) (string, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Set, error)
	// ListByWorkout returns sets ordered by OrderIndex.
	ListByWorkout(ctx context.Context, userID, workoutID string) ([]domain.Set, error)
	Update(ctx context.Context, set *domain.Set) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByWorkout(ctx context.Context, userID, workoutID string) (int, error)
}

type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (string, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Goal, error)
	List(ctx context.Context, userID string) ([]domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, userID, id string) error
}

// HealthMetricFilter narrows a metric listing; zero fields match everything.
type HealthMetricFilter struct {
	Type string
	From string
	To   string
}

type HealthMetricRepository interface {
	Create(ctx context.Context, metric *domain.HealthMetric) (string, error)
	GetByID(ctx context.Context, userID, id string) (*domain.HealthMetric, error)
	List(ctx context.Context, userID string, filter HealthMetricFilter) ([]domain.HealthMetric, error)
	Update(ctx context.Context, metric *domain.HealthMetric) error
	Delete(ctx context.Context, userID, id string) error
}

type ScreenTimeRepository interface {
	Create(ctx context.Context, entry *domain.ScreenTimeEntry) (string, error)
	GetByID(ctx context.Context, userID, id string) (*domain.ScreenTimeEntry, error)
	// ListByDateRange treats an empty bound as open.
	ListByDateRange(ctx context.Context, userID, from, to string) ([]domain.ScreenTimeEntry, error)
	Update(ctx context.Context, entry *domain.ScreenTimeEntry) error
	Delete(ctx context.Context, userID, id string) error
}

// TodoFilter narrows a todo listing; nil Completed matches both states.
type TodoFilter struct {
	Completed *bool
}

type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (string, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Todo, error)
	List(ctx context.Context, userID string, filter TodoFilter) ([]domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, userID, id string) error
}

// ExportRepository stores metadata about uploaded workout exports.
type ExportRepository interface {
	Create(ctx context.Context, export *domain.Export) (string, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Export, error)
	List(ctx context.Context, userID string) ([]domain.Export, error)
}

// Store bundles every repository behind one storage backend.
type Store struct {
	Habits         HabitRepository
	HabitEntries   HabitEntryRepository
	Meals          MealRepository
	NutritionGoals NutritionGoalRepository
	Exercises      ExerciseRepository
	Workouts       WorkoutRepository
	Sets           SetRepository
	Goals          GoalRepository
	HealthMetrics  HealthMetricRepository
	ScreenTime     ScreenTimeRepository
	Todos          TodoRepository
	Exports        ExportRepository
}
