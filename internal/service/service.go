package service

import (
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/metrics"
	"alcyxob/lifelog-app/internal/repository"
	"alcyxob/lifelog-app/internal/storage"
	"errors"
	"fmt"
	"time"
)

// --- Error Definitions ---
var (
	// ErrNotFound is wrapped by every entity-specific not-found error.
	ErrNotFound = errors.New("not found")

	ErrHabitNotFound         = fmt.Errorf("habit %w", ErrNotFound)
	ErrHabitEntryNotFound    = fmt.Errorf("habit entry %w", ErrNotFound)
	ErrMealNotFound          = fmt.Errorf("meal %w", ErrNotFound)
	ErrNutritionGoalNotFound = fmt.Errorf("nutrition goal %w", ErrNotFound)
	ErrExerciseNotFound      = fmt.Errorf("exercise %w", ErrNotFound)
	ErrWorkoutNotFound       = fmt.Errorf("workout %w", ErrNotFound)
	ErrSetNotFound           = fmt.Errorf("set %w", ErrNotFound)
	ErrGoalNotFound          = fmt.Errorf("goal %w", ErrNotFound)
	ErrHealthMetricNotFound  = fmt.Errorf("health metric %w", ErrNotFound)
	ErrScreenTimeNotFound    = fmt.Errorf("screen time entry %w", ErrNotFound)
	ErrTodoNotFound          = fmt.Errorf("todo %w", ErrNotFound)
	ErrExportNotFound        = fmt.Errorf("export %w", ErrNotFound)

	ErrValidationFailed = domain.ErrValidation
	ErrStorageDisabled  = storage.ErrDisabled
)

// Calendar decides what "today" is for the user.
type Calendar struct {
	Location *time.Location
	Clock    func() time.Time
}

func NewCalendar(loc *time.Location) Calendar {
	return Calendar{Location: loc, Clock: time.Now}
}

func (c Calendar) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

// Today is the current calendar day in the configured location.
func (c Calendar) Today() string {
	return domain.DayOf(c.Now(), c.loc())
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Options carries the settings shared by the services.
type Options struct {
	Calendar      Calendar
	PresignExpiry time.Duration
	Metrics       *metrics.Manager
}

// Services bundles every service the API layer depends on.
type Services struct {
	Habits    HabitService
	Nutrition NutritionService
	Workouts  WorkoutService
	Goals     GoalService
	Health    HealthService
	Todos     TodoService
	Calendar  Calendar
}

// New wires all services on top of one store. files may be storage.Disabled.
func New(store *repository.Store, files storage.ObjectStorage, opts Options) *Services {
	return &Services{
		Habits:    NewHabitService(store.Habits, store.HabitEntries, opts.Calendar, opts.Metrics),
		Nutrition: NewNutritionService(store.Meals, store.NutritionGoals, opts.Calendar, opts.Metrics),
		Workouts:  NewWorkoutService(store, files, opts),
		Goals:     NewGoalService(store.Goals),
		Health:    NewHealthService(store.HealthMetrics, store.ScreenTime),
		Todos:     NewTodoService(store.Todos, opts.Calendar),
		Calendar:  opts.Calendar,
	}
}

// mapNotFound translates a repository miss into the service sentinel.
func mapNotFound(err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		return notFound
	}
	return err
}
