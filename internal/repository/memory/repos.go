package memory

import (
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/repository"
	"context"
)

// NewStore returns an empty in-memory Store.
func NewStore() *repository.Store {
	return &repository.Store{
		Habits:         &habitRepo{newTable(habitFields, nil)},
		HabitEntries:   &habitEntryRepo{newTable(habitEntryFields, cloneHabitEntry)},
		Meals:          &mealRepo{newTable(mealFields, cloneMeal)},
		NutritionGoals: &nutritionGoalRepo{newTable(nutritionGoalFields, cloneNutritionGoal)},
		Exercises:      &exerciseRepo{newTable(exerciseFields, nil)},
		Workouts:       &workoutRepo{newTable(workoutFields, cloneWorkout)},
		Sets:           &setRepo{newTable(setFields, nil)},
		Goals:          &goalRepo{newTable(goalFields, cloneGoal)},
		HealthMetrics:  &healthMetricRepo{newTable(healthMetricFields, nil)},
		ScreenTime:     &screenTimeRepo{newTable(screenTimeFields, nil)},
		Todos:          &todoRepo{newTable(todoFields, cloneTodo)},
		Exports:        &exportRepo{newTable(exportFields, nil)},
	}
}

// --- habits ---

type habitRepo struct{ *table[domain.Habit] }

func habitFields(h *domain.Habit) fields {
	return fields{ID: &h.ID, UserID: h.UserID, CreatedAt: &h.CreatedAt, UpdatedAt: &h.UpdatedAt}
}

func (r *habitRepo) List(ctx context.Context, userID string) ([]domain.Habit, error) {
	return r.list(ctx, userID, nil, func(a, b domain.Habit) int { return byCreated(a.CreatedAt, b.CreatedAt) })
}

type habitEntryRepo struct{ *table[domain.HabitEntry] }

func habitEntryFields(e *domain.HabitEntry) fields {
	return fields{ID: &e.ID, UserID: e.UserID, CreatedAt: &e.CreatedAt, UpdatedAt: &e.UpdatedAt}
}

func cloneHabitEntry(e domain.HabitEntry) domain.HabitEntry {
	e.Value = clonePtr(e.Value)
	return e
}

func (r *habitEntryRepo) ListByHabit(ctx context.Context, userID, habitID string) ([]domain.HabitEntry, error) {
	return r.list(ctx, userID,
		func(e *domain.HabitEntry) bool { return e.HabitID == habitID },
		func(a, b domain.HabitEntry) int { return compareStrings(a.Date, b.Date) },
	)
}

func (r *habitEntryRepo) DeleteByHabit(ctx context.Context, userID, habitID string) (int, error) {
	return r.removeWhere(ctx, userID, func(e *domain.HabitEntry) bool { return e.HabitID == habitID })
}

// --- nutrition ---

type mealRepo struct{ *table[domain.MealEntry] }

func mealFields(m *domain.MealEntry) fields {
	return fields{ID: &m.ID, UserID: m.UserID, CreatedAt: &m.CreatedAt, UpdatedAt: &m.UpdatedAt}
}

func cloneMeal(m domain.MealEntry) domain.MealEntry {
	if m.Foods != nil {
		foods := make([]domain.FoodItem, len(m.Foods))
		for i, f := range m.Foods {
			f.Fiber, f.Sugar, f.Sodium = clonePtr(f.Fiber), clonePtr(f.Sugar), clonePtr(f.Sodium)
			foods[i] = f
		}
		m.Foods = foods
	}
	if m.TotalsCache != nil {
		t := *m.TotalsCache
		t.Fiber, t.Sugar, t.Sodium = clonePtr(t.Fiber), clonePtr(t.Sugar), clonePtr(t.Sodium)
		m.TotalsCache = &t
	}
	return m
}

func compareMeals(a, b domain.MealEntry) int {
	if c := compareStrings(a.Date, b.Date); c != 0 {
		return c
	}
	return byCreated(a.CreatedAt, b.CreatedAt)
}

func (r *mealRepo) ListByDate(ctx context.Context, userID, date string) ([]domain.MealEntry, error) {
	return r.list(ctx, userID, func(m *domain.MealEntry) bool { return m.Date == date }, compareMeals)
}

func (r *mealRepo) ListByDateRange(ctx context.Context, userID, from, to string) ([]domain.MealEntry, error) {
	return r.list(ctx, userID, func(m *domain.MealEntry) bool { return inRange(m.Date, from, to) }, compareMeals)
}

type nutritionGoalRepo struct{ *table[domain.NutritionGoal] }

func nutritionGoalFields(g *domain.NutritionGoal) fields {
	return fields{ID: &g.ID, UserID: g.UserID, CreatedAt: &g.CreatedAt, UpdatedAt: &g.UpdatedAt}
}

func cloneNutritionGoal(g domain.NutritionGoal) domain.NutritionGoal {
	g.FiberTarget = clonePtr(g.FiberTarget)
	g.SodiumTarget = clonePtr(g.SodiumTarget)
	return g
}

func (r *nutritionGoalRepo) GetActive(ctx context.Context, userID string) (*domain.NutritionGoal, error) {
	goals, err := r.list(ctx, userID,
		func(g *domain.NutritionGoal) bool { return g.Active },
		func(a, b domain.NutritionGoal) int { return b.UpdatedAt.Compare(a.UpdatedAt) },
	)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, repository.ErrNotFound
	}
	return &goals[0], nil
}

// --- workouts ---

type exerciseRepo struct{ *table[domain.Exercise] }

func exerciseFields(e *domain.Exercise) fields {
	return fields{ID: &e.ID, UserID: e.UserID, CreatedAt: &e.CreatedAt, UpdatedAt: &e.UpdatedAt}
}

func (r *exerciseRepo) List(ctx context.Context, userID string) ([]domain.Exercise, error) {
	return r.list(ctx, userID, nil, func(a, b domain.Exercise) int { return compareStrings(a.Name, b.Name) })
}

type workoutRepo struct{ *table[domain.Workout] }

func workoutFields(w *domain.Workout) fields {
	return fields{ID: &w.ID, UserID: w.UserID, CreatedAt: &w.CreatedAt, UpdatedAt: &w.UpdatedAt}
}

func cloneWorkout(w domain.Workout) domain.Workout {
	w.EndedAt = clonePtr(w.EndedAt)
	return w
}

func (r *workoutRepo) List(ctx context.Context, userID string) ([]domain.Workout, error) {
	return r.list(ctx, userID, nil, func(a, b domain.Workout) int { return b.StartedAt.Compare(a.StartedAt) })
}

type setRepo struct{ *table[domain.Set] }

func setFields(s *domain.Set) fields {
	return fields{ID: &s.ID, UserID: s.UserID, CreatedAt: &s.CreatedAt, UpdatedAt: &s.UpdatedAt}
}

func (r *setRepo) ListByWorkout(ctx context.Context, userID, workoutID string) ([]domain.Set, error) {
	return r.list(ctx, userID,
		func(s *domain.Set) bool { return s.WorkoutID == workoutID },
		func(a, b domain.Set) int {
			if a.OrderIndex != b.OrderIndex {
				return a.OrderIndex - b.OrderIndex
			}
			return byCreated(a.CreatedAt, b.CreatedAt)
		},
	)
}

func (r *setRepo) DeleteByWorkout(ctx context.Context, userID, workoutID string) (int, error) {
	return r.removeWhere(ctx, userID, func(s *domain.Set) bool { return s.WorkoutID == workoutID })
}

type exportRepo struct{ *table[domain.Export] }

func exportFields(e *domain.Export) fields {
	// exports are immutable, so UpdatedAt shares the CreatedAt slot
	return fields{ID: &e.ID, UserID: e.UserID, CreatedAt: &e.CreatedAt, UpdatedAt: &e.CreatedAt}
}

func (r *exportRepo) List(ctx context.Context, userID string) ([]domain.Export, error) {
	return r.list(ctx, userID, nil, func(a, b domain.Export) int { return b.CreatedAt.Compare(a.CreatedAt) })
}

// --- life tracking ---

type goalRepo struct{ *table[domain.Goal] }

func goalFields(g *domain.Goal) fields {
	return fields{ID: &g.ID, UserID: g.UserID, CreatedAt: &g.CreatedAt, UpdatedAt: &g.UpdatedAt}
}

func cloneGoal(g domain.Goal) domain.Goal {
	g.Deadline = clonePtr(g.Deadline)
	return g
}

func (r *goalRepo) List(ctx context.Context, userID string) ([]domain.Goal, error) {
	return r.list(ctx, userID, nil, func(a, b domain.Goal) int { return byCreated(a.CreatedAt, b.CreatedAt) })
}

type healthMetricRepo struct{ *table[domain.HealthMetric] }

func healthMetricFields(m *domain.HealthMetric) fields {
	return fields{ID: &m.ID, UserID: m.UserID, CreatedAt: &m.CreatedAt, UpdatedAt: &m.UpdatedAt}
}

func (r *healthMetricRepo) List(ctx context.Context, userID string, filter repository.HealthMetricFilter) ([]domain.HealthMetric, error) {
	return r.list(ctx, userID,
		func(m *domain.HealthMetric) bool {
			return (filter.Type == "" || m.Type == filter.Type) && inRange(m.Date, filter.From, filter.To)
		},
		func(a, b domain.HealthMetric) int {
			if c := compareStrings(a.Date, b.Date); c != 0 {
				return c
			}
			return byCreated(a.CreatedAt, b.CreatedAt)
		},
	)
}

type screenTimeRepo struct{ *table[domain.ScreenTimeEntry] }

func screenTimeFields(s *domain.ScreenTimeEntry) fields {
	return fields{ID: &s.ID, UserID: s.UserID, CreatedAt: &s.CreatedAt, UpdatedAt: &s.UpdatedAt}
}

func (r *screenTimeRepo) ListByDateRange(ctx context.Context, userID, from, to string) ([]domain.ScreenTimeEntry, error) {
	return r.list(ctx, userID,
		func(s *domain.ScreenTimeEntry) bool { return inRange(s.Date, from, to) },
		func(a, b domain.ScreenTimeEntry) int {
			if c := compareStrings(a.Date, b.Date); c != 0 {
				return c
			}
			return compareStrings(a.Category, b.Category)
		},
	)
}

type todoRepo struct{ *table[domain.Todo] }

func todoFields(t *domain.Todo) fields {
	return fields{ID: &t.ID, UserID: t.UserID, CreatedAt: &t.CreatedAt, UpdatedAt: &t.UpdatedAt}
}

func cloneTodo(t domain.Todo) domain.Todo {
	t.DueDate = clonePtr(t.DueDate)
	t.CompletedAt = clonePtr(t.CompletedAt)
	return t
}

func (r *todoRepo) List(ctx context.Context, userID string, filter repository.TodoFilter) ([]domain.Todo, error) {
	return r.list(ctx, userID,
		func(t *domain.Todo) bool { return filter.Completed == nil || t.Completed == *filter.Completed },
		func(a, b domain.Todo) int {
			if a.Completed != b.Completed {
				if a.Completed {
					return 1
				}
				return -1
			}
			return byCreated(a.CreatedAt, b.CreatedAt)
		},
	)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
