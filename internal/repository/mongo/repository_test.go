package mongo

import (
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/repository"
	"time"
)

func (s *RepositorySuite) TestHabitCRUD() {
	ctx := s.ctx()
	store := NewStore(s.db)

	h := &domain.Habit{UserID: "u1", Name: "Read", Frequency: domain.FrequencyDaily}
	id, err := store.Habits.Create(ctx, h)
	s.Require().NoError(err)
	s.NotEmpty(id)
	s.Equal(id, h.ID)

	got, err := store.Habits.GetByID(ctx, "u1", id)
	s.Require().NoError(err)
	s.Equal("Read", got.Name)
	s.WithinDuration(h.CreatedAt, got.CreatedAt, time.Millisecond)

	_, err = store.Habits.GetByID(ctx, "u2", id)
	s.ErrorIs(err, repository.ErrNotFound)

	got.Name = "Read more"
	got.Archived = true
	s.Require().NoError(store.Habits.Update(ctx, got))
	again, err := store.Habits.GetByID(ctx, "u1", id)
	s.Require().NoError(err)
	s.Equal("Read more", again.Name)
	s.True(again.Archived)
	s.WithinDuration(h.CreatedAt, again.CreatedAt, time.Millisecond)

	list, err := store.Habits.List(ctx, "u1")
	s.Require().NoError(err)
	s.Len(list, 1)

	s.Require().NoError(store.Habits.Delete(ctx, "u1", id))
	s.ErrorIs(store.Habits.Delete(ctx, "u1", id), repository.ErrNotFound)

	list, err = store.Habits.List(ctx, "u1")
	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)
}

func (s *RepositorySuite) TestCreateRequiresUser() {
	store := NewStore(s.db)
	_, err := store.Todos.Create(s.ctx(), &domain.Todo{Title: "x"})
	s.Error(err)
}

func (s *RepositorySuite) TestUpdateForeignRecord() {
	ctx := s.ctx()
	store := NewStore(s.db)
	g := &domain.Goal{UserID: "u1", Title: "Run", Status: domain.GoalActive}
	_, err := store.Goals.Create(ctx, g)
	s.Require().NoError(err)

	g.UserID = "u2"
	s.ErrorIs(store.Goals.Update(ctx, g), repository.ErrNotFound)
	s.ErrorIs(store.Goals.Update(ctx, &domain.Goal{UserID: "u1"}), repository.ErrInvalidID)
}

func (s *RepositorySuite) TestInsertRejectsMismatchedID() {
	habits := newCollection[domain.Habit](s.db, habitCollectionName)
	h := domain.Habit{ID: "stored-id", UserID: "u1", Name: "Walk"}

	_, err := habits.insert(s.ctx(), "expected-id", &h)
	s.Error(err)
}

func (s *RepositorySuite) TestHabitEntriesCascade() {
	ctx := s.ctx()
	store := NewStore(s.db)

	for _, e := range []domain.HabitEntry{
		{UserID: "u1", HabitID: "h1", Date: "2024-03-10", Completed: true},
		{UserID: "u1", HabitID: "h1", Date: "2024-03-08", Completed: true},
		{UserID: "u1", HabitID: "h2", Date: "2024-03-10", Completed: true},
		{UserID: "u2", HabitID: "h1", Date: "2024-03-10", Completed: true},
	} {
		_, err := store.HabitEntries.Create(ctx, &e)
		s.Require().NoError(err)
	}

	entries, err := store.HabitEntries.ListByHabit(ctx, "u1", "h1")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("2024-03-08", entries[0].Date)
	s.Equal("2024-03-10", entries[1].Date)

	deleted, err := store.HabitEntries.DeleteByHabit(ctx, "u1", "h1")
	s.Require().NoError(err)
	s.Equal(2, deleted)

	entries, err = store.HabitEntries.ListByHabit(ctx, "u1", "h1")
	s.Require().NoError(err)
	s.Empty(entries)

	other, err := store.HabitEntries.ListByHabit(ctx, "u2", "h1")
	s.Require().NoError(err)
	s.Len(other, 1, "other users keep their entries")
}

func (s *RepositorySuite) TestMealDateQueriesAndNullTotals() {
	ctx := s.ctx()
	store := NewStore(s.db)

	fiber := 4.0
	var ids []string
	for _, m := range []domain.MealEntry{
		{UserID: "u1", Date: "2024-03-03", MealType: domain.MealLunch},
		{UserID: "u1", Date: "2024-03-04", MealType: domain.MealLunch, TotalsCache: &domain.NutrientTotals{Calories: 300, Fiber: &fiber}},
		{UserID: "u1", Date: "2024-03-10", MealType: domain.MealDinner},
		{UserID: "u1", Date: "2024-03-11", MealType: domain.MealSnack},
		{UserID: "u2", Date: "2024-03-05", MealType: domain.MealSnack},
	} {
		id, err := store.Meals.Create(ctx, &m)
		s.Require().NoError(err)
		ids = append(ids, id)
	}

	week, err := store.Meals.ListByDateRange(ctx, "u1", "2024-03-04", "2024-03-10")
	s.Require().NoError(err)
	s.Require().Len(week, 2)
	s.Equal("2024-03-04", week[0].Date)
	s.Equal("2024-03-10", week[1].Date)
	s.Require().NotNil(week[0].TotalsCache)
	s.Require().NotNil(week[0].TotalsCache.Fiber)
	s.Equal(4.0, *week[0].TotalsCache.Fiber)
	s.Nil(week[0].TotalsCache.Sugar)

	open, err := store.Meals.ListByDateRange(ctx, "u1", "", "2024-03-04")
	s.Require().NoError(err)
	s.Len(open, 2)

	day, err := store.Meals.ListByDate(ctx, "u1", "2024-03-10")
	s.Require().NoError(err)
	s.Len(day, 1)

	// clearing the cache must store null, not keep the old value
	meal := week[0]
	meal.TotalsCache = nil
	s.Require().NoError(store.Meals.Update(ctx, &meal))
	got, err := store.Meals.GetByID(ctx, "u1", ids[1])
	s.Require().NoError(err)
	s.Nil(got.TotalsCache)
}

func (s *RepositorySuite) TestNutritionGoalGetActive() {
	ctx := s.ctx()
	store := NewStore(s.db)

	_, err := store.NutritionGoals.GetActive(ctx, "u1")
	s.ErrorIs(err, repository.ErrNotFound)

	first := &domain.NutritionGoal{UserID: "u1", CalorieTarget: 1800, Active: true}
	_, err = store.NutritionGoals.Create(ctx, first)
	s.Require().NoError(err)
	time.Sleep(5 * time.Millisecond)
	second := &domain.NutritionGoal{UserID: "u1", CalorieTarget: 2200, Active: true}
	_, err = store.NutritionGoals.Create(ctx, second)
	s.Require().NoError(err)
	inactive := &domain.NutritionGoal{UserID: "u1", CalorieTarget: 3000}
	_, err = store.NutritionGoals.Create(ctx, inactive)
	s.Require().NoError(err)

	active, err := store.NutritionGoals.GetActive(ctx, "u1")
	s.Require().NoError(err)
	s.Equal(second.ID, active.ID, "most recently updated goal wins")

	time.Sleep(5 * time.Millisecond)
	fiber := 30.0
	first.FiberTarget = &fiber
	s.Require().NoError(store.NutritionGoals.Update(ctx, first))

	active, err = store.NutritionGoals.GetActive(ctx, "u1")
	s.Require().NoError(err)
	s.Equal(first.ID, active.ID)
	s.Require().NotNil(active.FiberTarget)
	s.Equal(30.0, *active.FiberTarget)
	s.Nil(active.SodiumTarget)
}

func (s *RepositorySuite) TestWorkoutEndedAtAndSetCascade() {
	ctx := s.ctx()
	store := NewStore(s.db)

	start := time.Date(2024, 3, 9, 17, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	w := &domain.Workout{UserID: "u1", Name: "Legs", StartedAt: start, EndedAt: &end}
	_, err := store.Workouts.Create(ctx, w)
	s.Require().NoError(err)

	_, err = store.Workouts.Create(ctx, &domain.Workout{UserID: "u1"})
	s.Error(err, "startedAt is required")

	w.EndedAt = nil
	s.Require().NoError(store.Workouts.Update(ctx, w))
	got, err := store.Workouts.GetByID(ctx, "u1", w.ID)
	s.Require().NoError(err)
	s.Nil(got.EndedAt)
	s.True(start.Equal(got.StartedAt))

	for i, reps := range []int{5, 3, 8} {
		set := &domain.Set{UserID: "u1", WorkoutID: w.ID, ExerciseID: "squat", Weight: 100, Reps: reps, OrderIndex: 2 - i}
		_, err := store.Sets.Create(ctx, set)
		s.Require().NoError(err)
	}
	sets, err := store.Sets.ListByWorkout(ctx, "u1", w.ID)
	s.Require().NoError(err)
	s.Require().Len(sets, 3)
	s.Equal(8, sets[0].Reps, "ordered by orderIndex")

	deleted, err := store.Sets.DeleteByWorkout(ctx, "u1", w.ID)
	s.Require().NoError(err)
	s.Equal(3, deleted)
	sets, err = store.Sets.ListByWorkout(ctx, "u1", w.ID)
	s.Require().NoError(err)
	s.Empty(sets)
}

func (s *RepositorySuite) TestHealthMetricFilter() {
	ctx := s.ctx()
	store := NewStore(s.db)

	for _, m := range []domain.HealthMetric{
		{UserID: "u1", Date: "2024-03-01", Type: "weight", Value: 80.5},
		{UserID: "u1", Date: "2024-03-05", Type: "weight", Value: 80.1},
		{UserID: "u1", Date: "2024-03-05", Type: "sleep", Value: 7.5},
	} {
		_, err := store.HealthMetrics.Create(ctx, &m)
		s.Require().NoError(err)
	}

	weights, err := store.HealthMetrics.List(ctx, "u1", repository.HealthMetricFilter{Type: "weight"})
	s.Require().NoError(err)
	s.Len(weights, 2)

	recent, err := store.HealthMetrics.List(ctx, "u1", repository.HealthMetricFilter{From: "2024-03-02"})
	s.Require().NoError(err)
	s.Len(recent, 2)

	both, err := store.HealthMetrics.List(ctx, "u1", repository.HealthMetricFilter{Type: "weight", From: "2024-03-02", To: "2024-03-05"})
	s.Require().NoError(err)
	s.Require().Len(both, 1)
	s.Equal(80.1, both[0].Value)
}

func (s *RepositorySuite) TestScreenTimeRange() {
	ctx := s.ctx()
	store := NewStore(s.db)

	for _, e := range []domain.ScreenTimeEntry{
		{UserID: "u1", Date: "2024-03-08", Category: "social", Minutes: 30},
		{UserID: "u1", Date: "2024-03-09", Category: "work", Minutes: 120},
		{UserID: "u1", Date: "2024-03-10", Category: "social", Minutes: 45},
	} {
		_, err := store.ScreenTime.Create(ctx, &e)
		s.Require().NoError(err)
	}

	entries, err := store.ScreenTime.ListByDateRange(ctx, "u1", "2024-03-09", "2024-03-10")
	s.Require().NoError(err)
	s.Len(entries, 2)

	all, err := store.ScreenTime.ListByDateRange(ctx, "u1", "", "")
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RepositorySuite) TestTodoCompletedFilter() {
	ctx := s.ctx()
	store := NewStore(s.db)

	done := &domain.Todo{UserID: "u1", Title: "Call mom", Priority: domain.PriorityLow}
	_, err := store.Todos.Create(ctx, done)
	s.Require().NoError(err)
	_, err = store.Todos.Create(ctx, &domain.Todo{UserID: "u1", Title: "Buy milk", Priority: domain.PriorityMedium})
	s.Require().NoError(err)

	completedAt := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	done.Completed = true
	done.CompletedAt = &completedAt
	s.Require().NoError(store.Todos.Update(ctx, done))

	yes := true
	completed, err := store.Todos.List(ctx, "u1", repository.TodoFilter{Completed: &yes})
	s.Require().NoError(err)
	s.Require().Len(completed, 1)
	s.Equal(done.ID, completed[0].ID)
	s.Require().NotNil(completed[0].CompletedAt)
	s.True(completedAt.Equal(*completed[0].CompletedAt))

	no := false
	open, err := store.Todos.List(ctx, "u1", repository.TodoFilter{Completed: &no})
	s.Require().NoError(err)
	s.Len(open, 1)

	all, err := store.Todos.List(ctx, "u1", repository.TodoFilter{})
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *RepositorySuite) TestExportObjectKeyUnique() {
	ctx := s.ctx()
	store := NewStore(s.db)

	_, err := store.Exports.Create(ctx, &domain.Export{UserID: "u1"})
	s.Error(err, "objectKey is required")

	first := &domain.Export{UserID: "u1", ObjectKey: "exports/u1/a.csv", FileName: "workouts.csv"}
	_, err = store.Exports.Create(ctx, first)
	s.Require().NoError(err)

	got, err := store.Exports.GetByID(ctx, "u1", first.ID)
	s.Require().NoError(err)
	s.Equal("exports/u1/a.csv", got.ObjectKey)

	_, err = store.Exports.Create(ctx, &domain.Export{UserID: "u1", ObjectKey: "exports/u1/a.csv"})
	s.Error(err)

	list, err := store.Exports.List(ctx, "u1")
	s.Require().NoError(err)
	s.Len(list, 1)
}
