package service_test

import (
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/service"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHabitService(t *testing.T) service.HabitService {
	store := newStore(t)
	return service.NewHabitService(store.Habits, store.HabitEntries, fixedCalendar(), nil)
}

func TestHabitService_ListIncludesStats(t *testing.T) {
	ctx := context.Background()
	svc := newHabitService(t)

	habit, err := svc.CreateHabit(ctx, testUser, domain.Habit{Name: " Read "})
	require.NoError(t, err)
	assert.Equal(t, "Read", habit.Name)
	assert.Equal(t, domain.FrequencyDaily, habit.Frequency)

	for _, e := range []domain.HabitEntry{
		{Date: "2024-03-10", Completed: true},
		{Date: "2024-03-09", Completed: true},
		{Date: "2024-03-08", Completed: false},
		{Date: "2024-03-07", Completed: true},
	} {
		_, err := svc.CreateEntry(ctx, testUser, habit.ID, e)
		require.NoError(t, err)
	}

	habits, err := svc.ListHabits(ctx, testUser, false)
	require.NoError(t, err)
	require.Len(t, habits, 1)

	stats := habits[0].Stats
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 3, stats.TotalCompletions)
	assert.Equal(t, 75, stats.CompletionRate)
	require.NotNil(t, stats.LastCompletedDate)
	assert.Equal(t, "2024-03-10", *stats.LastCompletedDate)

	// relative to an earlier day the streak is computed from that day
	past, err := svc.HabitStats(ctx, testUser, habit.ID, "2024-03-07")
	require.NoError(t, err)
	assert.Equal(t, 1, past.CurrentStreak)
}

func TestHabitService_ArchivedHidden(t *testing.T) {
	ctx := context.Background()
	svc := newHabitService(t)

	habit, err := svc.CreateHabit(ctx, testUser, domain.Habit{Name: "Run"})
	require.NoError(t, err)
	_, err = svc.UpdateHabit(ctx, testUser, habit.ID, domain.HabitPatch{Archived: ptr(true)})
	require.NoError(t, err)

	visible, err := svc.ListHabits(ctx, testUser, false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := svc.ListHabits(ctx, testUser, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestHabitService_DeleteCascadesEntries(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc := service.NewHabitService(store.Habits, store.HabitEntries, fixedCalendar(), nil)

	habit, err := svc.CreateHabit(ctx, testUser, domain.Habit{Name: "Meditate"})
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, testUser, habit.ID, domain.HabitEntry{Completed: true})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHabit(ctx, testUser, habit.ID))

	left, err := store.HabitEntries.ListByHabit(ctx, testUser, habit.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	assert.ErrorIs(t, svc.DeleteHabit(ctx, testUser, habit.ID), service.ErrHabitNotFound)
}

func TestHabitService_EntryDefaultsAndOwnership(t *testing.T) {
	ctx := context.Background()
	svc := newHabitService(t)

	a, err := svc.CreateHabit(ctx, testUser, domain.Habit{Name: "A"})
	require.NoError(t, err)
	b, err := svc.CreateHabit(ctx, testUser, domain.Habit{Name: "B"})
	require.NoError(t, err)

	entry, err := svc.CreateEntry(ctx, testUser, a.ID, domain.HabitEntry{Completed: true, Value: ptr(2.5)})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", entry.Date)

	_, err = svc.UpdateEntry(ctx, testUser, b.ID, entry.ID, domain.HabitEntryPatch{Completed: ptr(false)})
	assert.ErrorIs(t, err, service.ErrHabitEntryNotFound)

	updated, err := svc.UpdateEntry(ctx, testUser, a.ID, entry.ID, domain.HabitEntryPatch{Value: domain.Null[float64]()})
	require.NoError(t, err)
	assert.Nil(t, updated.Value)
	assert.True(t, updated.Completed)

	_, err = svc.CreateEntry(ctx, "someone-else", a.ID, domain.HabitEntry{})
	assert.ErrorIs(t, err, service.ErrHabitNotFound)

	_, err = svc.CreateEntry(ctx, testUser, a.ID, domain.HabitEntry{Date: "10/03/2024"})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	require.NoError(t, svc.DeleteEntry(ctx, testUser, a.ID, entry.ID))
	assert.ErrorIs(t, svc.DeleteEntry(ctx, testUser, a.ID, entry.ID), service.ErrHabitEntryNotFound)
}

func TestHabitService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newHabitService(t)

	_, err := svc.CreateHabit(ctx, testUser, domain.Habit{Name: "  "})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = svc.CreateHabit(ctx, testUser, domain.Habit{Name: "x", Frequency: "hourly"})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = svc.HabitStats(ctx, testUser, "missing", "not-a-day")
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	_, err = svc.GetHabit(ctx, testUser, "missing")
	assert.ErrorIs(t, err, service.ErrHabitNotFound)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
