package service_test

import (
	"alcyxob/lifelog-app/internal/aggregate"
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/repository"
	"alcyxob/lifelog-app/internal/service"
	"alcyxob/lifelog-app/internal/storage"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type workoutFixture struct {
	store   *repository.Store
	svc     service.WorkoutService
	workout *domain.Workout
	bench   *domain.Exercise
	squat   *domain.Exercise
}

// newWorkoutFixture logs one 45 minute workout with two bench sets and one
// squat set.
func newWorkoutFixture(t *testing.T, files storage.ObjectStorage) *workoutFixture {
	t.Helper()
	ctx := context.Background()
	store := newStore(t)
	svc := service.NewWorkoutService(store, files, service.Options{
		Calendar:      fixedCalendar(),
		PresignExpiry: 10 * time.Minute,
	})

	bench, err := svc.CreateExercise(ctx, testUser, domain.Exercise{Name: "Bench Press", MuscleGroup: "Chest"})
	require.NoError(t, err)
	squat, err := svc.CreateExercise(ctx, testUser, domain.Exercise{Name: "Squat", MuscleGroup: "Legs"})
	require.NoError(t, err)

	started := time.Date(2024, 3, 9, 17, 0, 0, 0, time.UTC)
	ended := started.Add(45 * time.Minute)
	workout, err := svc.CreateWorkout(ctx, testUser, domain.Workout{Name: "Push", StartedAt: started, EndedAt: &ended})
	require.NoError(t, err)

	for i, s := range []domain.Set{
		{ExerciseID: bench.ID, Weight: 60, Reps: 10},
		{ExerciseID: squat.ID, Weight: 100, Reps: 5},
		{ExerciseID: bench.ID, Weight: 70, Reps: 8},
	} {
		s.OrderIndex = i
		_, err := svc.AddSet(ctx, testUser, workout.ID, s)
		require.NoError(t, err)
	}

	return &workoutFixture{store: store, svc: svc, workout: workout, bench: bench, squat: squat}
}

func TestWorkoutService_Summary(t *testing.T) {
	f := newWorkoutFixture(t, nil)

	summary, err := f.svc.Summary(context.Background(), testUser, f.workout.ID)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-09", summary.Date)
	assert.Equal(t, 45, summary.DurationMinutes)
	assert.Equal(t, 1660.0, summary.TotalVolume)
	require.Len(t, summary.Exercises, 2)

	bench := summary.Exercises[0]
	assert.Equal(t, "Bench Press", bench.ExerciseName)
	assert.Equal(t, 2, bench.SetCount)
	assert.Equal(t, 18, bench.TotalReps)
	assert.Equal(t, 1160.0, bench.TotalVolume)
	assert.Equal(t, 65.0, bench.AverageWeight)

	assert.Equal(t, "Squat", summary.Exercises[1].ExerciseName)
}

func TestWorkoutService_DeletedExerciseIsUnknown(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t, nil)

	require.NoError(t, f.svc.DeleteExercise(ctx, testUser, f.squat.ID))

	sets, err := f.svc.ListSets(ctx, testUser, f.workout.ID)
	require.NoError(t, err)
	assert.Len(t, sets, 3)

	summary, err := f.svc.Summary(ctx, testUser, f.workout.ID)
	require.NoError(t, err)
	assert.Equal(t, aggregate.UnknownExercise, summary.Exercises[1].ExerciseName)
}

func TestWorkoutService_DeleteCascadesSets(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t, nil)

	require.NoError(t, f.svc.DeleteWorkout(ctx, testUser, f.workout.ID))

	sets, err := f.store.Sets.ListByWorkout(ctx, testUser, f.workout.ID)
	require.NoError(t, err)
	assert.Empty(t, sets)

	_, err = f.svc.GetWorkout(ctx, testUser, f.workout.ID)
	assert.ErrorIs(t, err, service.ErrWorkoutNotFound)
}

func TestWorkoutService_Sets(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t, nil)

	_, err := f.svc.AddSet(ctx, testUser, f.workout.ID, domain.Set{ExerciseID: "nope", Reps: 1})
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)

	_, err = f.svc.AddSet(ctx, testUser, "nope", domain.Set{ExerciseID: f.bench.ID, Reps: 1})
	assert.ErrorIs(t, err, service.ErrWorkoutNotFound)

	_, err = f.svc.AddSet(ctx, testUser, f.workout.ID, domain.Set{ExerciseID: f.bench.ID, Reps: -1})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	sets, err := f.svc.ListSets(ctx, testUser, f.workout.ID)
	require.NoError(t, err)
	first := sets[0]

	updated, err := f.svc.UpdateSet(ctx, testUser, f.workout.ID, first.ID, domain.SetPatch{Reps: ptr(12)})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Reps)
	assert.Equal(t, 60.0, updated.Weight)

	other, err := f.svc.CreateWorkout(ctx, testUser, domain.Workout{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC), other.StartedAt)

	assert.ErrorIs(t, f.svc.DeleteSet(ctx, testUser, other.ID, first.ID), service.ErrSetNotFound)
	require.NoError(t, f.svc.DeleteSet(ctx, testUser, f.workout.ID, first.ID))
}

func TestWorkoutService_UpdateWorkoutRevalidates(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t, nil)

	early := f.workout.StartedAt.Add(-time.Hour)
	_, err := f.svc.UpdateWorkout(ctx, testUser, f.workout.ID, domain.WorkoutPatch{EndedAt: domain.Some(early)})
	assert.ErrorIs(t, err, service.ErrValidationFailed)

	reopened, err := f.svc.UpdateWorkout(ctx, testUser, f.workout.ID, domain.WorkoutPatch{EndedAt: domain.Null[time.Time]()})
	require.NoError(t, err)
	assert.Nil(t, reopened.EndedAt)

	summary, err := f.svc.Summary(ctx, testUser, f.workout.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.DurationMinutes)
}

func TestWorkoutService_WriteExport(t *testing.T) {
	f := newWorkoutFixture(t, nil)

	var buf bytes.Buffer
	n, err := f.svc.WriteExport(context.Background(), testUser, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	expected := `"Date","Exercise","Sets","Total Reps","Average Weight","Total Volume","Duration (min)"` + "\n" +
		`"2024-03-09","Bench Press",2,18,65,1160,45` + "\n" +
		`"2024-03-09","Squat",1,5,100,500,45` + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestWorkoutService_UploadExport(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := NewMockObjectStorage(ctrl)
	f := newWorkoutFixture(t, files)
	ctx := context.Background()

	var uploadedKey string
	files.EXPECT().
		PutObject(gomock.Any(), gomock.Any(), "text/csv", gomock.Any()).
		DoAndReturn(func(_ context.Context, key, _ string, body []byte) error {
			uploadedKey = key
			assert.True(t, strings.HasPrefix(key, "exports/"+testUser+"/"), key)
			assert.True(t, strings.HasSuffix(key, ".csv"), key)
			assert.Contains(t, string(body), `"Bench Press"`)
			return nil
		})
	files.EXPECT().
		GeneratePresignedDownloadURL(gomock.Any(), gomock.Any(), 10*time.Minute).
		DoAndReturn(func(_ context.Context, key string, _ time.Duration) (string, error) {
			return "https://bucket.example/" + key + "?sig=1", nil
		}).
		Times(2)

	result, err := f.svc.UploadExport(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, uploadedKey, result.Export.ObjectKey)
	assert.Equal(t, 2, result.Export.RowCount)
	assert.Equal(t, "workouts-2024-03-10.csv", result.Export.FileName)
	assert.Equal(t, "https://bucket.example/"+uploadedKey+"?sig=1", result.DownloadURL)
	assert.Equal(t, time.Date(2024, 3, 10, 18, 40, 0, 0, time.UTC), result.ExpiresAt)

	exports, err := f.svc.ListExports(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, exports, 1)

	again, err := f.svc.ExportDownloadURL(ctx, testUser, exports[0].ID)
	require.NoError(t, err)
	assert.Equal(t, result.DownloadURL, again.DownloadURL)

	_, err = f.svc.ExportDownloadURL(ctx, testUser, "missing")
	assert.ErrorIs(t, err, service.ErrExportNotFound)
}

func TestWorkoutService_UploadExportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := NewMockObjectStorage(ctrl)
	f := newWorkoutFixture(t, files)

	files.EXPECT().PutObject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("bucket gone"))

	_, err := f.svc.UploadExport(context.Background(), testUser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")

	exports, err := f.svc.ListExports(context.Background(), testUser)
	require.NoError(t, err)
	assert.Empty(t, exports)
}

func TestWorkoutService_UploadExportDisabled(t *testing.T) {
	f := newWorkoutFixture(t, storage.Disabled{})

	_, err := f.svc.UploadExport(context.Background(), testUser)
	assert.ErrorIs(t, err, service.ErrStorageDisabled)
}
