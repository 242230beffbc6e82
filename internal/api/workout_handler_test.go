package api_test

import (
	"alcyxob/lifelog-app/internal/aggregate"
	"alcyxob/lifelog-app/internal/api"
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/storage"
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryObjects keeps uploaded objects in a map.
type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: make(map[string][]byte)}
}

func (m *memoryObjects) PutObject(_ context.Context, key, _ string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), body...)
	return nil
}

func (m *memoryObjects) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	return "https://files.test/" + key + "?expires=" + expires.String(), nil
}

func (m *memoryObjects) DeleteObject(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

var _ storage.ObjectStorage = (*memoryObjects)(nil)

// seedWorkout logs a 45 minute squat session on 2024-03-09.
func seedWorkout(t *testing.T, s *testServer) (workoutID, exerciseID string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/exercises", gin.H{"name": "Squat", "muscleGroup": "Legs"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	exercise := decode[domain.Exercise](t, rec)

	rec = s.do(t, http.MethodPost, "/api/v1/workouts", gin.H{
		"name":      "Leg day",
		"startedAt": "2024-03-09T17:00:00Z",
		"endedAt":   "2024-03-09T17:45:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	workout := decode[api.WorkoutResponse](t, rec)
	assert.Equal(t, 45, workout.DurationMinutes)

	for _, reps := range []int{5, 3} {
		rec = s.do(t, http.MethodPost, "/api/v1/workouts/"+workout.ID+"/sets", gin.H{
			"exerciseId": exercise.ID, "weight": 100, "reps": reps,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	return workout.ID, exercise.ID
}

func TestWorkoutHandler_Summary(t *testing.T) {
	s := newTestServer(t, storage.Disabled{})
	workoutID, exerciseID := seedWorkout(t, s)

	rec := s.do(t, http.MethodGet, "/api/v1/workouts/"+workoutID+"/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[aggregate.WorkoutSummary](t, rec)
	assert.Equal(t, 45, summary.DurationMinutes)
	assert.Equal(t, 800.0, summary.TotalVolume)
	require.Len(t, summary.Exercises, 1)
	assert.Equal(t, aggregate.ExerciseVolume{
		ExerciseID:    exerciseID,
		ExerciseName:  "Squat",
		SetCount:      2,
		TotalReps:     8,
		TotalVolume:   800,
		AverageWeight: 100,
	}, summary.Exercises[0])

	rec = s.do(t, http.MethodGet, "/api/v1/workouts/"+workoutID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[api.WorkoutResponse](t, rec)
	assert.Len(t, detail.Sets, 2)
	require.NotNil(t, detail.Summary)
}

func TestWorkoutHandler_AddSetUnknownExercise(t *testing.T) {
	s := newTestServer(t, storage.Disabled{})
	workoutID, _ := seedWorkout(t, s)

	rec := s.do(t, http.MethodPost, "/api/v1/workouts/"+workoutID+"/sets", gin.H{"exerciseId": "nope", "weight": 10, "reps": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/workouts/"+workoutID+"/sets", gin.H{"weight": 10, "reps": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkoutHandler_DeletedExerciseRendersUnknown(t *testing.T) {
	s := newTestServer(t, storage.Disabled{})
	workoutID, exerciseID := seedWorkout(t, s)

	rec := s.do(t, http.MethodDelete, "/api/v1/exercises/"+exerciseID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/workouts/"+workoutID+"/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[aggregate.WorkoutSummary](t, rec)
	require.Len(t, summary.Exercises, 1)
	assert.Equal(t, "Unknown", summary.Exercises[0].ExerciseName)
}

func TestWorkoutHandler_DownloadExport(t *testing.T) {
	s := newTestServer(t, storage.Disabled{})
	seedWorkout(t, s)

	rec := s.do(t, http.MethodGet, "/api/v1/workouts/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Equal(t, `attachment; filename="workouts-2024-03-10.csv"`, rec.Header().Get("Content-Disposition"))

	expected := `"Date","Exercise","Sets","Total Reps","Average Weight","Total Volume","Duration (min)"` + "\n" +
		`"2024-03-09","Squat",2,8,100,800,45` + "\n"
	assert.Equal(t, expected, rec.Body.String())
}

func TestWorkoutHandler_UploadExportDisabled(t *testing.T) {
	s := newTestServer(t, storage.Disabled{})

	rec := s.do(t, http.MethodPost, "/api/v1/workouts/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWorkoutHandler_UploadExport(t *testing.T) {
	files := newMemoryObjects()
	s := newTestServer(t, files)
	seedWorkout(t, s)

	rec := s.do(t, http.MethodPost, "/api/v1/workouts/export", nil, api.HeaderUserID, "alice")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	export := decode[api.ExportResponse](t, rec)
	assert.Equal(t, 0, export.RowCount, "alice has no workouts")
	assert.Contains(t, export.DownloadURL, "exports/alice/")
	require.NotNil(t, export.ExpiresAt)

	rec = s.do(t, http.MethodPost, "/api/v1/workouts/export", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	export = decode[api.ExportResponse](t, rec)
	assert.Equal(t, 1, export.RowCount)
	assert.Equal(t, "workouts-2024-03-10.csv", export.FileName)

	files.mu.Lock()
	assert.Len(t, files.objects, 2)
	files.mu.Unlock()

	rec = s.do(t, http.MethodGet, "/api/v1/workouts/exports", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.ExportResponse](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/api/v1/workouts/exports/"+export.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[api.ExportResponse](t, rec).DownloadURL, "exports/"+defaultUser+"/")
}

func TestWorkoutHandler_DeleteCascadesSets(t *testing.T) {
	s := newTestServer(t, storage.Disabled{})
	workoutID, _ := seedWorkout(t, s)

	rec := s.do(t, http.MethodDelete, "/api/v1/workouts/"+workoutID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/workouts/"+workoutID+"/sets", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
