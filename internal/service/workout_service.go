package service

import (
	"alcyxob/lifelog-app/internal/aggregate"
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/metrics"
	"alcyxob/lifelog-app/internal/repository"
	"alcyxob/lifelog-app/internal/storage"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const exportContentType = "text/csv"

// WorkoutDetail is a workout with its sets and per-exercise summary.
type WorkoutDetail struct {
	Workout domain.Workout
	Sets    []domain.Set
	Summary aggregate.WorkoutSummary
}

// ExportResult describes an uploaded export and how to download it.
type ExportResult struct {
	Export      domain.Export
	DownloadURL string
	ExpiresAt   time.Time
}

type WorkoutService interface {
	CreateExercise(ctx context.Context, userID string, exercise domain.Exercise) (*domain.Exercise, error)
	ListExercises(ctx context.Context, userID string) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, userID, exerciseID string, patch domain.ExercisePatch) (*domain.Exercise, error)
	// DeleteExercise leaves sets referencing the exercise in place.
	DeleteExercise(ctx context.Context, userID, exerciseID string) error

	CreateWorkout(ctx context.Context, userID string, workout domain.Workout) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, userID string) ([]WorkoutDetail, error)
	GetWorkout(ctx context.Context, userID, workoutID string) (*WorkoutDetail, error)
	UpdateWorkout(ctx context.Context, userID, workoutID string, patch domain.WorkoutPatch) (*domain.Workout, error)
	// DeleteWorkout removes the workout together with all of its sets.
	DeleteWorkout(ctx context.Context, userID, workoutID string) error
	Summary(ctx context.Context, userID, workoutID string) (aggregate.WorkoutSummary, error)

	ListSets(ctx context.Context, userID, workoutID string) ([]domain.Set, error)
	AddSet(ctx context.Context, userID, workoutID string, set domain.Set) (*domain.Set, error)
	UpdateSet(ctx context.Context, userID, workoutID, setID string, patch domain.SetPatch) (*domain.Set, error)
	DeleteSet(ctx context.Context, userID, workoutID, setID string) error

	// ExportRows renders one row per exercise group of every workout, newest
	// workout first.
	ExportRows(ctx context.Context, userID string) ([]aggregate.ExportRow, error)
	// WriteExport streams the CSV export to w and returns the row count.
	WriteExport(ctx context.Context, userID string, w io.Writer) (int, error)
	// UploadExport stores the CSV export in object storage and returns a
	// presigned download URL for it.
	UploadExport(ctx context.Context, userID string) (*ExportResult, error)
	ListExports(ctx context.Context, userID string) ([]domain.Export, error)
	ExportDownloadURL(ctx context.Context, userID, exportID string) (*ExportResult, error)
}

type workoutService struct {
	exerciseRepo  repository.ExerciseRepository
	workoutRepo   repository.WorkoutRepository
	setRepo       repository.SetRepository
	exportRepo    repository.ExportRepository
	files         storage.ObjectStorage
	calendar      Calendar
	presignExpiry time.Duration
	metrics       *metrics.Manager
}

func NewWorkoutService(store *repository.Store, files storage.ObjectStorage, opts Options) WorkoutService {
	if files == nil {
		files = storage.Disabled{}
	}
	expiry := opts.PresignExpiry
	if expiry <= 0 {
		expiry = storage.DefaultPresignedURLExpiry
	}
	return &workoutService{
		exerciseRepo:  store.Exercises,
		workoutRepo:   store.Workouts,
		setRepo:       store.Sets,
		exportRepo:    store.Exports,
		files:         files,
		calendar:      opts.Calendar,
		presignExpiry: expiry,
		metrics:       opts.Metrics,
	}
}

// === Exercises ===

func (s *workoutService) CreateExercise(ctx context.Context, userID string, exercise domain.Exercise) (*domain.Exercise, error) {
	exercise.UserID = userID
	if err := exercise.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.exerciseRepo.Create(ctx, &exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (s *workoutService) ListExercises(ctx context.Context, userID string) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx, userID)
}

func (s *workoutService) UpdateExercise(ctx context.Context, userID, exerciseID string, patch domain.ExercisePatch) (*domain.Exercise, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, userID, exerciseID)
	if err != nil {
		return nil, mapNotFound(err, ErrExerciseNotFound)
	}
	patch.Apply(exercise)
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, mapNotFound(err, ErrExerciseNotFound)
	}
	return exercise, nil
}

func (s *workoutService) DeleteExercise(ctx context.Context, userID, exerciseID string) error {
	return mapNotFound(s.exerciseRepo.Delete(ctx, userID, exerciseID), ErrExerciseNotFound)
}

func (s *workoutService) exerciseNames(ctx context.Context, userID string) (map[string]string, error) {
	exercises, err := s.exerciseRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}
	return names, nil
}

// === Workouts ===

func (s *workoutService) CreateWorkout(ctx context.Context, userID string, workout domain.Workout) (*domain.Workout, error) {
	workout.UserID = userID
	if workout.StartedAt.IsZero() {
		workout.StartedAt = s.calendar.Now().UTC()
	}
	if err := workout.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.workoutRepo.Create(ctx, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

func (s *workoutService) ListWorkouts(ctx context.Context, userID string) ([]WorkoutDetail, error) {
	workouts, err := s.workoutRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	names, err := s.exerciseNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]WorkoutDetail, 0, len(workouts))
	for _, w := range workouts {
		detail, err := s.detail(ctx, w, names)
		if err != nil {
			return nil, err
		}
		out = append(out, *detail)
	}
	return out, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, userID, workoutID string) (*WorkoutDetail, error) {
	workout, err := s.workout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	names, err := s.exerciseNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, *workout, names)
}

func (s *workoutService) UpdateWorkout(ctx context.Context, userID, workoutID string, patch domain.WorkoutPatch) (*domain.Workout, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	workout, err := s.workout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	patch.Apply(workout)
	if err := workout.Validate(); err != nil {
		return nil, err
	}
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}
	return workout, nil
}

func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID string) error {
	if err := s.workoutRepo.Delete(ctx, userID, workoutID); err != nil {
		return mapNotFound(err, ErrWorkoutNotFound)
	}
	if _, err := s.setRepo.DeleteByWorkout(ctx, userID, workoutID); err != nil {
		logrus.WithError(err).WithField("workout", workoutID).Error("failed to delete sets of removed workout")
		return err
	}
	return nil
}

func (s *workoutService) Summary(ctx context.Context, userID, workoutID string) (aggregate.WorkoutSummary, error) {
	detail, err := s.GetWorkout(ctx, userID, workoutID)
	if err != nil {
		return aggregate.WorkoutSummary{}, err
	}
	return detail.Summary, nil
}

func (s *workoutService) workout(ctx context.Context, userID, workoutID string) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, userID, workoutID)
	if err != nil {
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}
	return workout, nil
}

func (s *workoutService) detail(ctx context.Context, w domain.Workout, names map[string]string) (*WorkoutDetail, error) {
	sets, err := s.setRepo.ListByWorkout(ctx, w.UserID, w.ID)
	if err != nil {
		return nil, err
	}
	s.metrics.Aggregated(metrics.AggWorkoutSummary)
	return &WorkoutDetail{
		Workout: w,
		Sets:    sets,
		Summary: aggregate.SummarizeWorkout(w, sets, names, s.calendar.loc()),
	}, nil
}

// === Sets ===

func (s *workoutService) ListSets(ctx context.Context, userID, workoutID string) ([]domain.Set, error) {
	if _, err := s.workout(ctx, userID, workoutID); err != nil {
		return nil, err
	}
	return s.setRepo.ListByWorkout(ctx, userID, workoutID)
}

func (s *workoutService) AddSet(ctx context.Context, userID, workoutID string, set domain.Set) (*domain.Set, error) {
	if _, err := s.workout(ctx, userID, workoutID); err != nil {
		return nil, err
	}
	set.UserID = userID
	set.WorkoutID = workoutID
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.exerciseRepo.GetByID(ctx, userID, set.ExerciseID); err != nil {
		return nil, mapNotFound(err, ErrExerciseNotFound)
	}
	if _, err := s.setRepo.Create(ctx, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

func (s *workoutService) UpdateSet(ctx context.Context, userID, workoutID, setID string, patch domain.SetPatch) (*domain.Set, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	set, err := s.set(ctx, userID, workoutID, setID)
	if err != nil {
		return nil, err
	}
	if patch.ExerciseID != nil && *patch.ExerciseID != set.ExerciseID {
		if _, err := s.exerciseRepo.GetByID(ctx, userID, *patch.ExerciseID); err != nil {
			return nil, mapNotFound(err, ErrExerciseNotFound)
		}
	}
	patch.Apply(set)
	if err := s.setRepo.Update(ctx, set); err != nil {
		return nil, mapNotFound(err, ErrSetNotFound)
	}
	return set, nil
}

func (s *workoutService) DeleteSet(ctx context.Context, userID, workoutID, setID string) error {
	if _, err := s.set(ctx, userID, workoutID, setID); err != nil {
		return err
	}
	return mapNotFound(s.setRepo.Delete(ctx, userID, setID), ErrSetNotFound)
}

// set loads a set and checks it belongs to workoutID.
func (s *workoutService) set(ctx context.Context, userID, workoutID, setID string) (*domain.Set, error) {
	set, err := s.setRepo.GetByID(ctx, userID, setID)
	if err != nil {
		return nil, mapNotFound(err, ErrSetNotFound)
	}
	if set.WorkoutID != workoutID {
		return nil, ErrSetNotFound
	}
	return set, nil
}

// === Export ===

func (s *workoutService) ExportRows(ctx context.Context, userID string) ([]aggregate.ExportRow, error) {
	details, err := s.ListWorkouts(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows := make([]aggregate.ExportRow, 0)
	for _, d := range details {
		rows = append(rows, aggregate.ExportRows(d.Summary)...)
	}
	return rows, nil
}

func (s *workoutService) WriteExport(ctx context.Context, userID string, w io.Writer) (int, error) {
	rows, err := s.ExportRows(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := aggregate.WriteCSV(w, rows); err != nil {
		return 0, err
	}
	s.metrics.Exported("download")
	return len(rows), nil
}

func (s *workoutService) UploadExport(ctx context.Context, userID string) (*ExportResult, error) {
	if _, disabled := s.files.(storage.Disabled); disabled {
		return nil, ErrStorageDisabled
	}

	rows, err := s.ExportRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := aggregate.WriteCSV(&buf, rows); err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("exports/%s/%s.csv", userID, uuid.NewString())
	if err := s.files.PutObject(ctx, objectKey, exportContentType, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	export := domain.Export{
		UserID:      userID,
		ObjectKey:   objectKey,
		FileName:    fmt.Sprintf("workouts-%s.csv", s.calendar.Today()),
		ContentType: exportContentType,
		Size:        int64(buf.Len()),
		RowCount:    len(rows),
	}
	if _, err := s.exportRepo.Create(ctx, &export); err != nil {
		// the object is unreachable without its metadata
		if delErr := s.files.DeleteObject(ctx, objectKey); delErr != nil {
			logrus.WithError(delErr).WithField("key", objectKey).Warn("failed to remove orphaned export object")
		}
		return nil, err
	}
	s.metrics.Exported("s3")

	return s.presign(ctx, export)
}

func (s *workoutService) ListExports(ctx context.Context, userID string) ([]domain.Export, error) {
	return s.exportRepo.List(ctx, userID)
}

func (s *workoutService) ExportDownloadURL(ctx context.Context, userID, exportID string) (*ExportResult, error) {
	export, err := s.exportRepo.GetByID(ctx, userID, exportID)
	if err != nil {
		return nil, mapNotFound(err, ErrExportNotFound)
	}
	return s.presign(ctx, *export)
}

func (s *workoutService) presign(ctx context.Context, export domain.Export) (*ExportResult, error) {
	url, err := s.files.GeneratePresignedDownloadURL(ctx, export.ObjectKey, s.presignExpiry)
	if err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			return nil, ErrStorageDisabled
		}
		return nil, fmt.Errorf("presign export: %w", err)
	}
	return &ExportResult{
		Export:      export,
		DownloadURL: url,
		ExpiresAt:   s.calendar.Now().Add(s.presignExpiry).UTC(),
	}, nil
}
