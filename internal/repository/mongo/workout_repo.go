// internal/repository/mongo/workout_repo.go
package mongo

import (
	"alcyxob/lifelog-app/internal/domain"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	exerciseCollectionName = "exercises"
	workoutCollectionName  = "workouts"
	setCollectionName      = "sets"
)

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection collection[domain.Exercise]
}

func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Name == "" || exercise.UserID == "" {
		return "", errors.New("exercise name and user ID are required")
	}
	stamp(&exercise.ID, &exercise.CreatedAt, &exercise.UpdatedAt)
	return r.collection.insert(ctx, exercise.ID, exercise)
}

func (r *mongoExerciseRepository) GetByID(ctx context.Context, userID, id string) (*domain.Exercise, error) {
	return r.collection.byID(ctx, userID, id)
}

func (r *mongoExerciseRepository) List(ctx context.Context, userID string) ([]domain.Exercise, error) {
	return r.collection.find(ctx, bson.M{"userId": userID}, bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
}

// Update modifies an existing exercise. The owner (userId) is never changed.
func (r *mongoExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.Name == "" {
		return errors.New("exercise name cannot be empty")
	}
	return r.collection.update(ctx, exercise.UserID, exercise.ID, bson.M{
		"name":        exercise.Name,
		"muscleGroup": exercise.MuscleGroup,
		"description": exercise.Description,
	})
}

// Delete removes an exercise, ensuring it belongs to the specified user.
func (r *mongoExerciseRepository) Delete(ctx context.Context, userID, id string) error {
	return r.collection.deleteOne(ctx, userID, id)
}

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection collection[domain.Workout]
}

func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	if workout.UserID == "" || workout.StartedAt.IsZero() {
		return "", errors.New("workout requires userId and startedAt")
	}
	stamp(&workout.ID, &workout.CreatedAt, &workout.UpdatedAt)
	return r.collection.insert(ctx, workout.ID, workout)
}

func (r *mongoWorkoutRepository) GetByID(ctx context.Context, userID, id string) (*domain.Workout, error) {
	return r.collection.byID(ctx, userID, id)
}

func (r *mongoWorkoutRepository) List(ctx context.Context, userID string) ([]domain.Workout, error) {
	return r.collection.find(ctx, bson.M{"userId": userID}, bson.D{{Key: "startedAt", Value: -1}, {Key: "_id", Value: 1}})
}

func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	return r.collection.update(ctx, workout.UserID, workout.ID, bson.M{
		"name":      workout.Name,
		"startedAt": workout.StartedAt,
		"endedAt":   workout.EndedAt,
		"notes":     workout.Notes,
	})
}

func (r *mongoWorkoutRepository) Delete(ctx context.Context, userID, id string) error {
	return r.collection.deleteOne(ctx, userID, id)
}

// mongoSetRepository implements repository.SetRepository
type mongoSetRepository struct {
	collection collection[domain.Set]
}

func (r *mongoSetRepository) Create(ctx context.Context, set *domain.Set) (string, error) {
	if set.UserID == "" || set.WorkoutID == "" || set.ExerciseID == "" {
		return "", errors.New("set requires userId, workoutId and exerciseId")
	}
	stamp(&set.ID, &set.CreatedAt, &set.UpdatedAt)
	return r.collection.insert(ctx, set.ID, set)
}

func (r *mongoSetRepository) GetByID(ctx context.Context, userID, id string) (*domain.Set, error) {
	return r.collection.byID(ctx, userID, id)
}

func (r *mongoSetRepository) ListByWorkout(ctx context.Context, userID, workoutID string) ([]domain.Set, error) {
	return r.collection.find(ctx,
		bson.M{"userId": userID, "workoutId": workoutID},
		bson.D{{Key: "orderIndex", Value: 1}, {Key: "createdAt", Value: 1}},
	)
}

func (r *mongoSetRepository) Update(ctx context.Context, set *domain.Set) error {
	return r.collection.update(ctx, set.UserID, set.ID, bson.M{
		"exerciseId": set.ExerciseID,
		"weight":     set.Weight,
		"reps":       set.Reps,
		"orderIndex": set.OrderIndex,
	})
}

func (r *mongoSetRepository) Delete(ctx context.Context, userID, id string) error {
	return r.collection.deleteOne(ctx, userID, id)
}

func (r *mongoSetRepository) DeleteByWorkout(ctx context.Context, userID, workoutID string) (int, error) {
	return r.collection.deleteMany(ctx, bson.M{"userId": userID, "workoutId": workoutID})
}

// EnsureWorkoutIndexes creates necessary indexes for exercises, workouts and sets.
func EnsureWorkoutIndexes(ctx context.Context, db *mongo.Database) error {
	models := map[string]mongo.IndexModel{
		exerciseCollectionName: {
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index(),
		},
		workoutCollectionName: {
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startedAt", Value: -1}},
			Options: options.Index(),
		},
		setCollectionName: {
			// Sets are always read per workout, in order
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "workoutId", Value: 1}, {Key: "orderIndex", Value: 1}},
			Options: options.Index(),
		},
	}
	for name, model := range models {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	return nil
}
