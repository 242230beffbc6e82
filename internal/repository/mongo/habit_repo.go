// internal/repository/mongo/habit_repo.go
package mongo

import (
	"alcyxob/lifelog-app/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	habitCollectionName      = "habits"
	habitEntryCollectionName = "habit_entries"
)

// mongoHabitRepository implements repository.HabitRepository
type mongoHabitRepository struct {
	collection collection[domain.Habit]
}

func (r *mongoHabitRepository) Create(ctx context.Context, habit *domain.Habit) (string, error) {
	if err := requireUser(habit.UserID); err != nil {
		return "", err
	}
	stamp(&habit.ID, &habit.CreatedAt, &habit.UpdatedAt)
	return r.collection.insert(ctx, habit.ID, habit)
}

func (r *mongoHabitRepository) GetByID(ctx context.Context, userID, id string) (*domain.Habit, error) {
	return r.collection.byID(ctx, userID, id)
}

func (r *mongoHabitRepository) List(ctx context.Context, userID string) ([]domain.Habit, error) {
	return r.collection.find(ctx, bson.M{"userId": userID}, bson.D{{Key: "createdAt", Value: 1}})
}

func (r *mongoHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	return r.collection.update(ctx, habit.UserID, habit.ID, bson.M{
		"name":        habit.Name,
		"description": habit.Description,
		"frequency":   habit.Frequency,
		"color":       habit.Color,
		"archived":    habit.Archived,
	})
}

func (r *mongoHabitRepository) Delete(ctx context.Context, userID, id string) error {
	return r.collection.deleteOne(ctx, userID, id)
}

// mongoHabitEntryRepository implements repository.HabitEntryRepository
type mongoHabitEntryRepository struct {
	collection collection[domain.HabitEntry]
}

func (r *mongoHabitEntryRepository) Create(ctx context.Context, entry *domain.HabitEntry) (string, error) {
	if err := requireUser(entry.UserID); err != nil {
		return "", err
	}
	stamp(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	return r.collection.insert(ctx, entry.ID, entry)
}

func (r *mongoHabitEntryRepository) GetByID(ctx context.Context, userID, id string) (*domain.HabitEntry, error) {
	return r.collection.byID(ctx, userID, id)
}

func (r *mongoHabitEntryRepository) ListByHabit(ctx context.Context, userID, habitID string) ([]domain.HabitEntry, error) {
	return r.collection.find(ctx,
		bson.M{"userId": userID, "habitId": habitID},
		bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}},
	)
}

func (r *mongoHabitEntryRepository) Update(ctx context.Context, entry *domain.HabitEntry) error {
	return r.collection.update(ctx, entry.UserID, entry.ID, bson.M{
		"date":      entry.Date,
		"completed": entry.Completed,
		"value":     entry.Value,
		"note":      entry.Note,
	})
}

func (r *mongoHabitEntryRepository) Delete(ctx context.Context, userID, id string) error {
	return r.collection.deleteOne(ctx, userID, id)
}

func (r *mongoHabitEntryRepository) DeleteByHabit(ctx context.Context, userID, habitID string) (int, error) {
	return r.collection.deleteMany(ctx, bson.M{"userId": userID, "habitId": habitID})
}

// EnsureHabitIndexes creates necessary indexes for habits and their entries.
func EnsureHabitIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(habitCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index(),
	}); err != nil {
		return err
	}
	_, err := db.Collection(habitEntryCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		// Not unique: several entries per (habit, date) are allowed
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "habitId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index(),
	})
	return err
}
