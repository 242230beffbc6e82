// internal/repository/mongo/lifelog_repo.go
package mongo

import (
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	goalCollectionName         = "goals"
	healthMetricCollectionName = "health_metrics"
	screenTimeCollectionName   = "screen_time"
	todoCollectionName         = "todos"
)

// mongoGoalRepository implements repository.GoalRepository
type mongoGoalRepository struct {
	collection collection[domain.Goal]
}

func (r *mongoGoalRepository) Create(ctx context.Context, goal *domain.Goal) (string, error) {
	if err := requireUser(goal.UserID); err != nil {
		return "", err
	}
	stamp(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	return r.collection.insert(ctx, goal.ID, goal)
}

func (r *mongoGoalRepository) GetByID(ctx context.Context, userID, id string) (*domain.Goal, error) {
	return r.collection.byID(ctx, userID, id)
}

func (r *mongoGoalRepository) List(ctx context.Context, userID string) ([]domain.Goal, error) {
	return r.collection.find(ctx, bson.M{"userId": userID}, bson.D{{Key: "createdAt", Value: 1}})
}

func (r *mongoGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	return r.collection.update(ctx, goal.UserID, goal.ID, bson.M{
		"title":        goal.Title,
		"category":     goal.Category,
		"targetValue":  goal.TargetValue,
		"currentValue": goal.CurrentValue,
		"unit":         goal.Unit,
		"deadline":     goal.Deadline,
		"status":       goal.Status,
	})
}

func (r *mongoGoalRepository) Delete(ctx context.Context, userID, id string) error {
	return r.collection.deleteOne(ctx, userID, id)
}

// mongoHealthMetricRepository implements repository.HealthMetricRepository
type mongoHealthMetricRepository struct {
	collection collection[domain.HealthMetric]
}

func (r *mongoHealthMetricRepository) Create(ctx context.Context, metric *domain.HealthMetric) (string, error) {
	if err := requireUser(metric.UserID); err != nil {
		return "", err
	}
	stamp(&metric.ID, &metric.CreatedAt, &metric.UpdatedAt)
	return r.collection.insert(ctx, metric.ID, metric)
}

func (r *mongoHealthMetricRepository) GetByID(ctx context.Context, userID, id string) (*domain.HealthMetric, error) {
	return r.collection.byID(ctx, userID, id)
}

func (r *mongoHealthMetricRepository) List(ctx context.Context, userID string, filter repository.HealthMetricFilter) ([]domain.HealthMetric, error) {
	query := dateRange("date", filter.From, filter.To, bson.M{"userId": userID})
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	return r.collection.find(ctx, query, bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})
}

func (r *mongoHealthMetricRepository) Update(ctx context.Context, metric *domain.HealthMetric) error {
	return r.collection.update(ctx, metric.UserID, metric.ID, bson.M{
		"date":  metric.Date,
		"type":  metric.Type,
		"value": metric.Value,
		"unit":  metric.Unit,
		"note":  metric.Note,
	})
}

func (r *mongoHealthMetricRepository) Delete(ctx context.Context, userID, id string) error {
	return r.collection.deleteOne(ctx, userID, id)
}

// mongoScreenTimeRepository implements repository.ScreenTimeRepository
type mongoScreenTimeRepository struct {
	collection collection[domain.ScreenTimeEntry]
}

func (r *mongoScreenTimeRepository) Create(ctx context.Context, entry *domain.ScreenTimeEntry) (string, error) {
	if err := requireUser(entry.UserID); err != nil {
		return "", err
	}
	stamp(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	return r.collection.insert(ctx, entry.ID, entry)
}

func (r *mongoScreenTimeRepository) GetByID(ctx context.Context, userID, id string) (*domain.ScreenTimeEntry, error) {
	return r.collection.byID(ctx, userID, id)
}

func (r *mongoScreenTimeRepository) ListByDateRange(ctx context.Context, userID, from, to string) ([]domain.ScreenTimeEntry, error) {
	return r.collection.find(ctx,
		dateRange("date", from, to, bson.M{"userId": userID}),
		bson.D{{Key: "date", Value: 1}, {Key: "category", Value: 1}},
	)
}

func (r *mongoScreenTimeRepository) Update(ctx context.Context, entry *domain.ScreenTimeEntry) error {
	return r.collection.update(ctx, entry.UserID, entry.ID, bson.M{
		"date":     entry.Date,
		"category": entry.Category,
		"minutes":  entry.Minutes,
	})
}

func (r *mongoScreenTimeRepository) Delete(ctx context.Context, userID, id string) error {
	return r.collection.deleteOne(ctx, userID, id)
}

// mongoTodoRepository implements repository.TodoRepository
type mongoTodoRepository struct {
	collection collection[domain.Todo]
}

func (r *mongoTodoRepository) Create(ctx context.Context, todo *domain.Todo) (string, error) {
	if err := requireUser(todo.UserID); err != nil {
		return "", err
	}
	stamp(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
	return r.collection.insert(ctx, todo.ID, todo)
}

func (r *mongoTodoRepository) GetByID(ctx context.Context, userID, id string) (*domain.Todo, error) {
	return r.collection.byID(ctx, userID, id)
}

func (r *mongoTodoRepository) List(ctx context.Context, userID string, filter repository.TodoFilter) ([]domain.Todo, error) {
	query := bson.M{"userId": userID}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}
	return r.collection.find(ctx, query, bson.D{{Key: "completed", Value: 1}, {Key: "createdAt", Value: 1}})
}

func (r *mongoTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	return r.collection.update(ctx, todo.UserID, todo.ID, bson.M{
		"title":       todo.Title,
		"description": todo.Description,
		"dueDate":     todo.DueDate,
		"priority":    todo.Priority,
		"completed":   todo.Completed,
		"completedAt": todo.CompletedAt,
	})
}

func (r *mongoTodoRepository) Delete(ctx context.Context, userID, id string) error {
	return r.collection.deleteOne(ctx, userID, id)
}

// EnsureLifelogIndexes creates necessary indexes for goals, metrics, screen time and todos.
func EnsureLifelogIndexes(ctx context.Context, db *mongo.Database) error {
	models := map[string]mongo.IndexModel{
		goalCollectionName: {
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
		healthMetricCollectionName: {
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "type", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		screenTimeCollectionName: {
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		todoCollectionName: {
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "completed", Value: 1}},
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
