// internal/repository/mongo/nutrition_repo.go
package mongo

import (
	"alcyxob/lifelog-app/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mealCollectionName          = "meals"
	nutritionGoalCollectionName = "nutrition_goals"
)

var mealSort = bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

// mongoMealRepository implements repository.MealRepository
type mongoMealRepository struct {
	collection collection[domain.MealEntry]
}

func (r *mongoMealRepository) Create(ctx context.Context, meal *domain.MealEntry) (string, error) {
	if err := requireUser(meal.UserID); err != nil {
		return "", err
	}
	stamp(&meal.ID, &meal.CreatedAt, &meal.UpdatedAt)
	return r.collection.insert(ctx, meal.ID, meal)
}

func (r *mongoMealRepository) GetByID(ctx context.Context, userID, id string) (*domain.MealEntry, error) {
	return r.collection.byID(ctx, userID, id)
}

func (r *mongoMealRepository) ListByDate(ctx context.Context, userID, date string) ([]domain.MealEntry, error) {
	return r.collection.find(ctx, bson.M{"userId": userID, "date": date}, mealSort)
}

func (r *mongoMealRepository) ListByDateRange(ctx context.Context, userID, from, to string) ([]domain.MealEntry, error) {
	return r.collection.find(ctx, dateRange("date", from, to, bson.M{"userId": userID}), mealSort)
}

func (r *mongoMealRepository) Update(ctx context.Context, meal *domain.MealEntry) error {
	return r.collection.update(ctx, meal.UserID, meal.ID, bson.M{
		"date":        meal.Date,
		"mealType":    meal.MealType,
		"name":        meal.Name,
		"foods":       meal.Foods,
		"totalsCache": meal.TotalsCache,
	})
}

func (r *mongoMealRepository) Delete(ctx context.Context, userID, id string) error {
	return r.collection.deleteOne(ctx, userID, id)
}

// mongoNutritionGoalRepository implements repository.NutritionGoalRepository
type mongoNutritionGoalRepository struct {
	collection collection[domain.NutritionGoal]
}

func (r *mongoNutritionGoalRepository) Create(ctx context.Context, goal *domain.NutritionGoal) (string, error) {
	if err := requireUser(goal.UserID); err != nil {
		return "", err
	}
	stamp(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	return r.collection.insert(ctx, goal.ID, goal)
}

func (r *mongoNutritionGoalRepository) GetActive(ctx context.Context, userID string) (*domain.NutritionGoal, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	return r.collection.findOne(ctx, bson.M{"userId": userID, "active": true}, opts)
}

func (r *mongoNutritionGoalRepository) Update(ctx context.Context, goal *domain.NutritionGoal) error {
	return r.collection.update(ctx, goal.UserID, goal.ID, bson.M{
		"calorieTarget": goal.CalorieTarget,
		"proteinTarget": goal.ProteinTarget,
		"carbsTarget":   goal.CarbsTarget,
		"fatTarget":     goal.FatTarget,
		"fiberTarget":   goal.FiberTarget,
		"sodiumTarget":  goal.SodiumTarget,
		"active":        goal.Active,
	})
}

// EnsureNutritionIndexes creates necessary indexes for meals and goals.
func EnsureNutritionIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(mealCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index(),
	}); err != nil {
		return err
	}
	_, err := db.Collection(nutritionGoalCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "active", Value: 1}, {Key: "updatedAt", Value: -1}},
		Options: options.Index(),
	})
	return err
}
