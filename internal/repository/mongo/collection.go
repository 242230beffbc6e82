package mongo

import (
	"alcyxob/lifelog-app/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection wraps a mongo collection holding documents of type T. Ids are
// uuid strings stored in _id, so both backends share one id format.
type collection[T any] struct {
	coll *mongo.Collection
}

func newCollection[T any](db *mongo.Database, name string) collection[T] {
	return collection[T]{coll: db.Collection(name)}
}

// stamp prepares a new record for insertion.
func stamp(id *string, createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	*id = uuid.NewString()
	*createdAt = now
	*updatedAt = now
}

func (c collection[T]) insert(ctx context.Context, id string, doc *T) (string, error) {
	result, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	insertedID, ok := result.InsertedID.(string)
	if !ok || insertedID != id {
		return "", errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c collection[T]) byID(ctx context.Context, userID, id string) (*T, error) {
	return c.findOne(ctx, bson.M{"_id": id, "userId": userID})
}

func (c collection[T]) find(ctx context.Context, filter bson.M, sort bson.D) ([]T, error) {
	findOptions := options.Find().SetSort(sort)
	cursor, err := c.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// update applies a $set to the user's document. createdAt and userId are
// never part of set.
func (c collection[T]) update(ctx context.Context, userID, id string, set bson.M) error {
	if id == "" {
		return repository.ErrInvalidID
	}
	set["updatedAt"] = time.Now().UTC()
	result, err := c.coll.UpdateOne(ctx, bson.M{"_id": id, "userId": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (c collection[T]) deleteOne(ctx context.Context, userID, id string) error {
	result, err := c.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (c collection[T]) deleteMany(ctx context.Context, filter bson.M) (int, error) {
	result, err := c.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(result.DeletedCount), nil
}

// dateRange builds a filter on a YYYY-MM-DD field; empty bounds are open.
func dateRange(field, from, to string, filter bson.M) bson.M {
	cond := bson.M{}
	if from != "" {
		cond["$gte"] = from
	}
	if to != "" {
		cond["$lte"] = to
	}
	if len(cond) > 0 {
		filter[field] = cond
	}
	return filter
}

func requireUser(userID string) error {
	if userID == "" {
		return errors.New("record requires a user id")
	}
	return nil
}
