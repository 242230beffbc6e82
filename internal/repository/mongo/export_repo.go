package mongo

import (
	"alcyxob/lifelog-app/internal/domain"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exportCollectionName = "exports"

// mongoExportRepository implements repository.ExportRepository
type mongoExportRepository struct {
	collection collection[domain.Export]
}

// Create inserts new export metadata.
func (r *mongoExportRepository) Create(ctx context.Context, export *domain.Export) (string, error) {
	if export.UserID == "" || export.ObjectKey == "" {
		return "", errors.New("export requires userId and objectKey")
	}
	export.ID = uuid.NewString()
	export.CreatedAt = time.Now().UTC()
	return r.collection.insert(ctx, export.ID, export)
}

func (r *mongoExportRepository) GetByID(ctx context.Context, userID, id string) (*domain.Export, error) {
	return r.collection.byID(ctx, userID, id)
}

func (r *mongoExportRepository) List(ctx context.Context, userID string) ([]domain.Export, error) {
	return r.collection.find(ctx, bson.M{"userId": userID}, bson.D{{Key: "createdAt", Value: -1}})
}

// EnsureExportIndexes creates necessary indexes for the exports collection.
func EnsureExportIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(exportCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "objectKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
