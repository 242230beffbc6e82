package domain

import (
	"time"
)

// Export stores metadata about a workout CSV uploaded to object storage.
// The file itself lives in the bucket under ObjectKey.
type Export struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	ObjectKey   string    `bson:"objectKey" json:"-"`
	FileName    string    `bson:"fileName" json:"fileName"`
	ContentType string    `bson:"contentType" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	RowCount    int       `bson:"rowCount" json:"rowCount"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
