package storage

import (
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrDisabled is returned by Disabled for every operation.
var ErrDisabled = errors.New("object storage is disabled")

//go:generate mockgen -source=$GOFILE -destination=../service/storage_mocks_test.go -package=service_test

// ObjectStorage defines the object storage operations used for exports.
type ObjectStorage interface {
	// PutObject uploads body under objectKey, replacing any existing object.
	PutObject(ctx context.Context, objectKey, contentType string, body []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// Disabled is the ObjectStorage used when no bucket is configured.
type Disabled struct{}

func (Disabled) PutObject(context.Context, string, string, []byte) error { return ErrDisabled }

func (Disabled) GeneratePresignedDownloadURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrDisabled
}

func (Disabled) DeleteObject(context.Context, string) error { return ErrDisabled }
