package storage

import (
	"alcyxob/lifelog-app/internal/config"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL("", true))
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000", true))
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "http://localhost:9000", endpointURL("http://localhost:9000", true))
}

func TestS3Storage_PresignDownload(t *testing.T) {
	st, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "exports",
	})
	require.NoError(t, err)

	// Presigning is computed locally; no server is contacted.
	raw, err := st.GeneratePresignedDownloadURL(context.Background(), "exports/u1/a.csv", 5*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/exports/exports/u1/a.csv"), u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
}

func TestDisabled(t *testing.T) {
	var st ObjectStorage = Disabled{}
	assert.ErrorIs(t, st.PutObject(context.Background(), "k", "text/csv", nil), ErrDisabled)
	_, err := st.GeneratePresignedDownloadURL(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, st.DeleteObject(context.Background(), "k"), ErrDisabled)
}
