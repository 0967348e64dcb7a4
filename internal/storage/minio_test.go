package storage

import (
	"testing"

	"github.com/lshigami/sketchquiz/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "results/3f2a.png", ObjectKey("3f2a"))
}

func TestNewMinioImageArchive(t *testing.T) {
	cfg := &config.Config{Minio: config.Minio{
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "drawings",
	}}

	archive, err := NewMinioImageArchive(cfg)

	require.NoError(t, err)
	assert.Equal(t, "drawings", archive.bucket)
}

func TestNewMinioImageArchive_BadEndpoint(t *testing.T) {
	cfg := &config.Config{Minio: config.Minio{Endpoint: "http://localhost:9000/with/path"}}
	_, err := NewMinioImageArchive(cfg)
	assert.Error(t, err)
}
