package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/lshigami/sketchquiz/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// MinioImageArchive uploads graded drawings to an S3 compatible bucket.
type MinioImageArchive struct {
	client *minio.Client
	bucket string
}

func NewMinioImageArchive(cfg *config.Config) (*MinioImageArchive, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioImageArchive{client: client, bucket: cfg.Minio.Bucket}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (a *MinioImageArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", a.bucket, err)
	}
	log.Info().Str("bucket", a.bucket).Msg("Created drawing archive bucket")
	return nil
}

func (a *MinioImageArchive) Store(ctx context.Context, resultID string, png []byte) error {
	_, err := a.client.PutObject(ctx, a.bucket, ObjectKey(resultID), bytes.NewReader(png), int64(len(png)), minio.PutObjectOptions{
		ContentType: "image/png",
	})
	if err != nil {
		return fmt.Errorf("upload drawing %s: %w", resultID, err)
	}
	return nil
}

func ObjectKey(resultID string) string {
	return "results/" + resultID + ".png"
}
