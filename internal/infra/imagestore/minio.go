package imagestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"newsportal/pkg/config"
)

// MinIOConfig holds object storage connection settings.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
}

// LoadMinIOConfig reads connection settings from the environment.
func LoadMinIOConfig() MinIOConfig {
	return MinIOConfig{
		Endpoint:        config.GetEnvString("MINIO_ENDPOINT", "localhost:9000"),
		AccessKeyID:     config.GetEnvString("MINIO_ACCESS_KEY", ""),
		SecretAccessKey: config.GetEnvString("MINIO_SECRET_KEY", ""),
		Bucket:          config.GetEnvString("MINIO_BUCKET", "news-images"),
		UseSSL:          config.GetEnvBool("MINIO_USE_SSL", false),
		Region:          config.GetEnvString("MINIO_REGION", "us-east-1"),
	}
}

// MinIO stores images as objects in a MinIO / S3-compatible bucket.
type MinIO struct {
	client *minio.Client
	bucket string
}

func NewMinIO(cfg MinIOConfig) (*MinIO, error) {
	endpoint := strings.TrimPrefix(cfg.Endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	store := &MinIO{client: client, bucket: cfg.Bucket}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	slog.Info("image store ready",
		slog.String("backend", "minio"),
		slog.String("endpoint", endpoint),
		slog.String("bucket", cfg.Bucket))
	return store, nil
}

func (s *MinIO) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	slog.Info("bucket created", slog.String("bucket", s.bucket))
	return nil
}

func (s *MinIO) Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	name, err := objectName(filename, contentType)
	if err != nil {
		return "", err
	}
	_, err = s.client.PutObject(ctx, s.bucket, name, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	slog.Debug("image stored",
		slog.String("object", name),
		slog.Int64("size", size))
	return name, nil
}

func (s *MinIO) Remove(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}
