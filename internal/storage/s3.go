// backend-go/internal/storage/s3.go
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config holds the connection info for an S3-compatible snapshot bucket.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Budget    int64
}

// S3Store persists snapshots in an S3-compatible bucket via minio.
type S3Store struct {
	client *minio.Client
	bucket string
	budget int64
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("s3 credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	return &S3Store{client: client, bucket: cfg.Bucket, budget: cfg.Budget}, nil
}

func (s *S3Store) key(datasetID string) string {
	return "snapshots/" + sanitizeID(datasetID) + ".json"
}

func (s *S3Store) Save(ctx context.Context, datasetID string, snap *Snapshot) error {
	data, err := Encode(snap, s.budget)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.key(datasetID),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return nil
}

func (s *S3Store) Load(ctx context.Context, datasetID string) (*Snapshot, error) {
	object, err := s.client.GetObject(ctx, s.bucket, s.key(datasetID), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		// GetObject is lazy; missing keys surface on first read.
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data)
}

func (s *S3Store) Delete(ctx context.Context, datasetID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(datasetID), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

var _ SnapshotStore = (*S3Store)(nil)
