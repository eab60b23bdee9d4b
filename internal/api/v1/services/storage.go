package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorageService archives visit recordings in MinIO / S3-compatible
// object storage.
type MinioStorageService struct {
	client *minio.Client
	bucket string
}

// NewMinioStorageServiceFromEnv builds the archive from MINIO_* environment
// variables. Returns (nil, nil) when MINIO_ENDPOINT is unset, which disables
// archival.
func NewMinioStorageServiceFromEnv() (StorageService, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	if accessKey == "" {
		accessKey = "minioadmin"
	}

	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if secretKey == "" {
		secretKey = "minioadmin"
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "scribe-recordings"
	}

	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	service := &MinioStorageService{
		client: client,
		bucket: bucket,
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return service, nil
}

// ArchiveRecording stores the raw audio and returns the object key.
func (s *MinioStorageService) ArchiveRecording(ctx context.Context, patientID *int, filename, contentType string, data []byte) (string, error) {
	owner := "unassigned"
	if patientID != nil {
		owner = fmt.Sprintf("patient-%d", *patientID)
	}

	fileID := uuid.New().String()[:8]
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("recordings/%s/%d-%s%s", owner, time.Now().Unix(), fileID, ext)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": filename,
			"uploaded-at":   time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload recording: %w", err)
	}

	return key, nil
}
