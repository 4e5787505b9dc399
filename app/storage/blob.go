// Package storage provides the blob store that holds uploaded post
// images and maps stored objects to public URLs.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStore stores an uploaded file and returns the URL it will be
// served from.
type BlobStore interface {
	Put(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

// Config holds the object store connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

// MinioStore implements BlobStore against a MinIO/S3 bucket.
type MinioStore struct {
	cfg    Config
	client *minio.Client
}

// New connects to the object store described by cfg.
func New(cfg Config) (*MinioStore, error) {
	cl, err := minio.New(strings.TrimPrefix(cfg.Endpoint, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{cfg: cfg, client: cl}, nil
}

// EnsureBucket creates the configured bucket if it does not exist yet.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Put uploads the file under a collision-free object name and returns
// the public URL for it.
func (s *MinioStore) Put(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	objectName := uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	return s.cfg.PublicURL + "/" + s.cfg.Bucket + "/" + objectName, nil
}
