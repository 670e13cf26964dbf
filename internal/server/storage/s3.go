// Package storage issues presigned URLs for resume files held in an
// S3-compatible object store.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/internova/internova/internal/server/config"
)

const presignExpiry = 15 * time.Minute

// ResumeStore hands out short-lived upload and download URLs so resume bytes
// never pass through the API server.
type ResumeStore struct {
	bucket  string
	presign *s3.PresignClient
}

// NewResumeStore builds a store from the backend configuration.
func NewResumeStore(ctx context.Context, c *config.Config) (*ResumeStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(c.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,     // MINIO_ROOT_USER
			c.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &ResumeStore{bucket: c.S3Bucket, presign: s3.NewPresignClient(client)}, nil
}

// RandomStorageKey returns a fresh date-partitioned object key.
func RandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("resumes/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// PresignedPutURL returns a new object key and a URL the client can PUT the
// resume to.
func (s *ResumeStore) PresignedPutURL(ctx context.Context) (key, url string, err error) {
	key = RandomStorageKey()

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignedGetURL returns a URL the resume at key can be downloaded from.
func (s *ResumeStore) PresignedGetURL(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
