package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"primero/rentdesk/internal/config"
)

// contractsPrefix namespaces every uploaded contract document in the bucket.
const contractsPrefix = "contracts"

// IDocumentStorage defines the interface for contract document storage.
type IDocumentStorage interface {
	Upload(ctx context.Context, tenantID, filename, contentType string, body io.Reader) (string, error)
	Remove(ctx context.Context, fileURL string) error
	PublicURL(key string) string
}

// s3Storage implements IDocumentStorage on top of S3.
type s3Storage struct {
	cfg      *config.Config
	s3Client *s3.Client
}

// NewS3Storage creates a new S3 document storage service.
func NewS3Storage(cfg *config.Config) (IDocumentStorage, error) {
	awsCfg, err := aws_config.LoadDefaultConfig(context.TODO(),
		aws_config.WithRegion(cfg.AwsRegion),
		// Use static credentials from config for simplicity
		// For production, prefer IAM roles or other secure credential methods
		aws_config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AwsAccessKeyID,
			cfg.AwsSecretAccessKey,
			"", // session token
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &s3Storage{
		cfg:      cfg,
		s3Client: s3.NewFromConfig(awsCfg),
	}, nil
}

// Upload stores a contract document and returns its public URL.
// The key embeds the tenant ID and a fresh UUID so replacing a document never
// overwrites the previous object.
func (s *s3Storage) Upload(ctx context.Context, tenantID, filename, contentType string, body io.Reader) (string, error) {
	// Keep only the base name; client-supplied paths must not shape the key.
	safeName := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	objectKey := fmt.Sprintf("%s/%s/%d_%s_%s", contractsPrefix, tenantID, time.Now().UnixMilli(), uuid.NewString()[:8], safeName)

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.AwsS3Bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document %s: %w", objectKey, err)
	}

	return s.PublicURL(objectKey), nil
}

// Remove deletes the object referenced by a stored document URL. A URL that
// does not point into the contracts prefix is ignored rather than treated as
// an error, so records with hand-edited URLs can still be deleted.
func (s *s3Storage) Remove(ctx context.Context, fileURL string) error {
	key := s.keyFromURL(fileURL)
	if key == "" {
		return nil
	}

	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.AwsS3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	return nil
}

// PublicURL builds the externally reachable URL for an object key.
func (s *s3Storage) PublicURL(key string) string {
	if s.cfg.DocumentBaseURL != "" {
		return strings.TrimSuffix(s.cfg.DocumentBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AwsS3Bucket, s.cfg.AwsRegion, key)
}

// keyFromURL recovers the object key from a public document URL.
func (s *s3Storage) keyFromURL(fileURL string) string {
	marker := "/" + contractsPrefix + "/"
	idx := strings.Index(fileURL, marker)
	if idx < 0 {
		return ""
	}
	return contractsPrefix + "/" + fileURL[idx+len(marker):]
}
