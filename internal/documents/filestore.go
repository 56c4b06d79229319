package documents

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/isanahealth/practice-api/pkg/logging"
)

// S3API is the subset of the S3 client used by FileStore.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// FileStore holds uploaded files in an S3 bucket.
type FileStore struct {
	bucket   string
	baseURL  string
	s3Client S3API
	logger   *logging.Logger
}

// NewFileStore creates a FileStore. baseURL is the public prefix objects are
// served from; when empty a virtual-hosted S3 URL is derived from the region.
func NewFileStore(s3Client S3API, bucket, region, baseURL string, logger *logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.Default()
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &FileStore{
		bucket:   bucket,
		baseURL:  strings.TrimRight(baseURL, "/"),
		s3Client: s3Client,
		logger:   logger,
	}
}

// Enabled returns true if object storage is configured.
func (s *FileStore) Enabled() bool {
	return s != nil && s.bucket != "" && s.s3Client != nil
}

// Put uploads the file bytes under a fresh key scoped to the user. It returns
// the storage key and the public URL.
func (s *FileStore) Put(ctx context.Context, userID, name, contentType string, body io.Reader, size int64) (key, url string, err error) {
	if !s.Enabled() {
		return "", "", fmt.Errorf("documents: object storage not configured")
	}

	key = fmt.Sprintf("documents/%s/%s/%s", userID, uuid.New().String(), sanitizeName(name))
	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", "", fmt.Errorf("documents: s3 put %s: %w", key, err)
	}

	s.logger.Info("document uploaded", "key", key, "size", size)
	return key, s.baseURL + "/" + key, nil
}

// Delete removes the object. S3 deletes are idempotent so a missing key is
// not an error.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if !s.Enabled() || key == "" {
		return nil
	}
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("documents: s3 delete %s: %w", key, err)
	}
	return nil
}

// sanitizeName keeps only the final path element and replaces characters that
// are awkward in keys and URLs.
func sanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
