package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage is the binary-object boundary: presigned write URLs,
// existence checks, deletes and server-side puts for the direct upload path.
type ObjectStorage interface {
	// IssueWriteURL returns a time-bounded PUT URL scoped to the given
	// content type.
	IssueWriteURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	// ObjectExists reports whether the key holds a stored object.
	ObjectExists(ctx context.Context, key string) (bool, error)
	DeleteObject(ctx context.Context, key string) error
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// PublicURL derives the stable public read locator for a key.
	PublicURL(key string) string
	Bucket() string
}

// S3ObjectStorage talks to any S3-compatible endpoint through the MinIO
// client. Public URLs use the S3 virtual-host form so existing stored
// image_url values keep resolving.
type S3ObjectStorage struct {
	client *minio.Client
	bucket string
	region string
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

func NewS3ObjectStorage(cfg S3Config) (*S3ObjectStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	return &S3ObjectStorage{client: client, bucket: cfg.Bucket, region: cfg.Region}, nil
}

func (s *S3ObjectStorage) IssueWriteURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	headers := http.Header{}
	headers.Set("Content-Type", contentType)

	signed, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, key, ttl, url.Values{}, headers)
	if err != nil {
		return "", err
	}
	return signed.String(), nil
}

func (s *S3ObjectStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *S3ObjectStorage) DeleteObject(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *S3ObjectStorage) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *S3ObjectStorage) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3ObjectStorage) Bucket() string {
	return s.bucket
}
