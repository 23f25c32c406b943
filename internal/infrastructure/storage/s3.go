// Package storage keeps uploaded résumé files in an S3-compatible bucket
// (AWS S3 or Cloudflare R2).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	appconfig "github.com/Knnivedh/job-rec/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("object storage not configured")

// ObjectStore is the subset of the S3 API the bucket wrapper needs.
type ObjectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type Bucket struct {
	client ObjectStore
	name   string
	logger *zap.Logger
}

// NewS3 builds a bucket client from cfg. A custom endpoint switches to path
// style addressing, which R2 and MinIO expect.
func NewS3(ctx context.Context, cfg appconfig.StorageConfig, logger *zap.Logger) (*Bucket, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrNotConfigured
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewBucket(client, cfg.Bucket, logger), nil
}

func NewBucket(client ObjectStore, name string, logger *zap.Logger) *Bucket {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bucket{client: client, name: name, logger: logger}
}

// ObjectKey returns "<userID>/<unix-millis>-<file name>". Directory parts of
// the client-supplied name are dropped.
func ObjectKey(userID, fileName string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "resume"
	}
	return fmt.Sprintf("%s/%d-%s", userID, now.UnixMilli(), name)
}

func (b *Bucket) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if b == nil || b.client == nil {
		return ErrNotConfigured
	}
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.name),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	b.logger.Debug("[Storage] object stored", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func (b *Bucket) Delete(ctx context.Context, key string) error {
	if b == nil || b.client == nil {
		return ErrNotConfigured
	}
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (b *Bucket) Ping(ctx context.Context) error {
	if b == nil || b.client == nil {
		return ErrNotConfigured
	}
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(b.name)})
	if err != nil {
		return fmt.Errorf("head bucket %s: %w", b.name, err)
	}
	return nil
}
