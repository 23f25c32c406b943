package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	appconfig "github.com/Knnivedh/job-rec/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted []string
	err     error
}

func (f *fakeStore) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeStore) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeStore) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.err
}

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "user-1/1700000000123-My Resume.PDF", ObjectKey("user-1", "My Resume.PDF", now))
	assert.Equal(t, "user-1/1700000000123-cv.docx", ObjectKey("user-1", "../../etc/cv.docx", now))
	assert.Equal(t, "user-1/1700000000123-cv.pdf", ObjectKey("user-1", `C:\docs\cv.pdf`, now))
	assert.Equal(t, "user-1/1700000000123-resume", ObjectKey("user-1", "", now))
}

func TestBucket_PutAndDelete(t *testing.T) {
	fs := &fakeStore{}
	b := NewBucket(fs, "resumes", nil)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "u/1.pdf", []byte("%PDF"), "application/pdf"))
	assert.Equal(t, "resumes", aws.ToString(fs.put.Bucket))
	assert.Equal(t, "application/pdf", aws.ToString(fs.put.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(fs.put.ContentLength))
	assert.Equal(t, []byte("%PDF"), fs.body)

	require.NoError(t, b.Delete(ctx, "u/1.pdf"))
	assert.Equal(t, []string{"u/1.pdf"}, fs.deleted)
}

func TestBucket_ErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	b := NewBucket(&fakeStore{err: boom}, "resumes", nil)

	err := b.Put(context.Background(), "k", nil, "application/pdf")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "put object k")
	assert.ErrorIs(t, b.Ping(context.Background()), boom)
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), appconfig.StorageConfig{}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBucket_NilIsNotConfigured(t *testing.T) {
	var b *Bucket
	ctx := context.Background()
	assert.ErrorIs(t, b.Put(ctx, "k", []byte("x"), "application/pdf"), ErrNotConfigured)
	assert.ErrorIs(t, b.Delete(ctx, "k"), ErrNotConfigured)
	assert.ErrorIs(t, b.Ping(ctx), ErrNotConfigured)
}
