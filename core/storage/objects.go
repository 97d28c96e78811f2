package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	apperrors "master-sync/core/errors"

	"github.com/minio/minio-go/v7"
)

// EnsureBucket creates bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, client Client, bucket, region string) (bool, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return false, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return false, nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return false, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return true, nil
}

// PutBytes uploads data under key.
func PutBytes(ctx context.Context, client Client, bucket, key string, data []byte, contentType string) error {
	_, err := client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// GetBytes downloads an object. A missing object yields an
// *errors.NotFoundError.
func GetBytes(ctx context.Context, client Client, bucket, key string) ([]byte, error) {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapMissing(err, key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, wrapMissing(err, key)
	}
	return data, nil
}

// FindFirst returns the name of the first object under prefix.
func FindFirst(ctx context.Context, client Client, bucket, prefix string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return "", fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		return obj.Key, nil
	}
	return "", apperrors.NewNotFoundError("object", strings.TrimSuffix(prefix, "/"))
}

// RemovePrefix deletes every object under prefix.
func RemovePrefix(ctx context.Context, client Client, bucket, prefix string) error {
	objects := client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	for rErr := range client.RemoveObjects(ctx, bucket, objects, minio.RemoveObjectsOptions{}) {
		if rErr.Err != nil {
			return fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err)
		}
	}
	return nil
}

// BaseName returns the final element of an object key.
func BaseName(key string) string {
	return path.Base(key)
}

func wrapMissing(err error, key string) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return apperrors.NewNotFoundError("object", key)
	}
	return fmt.Errorf("failed to download %s: %w", key, err)
}
