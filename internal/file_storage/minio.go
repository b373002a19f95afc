package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"time"

	"github.com/SeakMengs/DocCollect/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

func NewMinioClient(cfg *config.MinioConfig) (*minio.Client, error) {
	return minio.New(cfg.ENDPOINT, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ACCESS_KEY, cfg.SECRET_KEY, ""),
		Secure: cfg.USE_SSL,
		Region: "us-east-1",
	})
}

type MinioStorage struct {
	client *minio.Client
	bucket string
	logger *zap.SugaredLogger
}

func NewMinioStorage(client *minio.Client, bucket string, logger *zap.SugaredLogger) *MinioStorage {
	return &MinioStorage{client: client, bucket: bucket, logger: logger}
}

func (ms MinioStorage) Bucket() string {
	return ms.bucket
}

// Create the bucket on first start
func (ms MinioStorage) EnsureBucket(ctx context.Context) error {
	exists, err := ms.client.BucketExists(ctx, ms.bucket)
	if err != nil {
		return err
	}

	if !exists {
		ms.logger.Infof("Bucket %s does not exist, creating it", ms.bucket)
		if err := ms.client.MakeBucket(ctx, ms.bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	return nil
}

func (ms MinioStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	ms.logger.Debugf("Put object %s, size: %d, content type: %s", key, size, contentType)

	_, err := ms.client.PutObject(ctx, ms.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return nil
}

func (ms MinioStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	ms.logger.Debugf("Get object %s", key)

	obj, err := ms.client.GetObject(ctx, ms.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateMinioError(key, err)
	}

	// GetObject is lazy, Stat surfaces a missing key before the caller starts reading
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, translateMinioError(key, err)
	}

	return obj, nil
}

func (ms MinioStorage) Remove(ctx context.Context, keys ...string) error {
	ms.logger.Debugf("Remove objects %v", keys)

	if len(keys) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var firstErr error
	for rErr := range ms.client.RemoveObjects(ctx, ms.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		ms.logger.Errorf("Failed to remove object %s: %v", rErr.ObjectName, rErr.Err)
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to remove object %s: %w", rErr.ObjectName, rErr.Err)
		}
	}

	return firstErr
}

func (ms MinioStorage) PresignedGetURL(ctx context.Context, key string, expiry time.Duration, downloadName string) (string, error) {
	reqParams := make(url.Values)
	if downloadName != "" {
		reqParams.Set("response-content-disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": downloadName,
		}))
	}

	presigned, err := ms.client.PresignedGetObject(ctx, ms.bucket, key, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to sign url for %s: %w", key, err)
	}

	return presigned.String(), nil
}

func translateMinioError(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	return fmt.Errorf("failed to get object %s: %w", key, err)
}
