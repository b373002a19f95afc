package filestorage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// Storage is the blob store holding uploaded documents and generated archives.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Caller closes the returned reader
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, keys ...string) error
	// Time limited GET url, downloadName sets the attachment filename when not empty
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration, downloadName string) (string, error)
}
