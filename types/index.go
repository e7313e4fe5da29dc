package types

import (
	"context"
	"io"
	"time"
)

// Object is an open read stream of a stored object. Closing Body releases
// the underlying connection.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	Metadata      map[string]string
}

// ObjectMeta key: object key, size: size of object in bytes
type ObjectMeta struct {
	Key          string
	Size         int64
	ContentType  string
	Metadata     map[string]string
	LastModified time.Time
}

// ListOptions narrows a recursive bucket listing.
type ListOptions struct {
	Prefix    string
	NewerThan *time.Time
	OlderThan *time.Time
}

// Include reports whether an object last modified at t passes the time filters.
func (o ListOptions) Include(t time.Time) bool {
	if o.NewerThan != nil && t.Before(*o.NewerThan) {
		return false
	}
	if o.OlderThan != nil && t.After(*o.OlderThan) {
		return false
	}
	return true
}

//go:generate mockgen -destination mocks/mock_storage.go -package mock_types github.com/0chain/s3mgrt/types CloudStorageI
type CloudStorageI interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	// ListFiles walks bucket recursively. The error channel yields at most
	// one error and is closed after the object channel.
	ListFiles(ctx context.Context, bucket string, opts ListOptions) (<-chan *ObjectMeta, <-chan error)
	GetFileContent(ctx context.Context, bucket, objectKey string) (*Object, error)
	PutFile(ctx context.Context, bucket, objectKey string, r io.Reader, size int64, contentType string, metadata map[string]string) error
}
