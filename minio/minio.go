// Package minio talks to MinIO and other S3 compatible endpoints through
// minio-go. It is the default provider for both sides of a migration.
package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	zlogger "github.com/0chain/s3mgrt/logger"
	"github.com/0chain/s3mgrt/types"
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const userMetaPrefix = "x-amz-meta-"

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Secure    bool
	PathStyle bool
}

type Client struct {
	endpoint string
	client   *minioSDK.Client
}

var _ types.CloudStorageI = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint must be provided")
	}

	opts := &minioSDK.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	}
	if cfg.Region != "" {
		opts.Region = cfg.Region
	}
	if cfg.PathStyle {
		opts.BucketLookup = minioSDK.BucketLookupPath
	}

	client, err := minioSDK.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}

	zlogger.Logger.Info(fmt.Sprintf("Minio client initialized with endpoint: %v, secure: %v, region: %v", cfg.Endpoint, cfg.Secure, cfg.Region))
	return &Client{endpoint: cfg.Endpoint, client: client}, nil
}

func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return c.client.BucketExists(ctx, bucket)
}

func (c *Client) ListFiles(ctx context.Context, bucket string, opts types.ListOptions) (<-chan *types.ObjectMeta, <-chan error) {
	objectMetaChan := make(chan *types.ObjectMeta, 1000)
	errChan := make(chan error, 1)

	go func() {
		defer func() {
			close(objectMetaChan)
			close(errChan)
		}()

		// Canceling listCtx on early return stops the SDK's listing goroutine.
		listCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		objectsCh := c.client.ListObjects(listCtx, bucket, minioSDK.ListObjectsOptions{
			Prefix:       opts.Prefix,
			Recursive:    true,
			WithMetadata: true,
		})

		for object := range objectsCh {
			if object.Err != nil {
				errChan <- object.Err
				return
			}
			if !opts.Include(object.LastModified) {
				continue
			}

			meta := &types.ObjectMeta{
				Key:          object.Key,
				Size:         object.Size,
				ContentType:  object.ContentType,
				Metadata:     listedUserMetadata(object.UserMetadata),
				LastModified: object.LastModified,
			}

			select {
			case objectMetaChan <- meta:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()
	return objectMetaChan, errChan
}

func (c *Client) GetFileContent(ctx context.Context, bucket, objectKey string) (*types.Object, error) {
	obj, err := c.client.GetObject(ctx, bucket, objectKey, minioSDK.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject is lazy; Stat issues the request so a missing object fails here.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, err
	}

	return &types.Object{
		Body:          obj,
		ContentType:   info.ContentType,
		ContentLength: info.Size,
		Metadata:      userMetadata(info.UserMetadata),
	}, nil
}

func (c *Client) PutFile(ctx context.Context, bucket, objectKey string, r io.Reader, size int64, contentType string, metadata map[string]string) error {
	_, err := c.client.PutObject(ctx, bucket, objectKey, r, size, minioSDK.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	return err
}

// listedUserMetadata keeps the x-amz-meta- entries of the raw headers a
// listing returns, without the prefix. Standard headers such as
// content-type are dropped. A result without entries is nil.
func listedUserMetadata(in map[string]string) map[string]string {
	var out map[string]string
	for k, v := range in {
		if len(k) <= len(userMetaPrefix) || !strings.EqualFold(k[:len(userMetaPrefix)], userMetaPrefix) {
			continue
		}
		if out == nil {
			out = make(map[string]string, len(in))
		}
		out[k[len(userMetaPrefix):]] = v
	}
	return out
}

// userMetadata normalizes the user metadata Stat reports. Keys normally
// arrive without the x-amz-meta- prefix; a prefix that is present is
// stripped so PutObject does not add it twice. A nil or empty input yields nil.
func userMetadata(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}

	out := make(map[string]string, len(in))
	for k, v := range in {
		if len(k) > len(userMetaPrefix) && strings.EqualFold(k[:len(userMetaPrefix)], userMetaPrefix) {
			k = k[len(userMetaPrefix):]
		}
		out[k] = v
	}
	return out
}
