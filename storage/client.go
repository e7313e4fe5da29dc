// Package storage builds the endpoint client for one side of a migration.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/0chain/s3mgrt/minio"
	"github.com/0chain/s3mgrt/model"
	"github.com/0chain/s3mgrt/s3"
	"github.com/0chain/s3mgrt/types"
)

// NewClient connects to the endpoint described by cfg. The returned client
// is meant to live for the whole run.
func NewClient(ctx context.Context, cfg model.EndpointConfig) (types.CloudStorageI, error) {
	switch strings.ToLower(cfg.Provider) {
	case model.ProviderMinio:
		host, secure := endpointHost(cfg.Endpoint, cfg.Secure)
		return minio.NewClient(minio.Config{
			Endpoint:  host,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Region:    cfg.Region,
			Secure:    secure,
			PathStyle: cfg.PathStyle,
		})
	case model.ProviderS3:
		return s3.GetAwsClient(ctx, s3.Config{
			Endpoint:  endpointURL(cfg.Endpoint, cfg.Secure),
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			PathStyle: cfg.PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// endpointURL gives a bare host[:port] the scheme selected by secure. The
// AWS SDK needs a full URL, minio-go the bare host.
func endpointURL(endpoint string, secure bool) string {
	if endpoint == "" || strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	scheme := "https"
	if !secure {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s", scheme, strings.TrimPrefix(endpoint, "//"))
}

// endpointHost strips a URL scheme from endpoint; the scheme, when present,
// overrides secure.
func endpointHost(endpoint string, secure bool) (string, bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimSuffix(strings.TrimPrefix(endpoint, "https://"), "/"), true
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimSuffix(strings.TrimPrefix(endpoint, "http://"), "/"), false
	}
	return endpoint, secure
}
