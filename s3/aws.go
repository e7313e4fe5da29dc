package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	zlogger "github.com/0chain/s3mgrt/logger"
	"github.com/0chain/s3mgrt/types"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const (
	DefaultRegion   = "us-east-1"
	defaultPartSize = 5 * 1024 * 1024
	listPageSize    = 1000
)

// Config selects an AWS S3 or S3 compatible endpoint.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	PathStyle bool
	// PartSize bounds the memory the uploader buffers per object.
	PartSize int64
}

type AwsClient struct {
	region   string
	endpoint string
	client   *awsS3.Client
	uploader *manager.Uploader
}

var _ types.CloudStorageI = (*AwsClient)(nil)

func GetAwsClient(ctx context.Context, cfg Config) (*AwsClient, error) {
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}

	client, err := getAwsSDKClient(ctx, region, cfg)
	if err != nil {
		return nil, err
	}

	partSize := cfg.PartSize
	if partSize < manager.MinUploadPartSize {
		partSize = defaultPartSize
	}

	awsClient := &AwsClient{
		region:   region,
		endpoint: cfg.Endpoint,
		client:   client,
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = partSize
			u.Concurrency = 1
		}),
	}

	zlogger.Logger.Info(fmt.Sprintf(
		"Aws client initialized with "+
			"endpoint: %v, "+
			"region: %v, "+
			"pathStyle: %v", cfg.Endpoint, region, cfg.PathStyle))
	return awsClient, nil
}

func getAwsSDKClient(ctx context.Context, region string, cfg Config) (*awsS3.Client, error) {
	opts := []func(*awsConfig.LoadOptions) error{awsConfig.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("configuration error %v region: %v", err, region)
	}

	client := awsS3.NewFromConfig(awsCfg, func(o *awsS3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.EndpointResolver = awsS3.EndpointResolverFromURL(cfg.Endpoint)
		}
	})
	return client, nil
}

func (a *AwsClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := a.client.HeadBucket(ctx, &awsS3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

func (a *AwsClient) ListFiles(ctx context.Context, bucket string, opts types.ListOptions) (<-chan *types.ObjectMeta, <-chan error) {
	objectMetaChan := make(chan *types.ObjectMeta, 1000)
	errChan := make(chan error, 1)

	go func() {
		defer func() {
			close(objectMetaChan)
			close(errChan)
		}()

		listObjectsInput := &awsS3.ListObjectsV2Input{
			Bucket: aws.String(bucket),
		}
		if len(opts.Prefix) != 0 {
			listObjectsInput.Prefix = aws.String(opts.Prefix)
		}

		listObjectsPaginator := awsS3.NewListObjectsV2Paginator(a.client, listObjectsInput, func(o *awsS3.ListObjectsV2PaginatorOptions) {
			o.Limit = listPageSize
		})

		for listObjectsPaginator.HasMorePages() {
			page, err := listObjectsPaginator.NextPage(ctx)
			if err != nil {
				errChan <- err
				return
			}

			for _, obj := range page.Contents {
				if !opts.Include(aws.ToTime(obj.LastModified)) {
					continue
				}

				// ListObjectsV2 carries no content type or user metadata;
				// GetFileContent reports them when the object is read.
				meta := &types.ObjectMeta{
					Key:          aws.ToString(obj.Key),
					Size:         obj.Size,
					LastModified: aws.ToTime(obj.LastModified),
				}

				select {
				case objectMetaChan <- meta:
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				}
			}
		}
	}()
	return objectMetaChan, errChan
}

func (a *AwsClient) GetFileContent(ctx context.Context, bucket, objectKey string) (*types.Object, error) {
	out, err := a.client.GetObject(ctx, &awsS3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(objectKey)})
	if err != nil {
		return nil, err
	}

	return &types.Object{
		Body:          out.Body,
		ContentType:   aws.ToString(out.ContentType),
		ContentLength: out.ContentLength,
		Metadata:      out.Metadata,
	}, nil
}

func (a *AwsClient) PutFile(ctx context.Context, bucket, objectKey string, r io.Reader, size int64, contentType string, metadata map[string]string) error {
	// The uploader frames r into parts itself; a length is only declared
	// when the object fits in a single PUT.
	input := &awsS3.PutObjectInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(objectKey),
		Body:     r,
		Metadata: metadata,
	}
	if size < a.uploader.PartSize {
		input.ContentLength = size
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err := a.uploader.Upload(ctx, input)
	return err
}

func isNotFound(err error) bool {
	var notFound *s3types.NotFound
	var noSuchBucket *s3types.NoSuchBucket
	if errors.As(err, &notFound) || errors.As(err, &noSuchBucket) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}
