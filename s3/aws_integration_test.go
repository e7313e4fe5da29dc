//go:build integration
// +build integration

package s3

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"testing"

	"github.com/0chain/s3mgrt/types"
)

// Run with S3MGRT_TEST_BUCKET (and optionally S3MGRT_TEST_ENDPOINT) pointing
// at a scratch bucket; credentials come from the default AWS chain.
func testClient(t *testing.T) (*AwsClient, string) {
	bucket := os.Getenv("S3MGRT_TEST_BUCKET")
	if bucket == "" {
		t.Skip("S3MGRT_TEST_BUCKET not set")
	}

	s3Svc, err := GetAwsClient(context.Background(), Config{
		Endpoint:  os.Getenv("S3MGRT_TEST_ENDPOINT"),
		Region:    os.Getenv("AWS_REGION"),
		PathStyle: os.Getenv("S3MGRT_TEST_ENDPOINT") != "",
	})
	if err != nil {
		t.Fatalf("init client: %v", err)
	}
	return s3Svc, bucket
}

func TestAwsClient_BucketExists(t *testing.T) {
	s3Svc, bucket := testClient(t)

	ok, err := s3Svc.BucketExists(context.Background(), bucket)
	if err != nil || !ok {
		t.Fatalf("BucketExists(%s) = %v, %v", bucket, ok, err)
	}
}

func TestAwsClient_PutListGet(t *testing.T) {
	s3Svc, bucket := testClient(t)
	ctx := context.Background()

	body := []byte("hello")
	err := s3Svc.PutFile(ctx, bucket, "s3mgrt-it/hello.txt", bytes.NewReader(body), int64(len(body)), "text/plain", map[string]string{"origin": "it"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	fileListChan, errChan := s3Svc.ListFiles(ctx, bucket, types.ListOptions{Prefix: "s3mgrt-it/"})
	for objMeta := range fileListChan {
		log.Println(objMeta.Key, objMeta.Size, objMeta.ContentType, objMeta.Metadata)
	}
	if err, ok := <-errChan; ok && err != nil {
		t.Fatalf("list: %v", err)
	}

	obj, err := s3Svc.GetFileContent(ctx, bucket, "s3mgrt-it/hello.txt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer obj.Body.Close()

	got, err := io.ReadAll(obj.Body)
	if err != nil || !bytes.Equal(got, body) {
		t.Fatalf("got %q, %v", got, err)
	}
}
