package controller

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0chain/s3mgrt/ledger"
	"github.com/0chain/s3mgrt/migration"
	T "github.com/0chain/s3mgrt/types"
	mock_types "github.com/0chain/s3mgrt/types/mocks"
	zerrors "github.com/0chain/s3mgrt/zErrors"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sides(src, dst T.CloudStorageI) (EndpointSide, EndpointSide) {
	return EndpointSide{Name: SourceSide, Client: src, Bucket: "a"},
		EndpointSide{Name: DestinationSide, Client: dst, Bucket: "b"}
}

func TestValidatePreconditions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := mock_types.NewMockCloudStorageI(ctrl)
	dst := mock_types.NewMockCloudStorageI(ctrl)

	tests := []struct {
		name      string
		setUpMock func()
		check     func(err error) bool
		errMsg    string
	}{
		{
			name: "both buckets exist",
			setUpMock: func() {
				src.EXPECT().BucketExists(gomock.Any(), "a").Return(true, nil)
				dst.EXPECT().BucketExists(gomock.Any(), "b").Return(true, nil)
			},
		},
		{
			name: "missing source bucket",
			setUpMock: func() {
				src.EXPECT().BucketExists(gomock.Any(), "a").Return(false, nil)
			},
			check:  zerrors.IsBucketNotFoundError,
			errMsg: `source bucket "a" does not exist`,
		},
		{
			name: "missing destination bucket",
			setUpMock: func() {
				src.EXPECT().BucketExists(gomock.Any(), "a").Return(true, nil)
				dst.EXPECT().BucketExists(gomock.Any(), "b").Return(false, nil)
			},
			check:  zerrors.IsBucketNotFoundError,
			errMsg: `destination bucket "b" does not exist`,
		},
		{
			name: "existence check fails",
			setUpMock: func() {
				src.EXPECT().BucketExists(gomock.Any(), "a").Return(false, errors.New("connection refused"))
			},
			check:  zerrors.IsBucketCheckFailedError,
			errMsg: `checking source bucket "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setUpMock()
			source, destination := sides(src, dst)
			c := NewController(source, destination, "", nil)

			err := c.ValidatePreconditions(context.Background())
			if tt.check == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.check(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRunStopsBeforeListingWhenBucketMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := mock_types.NewMockCloudStorageI(ctrl)
	dst := mock_types.NewMockCloudStorageI(ctrl)
	src.EXPECT().BucketExists(gomock.Any(), "a").Return(true, nil)
	dst.EXPECT().BucketExists(gomock.Any(), "b").Return(false, nil)

	path := filepath.Join(t.TempDir(), ledger.DefaultFileName)
	source, destination := sides(src, dst)

	_, err := NewController(source, destination, path, nil).Run(context.Background())
	require.Error(t, err)
	assert.True(t, zerrors.IsBucketNotFoundError(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "ledger must not be created")
}

func TestRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := mock_types.NewMockCloudStorageI(ctrl)
	dst := mock_types.NewMockCloudStorageI(ctrl)

	path := filepath.Join(t.TempDir(), ledger.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))

	src.EXPECT().BucketExists(gomock.Any(), "a").Return(true, nil)
	dst.EXPECT().BucketExists(gomock.Any(), "b").Return(true, nil)

	objCh := make(chan *T.ObjectMeta, 2)
	objCh <- &T.ObjectMeta{Key: "x", Size: 1}
	objCh <- &T.ObjectMeta{Key: "y", Size: 2, ContentType: "text/plain"}
	close(objCh)
	errCh := make(chan error)
	close(errCh)
	src.EXPECT().ListFiles(gomock.Any(), "a", T.ListOptions{Prefix: "p"}).Return((<-chan *T.ObjectMeta)(objCh), (<-chan error)(errCh))

	src.EXPECT().GetFileContent(gomock.Any(), "a", "y").Return(&T.Object{
		Body:          io.NopCloser(strings.NewReader("22")),
		ContentLength: 2,
	}, nil)
	dst.EXPECT().PutFile(gomock.Any(), "b", "y", gomock.Any(), int64(2), "text/plain", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, r io.Reader, _ int64, _ string, _ map[string]string) error {
			b, err := io.ReadAll(r)
			assert.Equal(t, "22", string(b))
			return err
		})

	source, destination := sides(src, dst)
	c := NewController(source, destination, path, &migration.MigrationConfig{
		SourceBucket: "ignored",
		ListOptions:  T.ListOptions{Prefix: "p"},
	})

	summary, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Skipped)
	assert.Equal(t, int64(1), summary.Migrated)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", string(b))
}
