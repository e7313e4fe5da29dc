package util

import (
	"io"
	"os"
)

var Fs FileSystem = osFS{}

//go:generate mockgen -destination mocks/mock_filesystem.go -package mock_util github.com/0chain/s3mgrt/util FileSystem
type FileSystem interface {
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Stat(name string) (os.FileInfo, error)
}

//go:generate mockgen -destination mocks/mock_file.go -package mock_util github.com/0chain/s3mgrt/util File
type File interface {
	io.Closer
	io.Reader
	io.ReaderAt
	io.Writer
	Stat() (os.FileInfo, error)
	Sync() error
	Truncate(size int64) error
}

type osFS struct{}

func (osFS) Open(name string) (File, error) { return os.Open(name) }
func (osFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}
func (osFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

//go:generate mockgen -destination mocks/mock_file_info.go -package mock_util github.com/0chain/s3mgrt/util FileInfo
type FileInfo os.FileInfo
