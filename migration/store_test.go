package migration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/0chain/s3mgrt/types"
)

type storedObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
}

// memStore is an in-memory bucket endpoint. It counts opened and released
// source bodies and the largest chunk a destination read received.
type memStore struct {
	mu      sync.Mutex
	buckets map[string]map[string]storedObject

	// bareListing drops content type and metadata from listed descriptors.
	bareListing bool
	listSize    map[string]int64
	listErr     error
	getErr      map[string]error
	readErr     map[string]error
	putErr      map[string]error

	gets     []string
	puts     []string
	opened   atomic.Int64
	released atomic.Int64
	maxChunk atomic.Int64
}

func newMemStore(buckets ...string) *memStore {
	s := &memStore{
		buckets:  make(map[string]map[string]storedObject),
		listSize: make(map[string]int64),
		getErr:   make(map[string]error),
		readErr:  make(map[string]error),
		putErr:   make(map[string]error),
	}
	for _, b := range buckets {
		s.buckets[b] = make(map[string]storedObject)
	}
	return s
}

func (s *memStore) add(bucket, key string, data []byte, contentType string, metadata map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[bucket][key] = storedObject{data: data, contentType: contentType, metadata: metadata}
}

func (s *memStore) object(bucket, key string) (storedObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.buckets[bucket][key]
	return obj, ok
}

func (s *memStore) getCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.gets))
	copy(out, s.gets)
	return out
}

func (s *memStore) putCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.puts))
	copy(out, s.puts)
	return out
}

func (s *memStore) BucketExists(_ context.Context, bucket string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.buckets[bucket]
	return ok, nil
}

func (s *memStore) ListFiles(_ context.Context, bucket string, opts types.ListOptions) (<-chan *types.ObjectMeta, <-chan error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.buckets[bucket]))
	for k := range s.buckets[bucket] {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	objCh := make(chan *types.ObjectMeta, len(keys))
	errCh := make(chan error, 1)
	for _, k := range keys {
		obj := s.buckets[bucket][k]
		meta := &types.ObjectMeta{Key: k, Size: int64(len(obj.data))}
		if size, ok := s.listSize[k]; ok {
			meta.Size = size
		}
		if !s.bareListing {
			meta.ContentType = obj.contentType
			meta.Metadata = obj.metadata
		}
		objCh <- meta
	}
	if s.listErr != nil {
		errCh <- s.listErr
	}
	close(objCh)
	close(errCh)
	return objCh, errCh
}

func (s *memStore) GetFileContent(_ context.Context, bucket, key string) (*types.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gets = append(s.gets, key)
	if err := s.getErr[key]; err != nil {
		return nil, err
	}
	obj, ok := s.buckets[bucket][key]
	if !ok {
		return nil, fmt.Errorf("no such key %q", key)
	}

	var r io.Reader = bytes.NewReader(obj.data)
	if err := s.readErr[key]; err != nil {
		r = io.MultiReader(bytes.NewReader(obj.data[:len(obj.data)/2]), &failingReader{err: err})
	}

	s.opened.Add(1)
	return &types.Object{
		Body:          &countingBody{Reader: r, closes: &s.released},
		ContentType:   obj.contentType,
		ContentLength: int64(len(obj.data)),
		Metadata:      obj.metadata,
	}, nil
}

func (s *memStore) PutFile(_ context.Context, bucket, key string, r io.Reader, _ int64, contentType string, metadata map[string]string) error {
	s.mu.Lock()
	s.puts = append(s.puts, key)
	putErr := s.putErr[key]
	s.mu.Unlock()

	if putErr != nil {
		return putErr
	}

	var out bytes.Buffer
	chunk := make([]byte, 1<<20)
	for {
		n, err := r.Read(chunk)
		if int64(n) > s.maxChunk.Load() {
			s.maxChunk.Store(int64(n))
		}
		out.Write(chunk[:n])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}
	s.add(bucket, key, out.Bytes(), contentType, metadata)
	return nil
}

type countingBody struct {
	io.Reader
	closes *atomic.Int64
}

func (b *countingBody) Close() error {
	b.closes.Add(1)
	return nil
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}

// keyRecorder keeps recorded keys in memory.
type keyRecorder struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (r *keyRecorder) Record(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.keys = append(r.keys, key)
	return nil
}

func (r *keyRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}
