package migration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/0chain/s3mgrt/ledger"
	zlogger "github.com/0chain/s3mgrt/logger"
	"github.com/0chain/s3mgrt/types"
	"github.com/0chain/s3mgrt/util"
	zerrors "github.com/0chain/s3mgrt/zErrors"
	"golang.org/x/sync/errgroup"
)

// Stages at which a single object can fail.
const (
	OpKey  = "key"
	OpGet  = "get"
	OpRead = "read"
	OpPut  = "put"
	OpSize = "size"
)

// Recorder persists the key of an object once it is fully copied.
type Recorder interface {
	Record(key string) error
}

// TransferError reports an object that was not copied. It is never recorded
// in the ledger, so the next run retries it.
type TransferError struct {
	Key string
	Op  string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("migrating %q failed at %s: %v", e.Key, e.Op, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

type Summary struct {
	Listed   int64
	Skipped  int64
	Migrated int64
	Failed   int64
	Bytes    int64
	Duration time.Duration
}

type tally struct {
	listed   atomic.Int64
	skipped  atomic.Int64
	migrated atomic.Int64
	failed   atomic.Int64
	bytes    atomic.Int64
}

func (t *tally) summary(d time.Duration) *Summary {
	return &Summary{
		Listed:   t.listed.Load(),
		Skipped:  t.skipped.Load(),
		Migrated: t.migrated.Load(),
		Failed:   t.failed.Load(),
		Bytes:    t.bytes.Load(),
		Duration: d,
	}
}

type Migration struct {
	src types.CloudStorageI
	dst types.CloudStorageI

	srcBucket string
	dstBucket string

	listOptions     types.ListOptions
	concurrency     int
	continueOnError bool

	buffers sync.Pool
}

func NewMigration(src, dst types.CloudStorageI, cfg *MigrationConfig) *Migration {
	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	m := &Migration{
		src:             src,
		dst:             dst,
		srcBucket:       cfg.SourceBucket,
		dstBucket:       cfg.DestinationBucket,
		listOptions:     cfg.ListOptions,
		concurrency:     concurrency,
		continueOnError: cfg.ContinueOnError,
	}
	m.buffers.New = func() interface{} {
		buf := make([]byte, bufferSize)
		return &buf
	}
	return m
}

// Migrate copies every listed object whose key is not in completed and
// records each one with recorder after it has fully reached the destination.
// By default the first failed object stops the run.
func (m *Migration) Migrate(ctx context.Context, completed *ledger.KeySet, recorder Recorder) (*Summary, error) {
	start := time.Now()
	if completed == nil {
		completed = ledger.NewKeySet()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t := &tally{}
	objCh, errCh := m.src.ListFiles(ctx, m.srcBucket, m.listOptions)

	var err error
	if m.concurrency == 1 {
		err = m.migrateSequential(ctx, objCh, completed, recorder, t)
	} else {
		err = m.migrateConcurrent(ctx, objCh, completed, recorder, t)
	}

	if err == nil {
		// The listing is complete only once objCh is closed.
		if listErr := <-errCh; listErr != nil {
			err = fmt.Errorf("listing bucket %s: %w", m.srcBucket, listErr)
		}
	}

	summary := t.summary(time.Since(start))
	logSummary(summary)

	if err != nil {
		return summary, err
	}
	if summary.Failed > 0 {
		return summary, zerrors.New(zerrors.TransferIncompleteErrCode,
			fmt.Sprintf("%d of %d objects were not migrated", summary.Failed, summary.Listed-summary.Skipped))
	}
	return summary, nil
}

func (m *Migration) migrateSequential(ctx context.Context, objCh <-chan *types.ObjectMeta, completed *ledger.KeySet, recorder Recorder, t *tally) error {
	for objMeta := range objCh {
		t.listed.Add(1)
		if completed.Has(objMeta.Key) {
			t.skipped.Add(1)
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := m.handle(m.migrateObject(ctx, objMeta, completed, recorder, t), t); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migration) migrateConcurrent(ctx context.Context, objCh <-chan *types.ObjectMeta, completed *ledger.KeySet, recorder Recorder, t *tally) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(m.concurrency)

	for objMeta := range objCh {
		t.listed.Add(1)
		if completed.Has(objMeta.Key) {
			t.skipped.Add(1)
			continue
		}
		if egCtx.Err() != nil {
			break
		}

		eg.Go(func() error {
			return m.handle(m.migrateObject(egCtx, objMeta, completed, recorder, t), t)
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// handle applies the failure policy. Transfer errors are dropped when the
// run continues on error; ledger errors always stop it.
func (m *Migration) handle(err error, t *tally) error {
	if err == nil {
		return nil
	}

	var tErr *TransferError
	if errors.As(err, &tErr) {
		t.failed.Add(1)
		zlogger.Logger.Error(err)
		if m.continueOnError {
			return nil
		}
	}
	return err
}

func (m *Migration) migrateObject(ctx context.Context, objMeta *types.ObjectMeta, completed *ledger.KeySet, recorder Recorder, t *tally) error {
	if err := ledger.CanRecord(objMeta.Key); err != nil {
		return &TransferError{Key: objMeta.Key, Op: OpKey, Err: err}
	}

	obj, err := m.src.GetFileContent(ctx, m.srcBucket, objMeta.Key)
	if err != nil {
		return &TransferError{Key: objMeta.Key, Op: OpGet, Err: err}
	}

	body := util.NewReleaseOnceReader(obj.Body)
	defer body.Close()

	// The object changed since it was listed.
	if objMeta.Size > 0 && obj.ContentLength > 0 && obj.ContentLength != objMeta.Size {
		return &TransferError{
			Key: objMeta.Key,
			Op:  OpSize,
			Err: fmt.Errorf("source reports %d bytes, listing reported %d", obj.ContentLength, objMeta.Size),
		}
	}

	contentType, metadata := objMeta.ContentType, objMeta.Metadata
	if contentType == "" && metadata == nil {
		contentType, metadata = obj.ContentType, obj.Metadata
	}

	if err := m.copyObject(ctx, objMeta.Key, body, objMeta.Size, contentType, metadata); err != nil {
		return err
	}
	if n := body.BytesRead(); n != objMeta.Size {
		return &TransferError{
			Key: objMeta.Key,
			Op:  OpSize,
			Err: fmt.Errorf("copied %d bytes, listing reported %d", n, objMeta.Size),
		}
	}

	if err := recorder.Record(objMeta.Key); err != nil {
		return err
	}
	completed.Add(objMeta.Key)

	t.migrated.Add(1)
	t.bytes.Add(objMeta.Size)
	zlogger.Logger.Info("Migrated object: ", objMeta.Key)
	return nil
}

// copyObject streams body into the destination through a pipe, so at most
// one buffer of the object is held in memory here.
func (m *Migration) copyObject(ctx context.Context, key string, body *util.ReleaseOnceReader, size int64, contentType string, metadata map[string]string) error {
	buf := m.buffers.Get().(*[]byte)
	defer m.buffers.Put(buf)

	pr, pw := io.Pipe()
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		_, err := io.CopyBuffer(pw, body, *buf)
		pw.CloseWithError(err)
	}()

	putErr := m.dst.PutFile(ctx, m.dstBucket, key, pr, size, contentType, metadata)
	// Unblocks the copy if the destination stopped reading early.
	pr.CloseWithError(io.ErrClosedPipe)
	<-copyDone

	if readErr := body.ReadErr(); readErr != nil {
		return &TransferError{Key: key, Op: OpRead, Err: readErr}
	}
	if putErr != nil {
		return &TransferError{Key: key, Op: OpPut, Err: putErr}
	}
	return nil
}

func logSummary(s *Summary) {
	zlogger.Logger.Info("Total listed objects: ", s.Listed)
	zlogger.Logger.Info("Total skipped objects: ", s.Skipped)
	zlogger.Logger.Info("Total migrated objects: ", s.Migrated)
	zlogger.Logger.Info("Total migrated size: ", s.Bytes)
	if s.Failed > 0 {
		zlogger.Logger.Error("Total failed objects: ", s.Failed)
	}
	zlogger.Logger.Info("Migration took: ", s.Duration)
}
