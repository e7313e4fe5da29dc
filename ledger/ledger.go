// Package ledger keeps the durable record of object keys that were fully
// migrated. The file holds one key per line and is only ever appended to.
package ledger

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	zlogger "github.com/0chain/s3mgrt/logger"
	"github.com/0chain/s3mgrt/util"
	zerrors "github.com/0chain/s3mgrt/zErrors"
)

const DefaultFileName = "completed.txt"

const tailChunkSize = 4096

var (
	ErrUnrecordableKey = errors.New("object key contains a line break")
	ErrClosed          = errors.New("ledger is closed")
)

// CanRecord reports whether key can be framed as a single ledger line.
func CanRecord(key string) error {
	if strings.ContainsRune(key, '\n') {
		return fmt.Errorf("%w: %q", ErrUnrecordableKey, key)
	}
	return nil
}

// Load reads every complete entry of the ledger at path. A missing file is a
// first run and yields an empty set. A trailing fragment without a line
// break is an append that never finished and is not counted.
func Load(path string) (*KeySet, error) {
	f, err := util.Fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewKeySet(), nil
		}
		return nil, ledgerError("open", path, err)
	}
	defer f.Close()

	set := NewKeySet()
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if err == nil {
			if key := line[:len(line)-1]; key != "" {
				set.Add(key)
			}
			continue
		}
		if err == io.EOF {
			if line != "" {
				zlogger.Logger.Warnf("Ignoring unterminated ledger entry %q", line)
			}
			break
		}
		return nil, ledgerError("read", path, err)
	}

	return set, nil
}

// Ledger appends completed keys to the durable log.
type Ledger struct {
	mu   sync.Mutex
	f    util.File
	path string
}

// Open opens path for appending, creating it when absent. An unterminated
// trailing fragment left by an interrupted append is cut off so the next
// entry starts on its own line; complete entries are never touched.
func Open(path string) (*Ledger, error) {
	f, err := util.Fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, ledgerError("open", path, err)
	}

	if err := repairTail(f); err != nil {
		_ = f.Close()
		return nil, ledgerError("repair", path, err)
	}

	return &Ledger{f: f, path: path}, nil
}

// Record appends key and forces it to stable storage before returning.
func (l *Ledger) Record(key string) error {
	if err := CanRecord(key); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return ErrClosed
	}

	if _, err := l.f.Write([]byte(key + "\n")); err != nil {
		return ledgerError("append", l.path, err)
	}
	if err := l.f.Sync(); err != nil {
		return ledgerError("sync", l.path, err)
	}
	return nil
}

func (l *Ledger) Path() string {
	return l.path
}

func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	if err != nil {
		return ledgerError("close", l.path, err)
	}
	return nil
}

func repairTail(f util.File) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}

	size := info.Size()
	if size == 0 {
		return nil
	}

	end, err := lastLineEnd(f, size)
	if err != nil {
		return err
	}
	if end == size {
		return nil
	}

	zlogger.Logger.Warn("Dropping ", size-end, " bytes of unterminated ledger entry")
	if err := f.Truncate(end); err != nil {
		return err
	}
	return f.Sync()
}

// lastLineEnd returns the offset just past the last line break in the first
// size bytes of r, or 0 when there is none.
func lastLineEnd(r io.ReaderAt, size int64) (int64, error) {
	buf := make([]byte, tailChunkSize)
	for end := size; end > 0; {
		start := end - int64(len(buf))
		if start < 0 {
			start = 0
		}
		chunk := buf[:end-start]
		if _, err := r.ReadAt(chunk, start); err != nil && err != io.EOF {
			return 0, err
		}
		if i := bytes.LastIndexByte(chunk, '\n'); i >= 0 {
			return start + int64(i) + 1, nil
		}
		end = start
	}
	return 0, nil
}

func ledgerError(op, path string, err error) error {
	return zerrors.Wrap(zerrors.LedgerIOErrCode, fmt.Sprintf("%s %s", op, path), err)
}
