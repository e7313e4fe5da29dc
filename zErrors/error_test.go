package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeChecks(t *testing.T) {
	cause := errors.New("permission denied")
	wrapped := Wrap(LedgerIOErrCode, "sync completed.txt", cause)

	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{name: "nil", err: nil, check: IsLedgerIOError, want: false},
		{name: "plain error", err: cause, check: IsLedgerIOError, want: false},
		{name: "coded", err: New(BucketNotFoundErrCode, "a"), check: IsBucketNotFoundError, want: true},
		{name: "other code", err: New(BucketNotFoundErrCode, "a"), check: IsBucketCheckFailedError, want: false},
		{name: "wrapped with cause", err: wrapped, check: IsLedgerIOError, want: true},
		{name: "wrapped twice", err: fmt.Errorf("run: %w", wrapped), check: IsLedgerIOError, want: true},
		{name: "nil cause", err: Wrap(InvalidConfigErrCode, "x", nil), check: IsInvalidConfigError, want: true},
		{name: "missing config", err: ErrMissingConfig, check: IsMissingConfigError, want: true},
		{name: "transfer incomplete", err: ErrTransferIncomplete, check: IsTransferIncompleteError, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(LedgerIOErrCode, "write completed.txt", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "write completed.txt")
	assert.Contains(t, err.Error(), "disk full")
}
