package errors

import (
	"errors"
	"fmt"

	zerror "github.com/0chain/errors"
)

const (
	InvalidConfigErrCode      = "invalid_config"
	MissingConfigErrCode      = "missing_config"
	BucketNotFoundErrCode     = "bucket_not_found"
	BucketCheckFailedErrCode  = "bucket_check_failed"
	LedgerIOErrCode           = "ledger_io"
	TransferIncompleteErrCode = "transfer_incomplete"
)

var (
	ErrInvalidConfig      = zerror.New(InvalidConfigErrCode, "")
	ErrMissingConfig      = zerror.New(MissingConfigErrCode, "")
	ErrBucketNotFound     = zerror.New(BucketNotFoundErrCode, "")
	ErrBucketCheckFailed  = zerror.New(BucketCheckFailedErrCode, "")
	ErrLedgerIO           = zerror.New(LedgerIOErrCode, "")
	ErrTransferIncomplete = zerror.New(TransferIncompleteErrCode, "")
)

// New builds a coded error carrying msg.
func New(code, msg string) error {
	return zerror.New(code, msg)
}

// Wrap builds a coded error that also unwraps to cause.
func Wrap(code, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return fmt.Errorf("%w: %w", zerror.New(code, msg), cause)
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}

	var zerr *zerror.Error
	if errors.As(err, &zerr) {
		return zerr.Code == code
	}
	return false
}

func IsInvalidConfigError(err error) bool {
	return hasCode(err, InvalidConfigErrCode)
}

func IsMissingConfigError(err error) bool {
	return hasCode(err, MissingConfigErrCode)
}

func IsBucketNotFoundError(err error) bool {
	return hasCode(err, BucketNotFoundErrCode)
}

func IsBucketCheckFailedError(err error) bool {
	return hasCode(err, BucketCheckFailedErrCode)
}

func IsLedgerIOError(err error) bool {
	return hasCode(err, LedgerIOErrCode)
}

func IsTransferIncompleteError(err error) bool {
	return hasCode(err, TransferIncompleteErrCode)
}
