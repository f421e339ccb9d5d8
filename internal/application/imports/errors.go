package imports

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidImportKind   = errors.New("invalid import kind")
	ErrInvalidImportFile   = errors.New("invalid import file")
	ErrInvalidMapping      = errors.New("invalid field mapping")
	ErrInvalidPortfolio    = errors.New("invalid portfolio")
	ErrEnqueueImportJob    = errors.New("failed to enqueue import job")
	ErrInvalidImportJobID  = errors.New("invalid import job id")
	ErrImportJobNotFound   = errors.New("import job not found")
	ErrGetImportJob        = errors.New("failed to get import job")
	ErrPrepareBatch        = errors.New("failed to prepare import batch")
	ErrFinalizeBatch       = errors.New("failed to finalize import batch")
	ErrMissingDebtorName   = errors.New("debtor name is required (debtor_name, or first_name and last_name)")
	ErrMissingAccount      = errors.New("account number is required")
	ErrZeroBalance         = errors.New("original balance and current balance are both zero")
	ErrMissingVendorName   = errors.New("vendor name is required")
	ErrUnmappedRequirement = errors.New("mapping does not cover a required field")
)

// RowError ties a failure to the 1-based data row it came from.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("Row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
