package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientFunds is returned when a deduction was refused
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStorage marks any failure of the backing store
	ErrStorage = errors.New("storage failure")

	// ErrEnrichmentUnavailable is returned when display data could not be fetched
	ErrEnrichmentUnavailable = errors.New("enrichment unavailable")

	// ErrInvalidQuery is returned for blank search input
	ErrInvalidQuery = errors.New("invalid query")
)

// StorageError wraps a backend failure with the operation that failed.
// errors.Is(err, ErrStorage) holds for every StorageError.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError wraps err as a StorageError. Errors that already are
// storage errors are returned unchanged.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// InsufficientFundsError carries the balance observed when a deduction was refused
type InsufficientFundsError struct {
	Balance  int64
	Required int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: have %d, need %d", e.Balance, e.Required)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
