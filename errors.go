package apura

import (
	"errors"
	"fmt"
)

// Sentinel targets for errors.Is checks on the typed errors below.
var (
	ErrIntegrity     = errors.New("ledger integrity error")
	ErrMetadata      = errors.New("invalid asset metadata")
	ErrQuoteNotFound = errors.New("quote not found")
)

// IntegrityError reports an inconsistent split history. It is fatal for the
// whole report: tax figures must not be partially wrong.
type IntegrityError struct {
	Account string
	Split   Split
	Reason  string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("account %q: %s (split %s)", e.Account, e.Reason, e.Split)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }

// MetadataError reports a missing or malformed asset classification for an
// account. Processing of the account must not proceed without it.
type MetadataError struct {
	Account string
	Err     error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("account %q: invalid asset metadata: %v", e.Account, e.Err)
}

func (e *MetadataError) Unwrap() error { return ErrMetadata }

// QuoteError reports a missing exchange-rate quote. The caller is expected to
// obtain a quote for On, persist it, and retry the computation.
type QuoteError struct {
	On Date
}

func (e *QuoteError) Error() string {
	return fmt.Sprintf("no USD/BRL quote on or before %s", e.On)
}

func (e *QuoteError) Unwrap() error { return ErrQuoteNotFound }
