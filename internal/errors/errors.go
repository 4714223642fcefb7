// Package errors provides sentinel errors and error types for the varboard
// engine. It defines the failure conditions of the parsing boundary and the
// consistency checker, inspectable with errors.Is() and errors.As().
//
// The engine hot path (move application, attack queries, SEE) never returns
// errors: its preconditions are contracts with the move generator, not
// recoverable conditions.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidFEN indicates a malformed position encoding.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrUnknownVariant indicates a variant name with no preset descriptor.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrInconsistentPosition indicates that the redundant board structures
	// (bitboards, piece lists, counts, hash keys) disagree with each other.
	ErrInconsistentPosition = errors.New("inconsistent position")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// FENError wraps a FEN parsing failure with the offending field.
type FENError struct {
	Err   error  // the underlying error
	FEN   string // the full input string
	Field string // the field that failed to parse, if known
}

// Error returns a formatted message including the failing field.
func (e *FENError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("FEN %q: field %s: %v", e.FEN, e.Field, e.Err)
	}
	return fmt.Sprintf("FEN %q: %v", e.FEN, e.Err)
}

// Unwrap returns the underlying error, enabling errors.Is() through the
// FENError wrapper.
func (e *FENError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
