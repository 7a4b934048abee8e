package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a required column is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDataset is returned by Analyze for a dataset with no records.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrUnknownColumn is returned when a column is absent or not numeric.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrTypeMismatch is returned when a comparison cannot be performed.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ColumnError ties a failure to the column that caused it.
//
// The taxonomy sentinel can be matched with errors.Is.
type ColumnError struct {
	Column string
	Op     string
	cause  error
}

// NewColumnError builds a ColumnError wrapping cause.
func NewColumnError(column, op string, cause error) *ColumnError {
	return &ColumnError{Column: column, Op: op, cause: cause}
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Column, e.cause)
}

func (e *ColumnError) Unwrap() error { return e.cause }
