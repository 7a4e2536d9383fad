// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors surfaced by stock operations
var (
	// ErrNotFound signals that the referenced product or variant does not
	// exist, or the variant does not belong to the given product.
	ErrNotFound = errors.New("stock item not found")

	// ErrInsufficientStock signals that an out/adjust would drive stock
	// below zero.
	ErrInsufficientStock = errors.New("cannot reduce stock below zero")
)

// ValidationError carries field-level messages for a malformed request.
// It is produced before any store access.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

// NewValidationError returns an empty validation error ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for a field, keeping the first message per field.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// HasErrors reports whether any field failed validation.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// PersistenceError wraps an underlying store failure. Callers receive a
// generic message; the cause stays attached for logging.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err with the operation that failed.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
