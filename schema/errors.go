package schema

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateTable      = errors.New("table already exists")
	ErrUnknownTable        = errors.New("table does not exist")
	ErrMalformedColumnSpec = errors.New("malformed column spec")
	ErrUnknownColumnType   = errors.New("unknown column type")
	ErrUnknownColumn       = errors.New("column does not exist")
	ErrReadOnlyColumn      = errors.New("column is read-only")
	ErrArityMismatch       = errors.New("wrong number of values")
	ErrTypeCoercion        = errors.New("value does not match column type")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrMalformedCommand    = errors.New("malformed command")
	ErrDeserialization     = errors.New("corrupt document")
)

// DeserializationError reports a persisted document that exists but cannot
// be parsed. It matches both ErrDeserialization and the underlying parse error.
type DeserializationError struct {
	Path string
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("corrupt document %s: %v", e.Path, e.Err)
}

func (e *DeserializationError) Unwrap() []error {
	return []error{ErrDeserialization, e.Err}
}
