package action

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument   = errors.New("action: invalid argument")
	ErrMalformedEncoding = errors.New("action: malformed encoding")
)

// FieldError names the field that failed construction or decoding.
type FieldError struct {
	Field string
	Kind  error
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Field)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Field, e.Err)
}

// Unwrap exposes both the error kind and the underlying cause.
func (e *FieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func missing(field string) error {
	return &FieldError{Field: field, Kind: ErrInvalidArgument}
}

func invalid(field string, err error) error {
	return &FieldError{Field: field, Kind: ErrInvalidArgument, Err: err}
}

func malformed(field string, err error) error {
	return &FieldError{Field: field, Kind: ErrMalformedEncoding, Err: err}
}
