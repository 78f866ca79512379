// Package errors defines the failure taxonomy of the CSL rewriter.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	// ErrMalformedInput indicates the input is not well-formed XML.
	ErrMalformedInput ErrorCode = "csl-malformed-input"
	// ErrIOFailure indicates the input could not be read or the output written.
	ErrIOFailure ErrorCode = "csl-io-failure"
	// ErrInvalidOptions indicates rewrite options failed validation.
	ErrInvalidOptions ErrorCode = "csl-invalid-options"
)

// MalformedInput reports input that does not parse as well-formed XML.
// No output is produced when it is returned.
type MalformedInput struct {
	Err    error
	Offset int64
	Line   int
	Column int
}

// Error formats the failure with its byte offset and cause.
func (e *MalformedInput) Error() string {
	if e == nil {
		return "malformed input <nil>"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] malformed input at offset %d", ErrMalformedInput, e.Offset))
	if e.Line > 0 && e.Column > 0 {
		b.WriteString(fmt.Sprintf(" (line %d, column %d)", e.Line, e.Column))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying parse error.
func (e *MalformedInput) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Code reports ErrMalformedInput.
func (e *MalformedInput) Code() ErrorCode {
	return ErrMalformedInput
}

// IOFailure reports a read or write failure around the rewrite.
type IOFailure struct {
	Err  error
	Op   string
	Path string
}

// Error formats the failure with the operation and path.
func (e *IOFailure) Error() string {
	if e == nil {
		return "io failure <nil>"
	}
	target := e.Path
	if target == "" {
		target = "<stream>"
	}
	return fmt.Sprintf("[%s] %s %s: %v", ErrIOFailure, e.Op, target, e.Err)
}

// Unwrap exposes the underlying I/O error.
func (e *IOFailure) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Code reports ErrIOFailure.
func (e *IOFailure) Code() ErrorCode {
	return ErrIOFailure
}

// InvalidOptions reports rewrite options that cannot be used.
type InvalidOptions struct {
	Field  string
	Reason string
}

// Error formats the rejected field and reason.
func (e *InvalidOptions) Error() string {
	if e == nil {
		return "invalid options <nil>"
	}
	return fmt.Sprintf("[%s] %s: %s", ErrInvalidOptions, e.Field, e.Reason)
}

// Code reports ErrInvalidOptions.
func (e *InvalidOptions) Code() ErrorCode {
	return ErrInvalidOptions
}

// AsMalformedInput extracts a MalformedInput from an error chain.
func AsMalformedInput(err error) (*MalformedInput, bool) {
	var target *MalformedInput
	if errors.As(err, &target) && target != nil {
		return target, true
	}
	return nil, false
}

// AsIOFailure extracts an IOFailure from an error chain.
func AsIOFailure(err error) (*IOFailure, bool) {
	var target *IOFailure
	if errors.As(err, &target) && target != nil {
		return target, true
	}
	return nil, false
}

// CodeOf reports the code of the first coded error in the chain.
func CodeOf(err error) (ErrorCode, bool) {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code(), true
	}
	return "", false
}
