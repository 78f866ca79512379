package xmltext

import (
	"errors"
	"fmt"
)

var (
	errUnexpectedEOF    = errors.New("unexpected EOF")
	errInvalidName      = errors.New("invalid XML name")
	errInvalidEntity    = errors.New("invalid entity reference")
	errInvalidCharRef   = errors.New("invalid character reference")
	errInvalidChar      = errors.New("invalid XML character")
	errInvalidToken     = errors.New("invalid XML token")
	errInvalidAttr      = errors.New("invalid attribute syntax")
	errTokenTooLarge    = errors.New("token exceeds MaxTokenSize")
	errDepthLimit       = errors.New("element depth exceeds MaxDepth")
	errAttrLimit        = errors.New("attribute count exceeds MaxAttrs")
	errMismatchedEndTag = errors.New("mismatched end element")
	errUnclosedElement  = errors.New("unclosed element at end of input")
)

// SyntaxError reports a well-formedness error with location context.
type SyntaxError struct {
	Offset int64
	Line   int
	Column int
	Err    error
}

// Error formats the syntax error with location and cause.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("xml syntax error at offset %d (line %d, column %d): %v", e.Offset, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("xml syntax error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
