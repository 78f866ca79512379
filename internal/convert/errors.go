package convert

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	cslerrors "github.com/jacoelho/cslmd/errors"
)

const (
	codeCommandInvalid  = "CSL_COMMAND_INVALID"
	codeMalformedInput  = "CSL_MALFORMED_INPUT"
	codeIOFailure       = "CSL_IO_FAILURE"
	codeContextCanceled = "CSL_CONTEXT_CANCELED"
	codeContextTimeout  = "CSL_CONTEXT_TIMEOUT"
	codeExecuteFailed   = "CSL_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "convert command invalid").
		WithTextCode(codeCommandInvalid)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "convert deadline exceeded").
			WithTextCode(codeContextTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "convert cancelled").
		WithTextCode(codeContextCanceled)
}

// wrapExecuteError classifies a failure from the rewrite or file I/O.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if _, ok := cslerrors.AsMalformedInput(err); ok {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "input is not well-formed XML").
			WithTextCode(codeMalformedInput)
	}
	var invalid *cslerrors.InvalidOptions
	if errors.As(err, &invalid) {
		return wrapValidationError(err)
	}
	if _, ok := cslerrors.AsIOFailure(err); ok {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "file access failed").
			WithTextCode(codeIOFailure)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "convert failed").
		WithTextCode(codeExecuteFailed)
}
