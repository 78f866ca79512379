// Package cslmd rewrites Citation Style Language styles so their output can
// be consumed by markdown renderers.
//
// The rewrite is a single forward pass over the XML events of the style:
// title, title-short and id elements gain sentinel markers, bibliography
// layouts gain an entry separator, and italic or bold text elements are
// wrapped with markdown emphasis through their prefix and suffix.
package cslmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cslerrors "github.com/jacoelho/cslmd/errors"
	"github.com/jacoelho/cslmd/internal/rewrite"
	"github.com/jacoelho/cslmd/pkg/xmltext"
)

var errNilReader = errors.New("nil reader")

// Transform reads all of r and returns the rewritten document.
func Transform(r io.Reader, opts Options) ([]byte, error) {
	if r == nil {
		return nil, &cslerrors.IOFailure{Op: "read", Err: errNilReader}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &cslerrors.IOFailure{Op: "read", Err: err}
	}
	return TransformBytes(data, opts)
}

// TransformBytes rewrites a complete document held in memory.
// On failure the returned slice is nil; partial output is never returned.
func TransformBytes(data []byte, opts Options) ([]byte, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Grow(len(data) + len(data)/8)
	dec := xmltext.NewDecoder(data, resolved.limits.options()...)
	if err := rewrite.Run(dec, xmltext.NewEncoder(&out), resolved.markers); err != nil {
		return nil, classify(err)
	}
	return out.Bytes(), nil
}

// TransformString rewrites s with default options.
func TransformString(s string) (string, error) {
	out, err := TransformBytes([]byte(s), NewOptions())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// TransformFile rewrites the file at path.
func TransformFile(path string, opts Options) (out []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &cslerrors.IOFailure{Op: "open", Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			out = nil
			err = &cslerrors.IOFailure{Op: "close", Path: path, Err: closeErr}
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &cslerrors.IOFailure{Op: "read", Path: path, Err: err}
	}
	out, err = TransformBytes(data, opts)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", path, err)
	}
	return out, nil
}

// NormalizeAmpersands replaces every escaped ampersand "&amp;" with "&".
// It is meant for console output only: the result is no longer guaranteed
// to be well-formed XML.
func NormalizeAmpersands(s string) string {
	return strings.ReplaceAll(s, "&amp;", "&")
}

// NormalizeAmpersandsBytes is the byte slice form of NormalizeAmpersands.
func NormalizeAmpersandsBytes(data []byte) []byte {
	return bytes.ReplaceAll(data, []byte("&amp;"), []byte("&"))
}

func classify(err error) error {
	var syntax *xmltext.SyntaxError
	if errors.As(err, &syntax) {
		return &cslerrors.MalformedInput{
			Offset: syntax.Offset,
			Line:   syntax.Line,
			Column: syntax.Column,
			Err:    syntax.Err,
		}
	}
	return err
}
