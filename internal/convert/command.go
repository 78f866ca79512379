// Package convert runs one CSL rewrite from an input file to a file or a
// console stream.
package convert

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jacoelho/cslmd"
)

// Command describes a single conversion.
type Command struct {
	// Input is the path of the CSL style to read.
	Input string
	// Output is the destination path. When empty the result goes to the
	// handler's console writer with ampersands normalized.
	Output string
	// Options configures markers and parse limits.
	Options cslmd.Options
}

// Validate checks paths and options before any file is touched.
func (cmd Command) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Input, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("csl.convert.input_required", "input is required")
			}
			return nil
		})),
		validation.Field(&cmd.Output, validation.By(func(value any) error {
			output := value.(string)
			if output == "" {
				return nil
			}
			if filepath.Clean(output) == filepath.Clean(cmd.Input) {
				return validation.NewError("csl.convert.output_same_as_input", "output must differ from input")
			}
			return nil
		})),
		validation.Field(&cmd.Options, validation.By(func(value any) error {
			return value.(cslmd.Options).Validate()
		})),
	)
}
