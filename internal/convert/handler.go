package convert

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/jacoelho/cslmd"
	cslerrors "github.com/jacoelho/cslmd/errors"
	"github.com/jacoelho/cslmd/internal/logging"
)

// Handler executes conversion commands.
type Handler struct {
	logger  logging.Logger
	stdout  io.Writer
	timeout time.Duration
}

// HandlerOption customises a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger logging.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithStdout sets the writer used when a command has no output path.
func WithStdout(w io.Writer) HandlerOption {
	return func(h *Handler) {
		if w != nil {
			h.stdout = w
		}
	}
}

// WithTimeout bounds each Execute call. Zero disables the bound.
func WithTimeout(timeout time.Duration) HandlerOption {
	return func(h *Handler) {
		h.timeout = timeout
	}
}

// NewHandler returns a handler writing console output to os.Stdout.
func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{
		logger: logging.NoOp(),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Execute validates cmd, rewrites the input and delivers the result.
// Nothing is written when any step before delivery fails.
func (h *Handler) Execute(ctx context.Context, cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return wrapValidationError(err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	ctx = logging.ContextWithFields(ctx, map[string]any{"input": cmd.Input})
	logger := h.logger.WithContext(ctx)
	logger.Debug("convert.start", "output", destination(cmd))

	start := time.Now()
	data, err := os.ReadFile(cmd.Input)
	if err != nil {
		err = wrapExecuteError(&cslerrors.IOFailure{Op: "read", Path: cmd.Input, Err: err})
		logger.Error("convert.read_failed", "error", err)
		return err
	}

	out, err := cslmd.TransformBytes(data, cmd.Options)
	if err != nil {
		err = wrapExecuteError(err)
		logger.Error("convert.transform_failed", "error", err)
		return err
	}

	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	if err := h.deliver(cmd, out); err != nil {
		err = wrapExecuteError(err)
		logger.Error("convert.write_failed", "error", err)
		return err
	}

	logger.Info("convert.done",
		"bytes_in", len(data),
		"bytes_out", len(out),
		"output", destination(cmd),
		"duration", time.Since(start),
	)
	return nil
}

// deliver writes the file form verbatim; the console form has "&amp;"
// collapsed to "&".
func (h *Handler) deliver(cmd Command, out []byte) error {
	if cmd.Output != "" {
		if err := os.WriteFile(cmd.Output, out, 0o644); err != nil {
			return &cslerrors.IOFailure{Op: "write", Path: cmd.Output, Err: err}
		}
		return nil
	}
	if _, err := h.stdout.Write(cslmd.NormalizeAmpersandsBytes(out)); err != nil {
		return &cslerrors.IOFailure{Op: "write", Err: err}
	}
	return nil
}

func destination(cmd Command) string {
	if cmd.Output == "" {
		return "stdout"
	}
	return cmd.Output
}
