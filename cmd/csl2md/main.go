package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jacoelho/cslmd/internal/convert"
	"github.com/jacoelho/cslmd/internal/logging"
	"github.com/jacoelho/cslmd/internal/logging/console"
	"github.com/jacoelho/cslmd/internal/logging/gologger"
)

const version = "0.2.0"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runWithContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	return runWithContext(context.Background(), args, stdout, stderr)
}

func runWithContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("csl2md", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var input, output string
	fs.StringVar(&input, "i", "", "path to the CSL style to convert (shorthand)")
	fs.StringVar(&input, "input", "", "path to the CSL style to convert")
	fs.StringVar(&output, "o", "", "path of the converted style (shorthand)")
	fs.StringVar(&output, "output", "", "path of the converted style; stdout when empty")
	logLevel := fs.String("log-level", "warn", "log level: trace, debug, info, warn, error, fatal")
	logFormat := fs.String("log-format", "console", "go-logger format: console, json, pretty")
	logProvider := fs.String("log-provider", "console", "log provider: console (stderr) or gologger")
	showVersion := fs.Bool("version", false, "print version and exit")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s -i <style.csl> [-o <out.csl>]\n\n", fs.Name()),
			writeln(stderr, "Rewrites a CSL style so its output can be rendered as markdown."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		if err := writef(stdout, "csl2md %s\n", version); err != nil {
			return 1
		}
		return 0
	}

	if input == "" {
		return usage(fs, stderr, &usageErr, "error: -input is required")
	}
	if fs.NArg() != 0 {
		return usage(fs, stderr, &usageErr, fmt.Sprintf("error: unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}

	provider, err := newLoggerProvider(*logProvider, *logLevel, *logFormat, stderr)
	if err != nil {
		return usage(fs, stderr, &usageErr, "error: "+err.Error())
	}

	handler := convert.NewHandler(
		convert.WithStdout(stdout),
		convert.WithLogger(logging.ConvertLogger(provider)),
	)
	if err := handler.Execute(ctx, convert.Command{Input: input, Output: output}); err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	return 0
}

func usage(fs *flag.FlagSet, stderr io.Writer, usageErr *error, msg string) int {
	if err := writeln(stderr, msg); err != nil {
		return 1
	}
	fs.Usage()
	if *usageErr != nil {
		return 1
	}
	return 2
}

func newLoggerProvider(name, level, format string, stderr io.Writer) (logging.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "console":
		minLevel, err := console.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		return console.NewProvider(console.Options{Writer: stderr, MinLevel: &minLevel}), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{Level: level, Format: format})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unknown log provider %q", name)
	}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
