package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jacoelho/cslmd/internal/logging"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newTestProvider(buf *bytes.Buffer, level Level) logging.LoggerProvider {
	return NewProvider(Options{Writer: buf, TimeFunc: fixedClock, MinLevel: &level})
}

func TestLoggerWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestProvider(&buf, LevelDebug).GetLogger("csl.convert")

	logger.Info("convert.done", "bytes_out", 42, "output", "out file.csl")

	want := `2024-03-01T12:00:00Z INFO convert.done bytes_out=42 logger=csl.convert output="out file.csl"` + "\n"
	if buf.String() != want {
		t.Fatalf("entry = %q, want %q", buf.String(), want)
	}
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestProvider(&buf, LevelWarn).GetLogger("csl")

	logger.Trace("t")
	logger.Debug("d")
	logger.Info("i")
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}
	logger.Error("e", "err", errors.New("bad input"))
	if !strings.Contains(buf.String(), `ERROR e err="bad input" logger=csl`) {
		t.Fatalf("entry = %q", buf.String())
	}
}

func TestLoggerDefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := NewProvider(Options{Writer: &buf, TimeFunc: fixedClock}).GetLogger("csl")
	logger.Info("hidden")
	logger.Warn("shown")
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Fatalf("lines = %d, want 1: %q", got, buf.String())
	}
}

func TestLoggerFieldsAndContext(t *testing.T) {
	var buf bytes.Buffer
	base := newTestProvider(&buf, LevelTrace).GetLogger("csl")
	child := logging.WithFields(base, map[string]any{"module": "csl.convert"})

	ctx := logging.ContextWithFields(context.Background(), map[string]any{"input": "a.csl"})
	child.WithContext(ctx).Debug("convert.start", 7)

	want := "2024-03-01T12:00:00Z DEBUG convert.start field_0=7 input=a.csl logger=csl module=csl.convert\n"
	if buf.String() != want {
		t.Fatalf("entry = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	base.Warn("plain")
	if strings.Contains(buf.String(), "module=") {
		t.Fatalf("parent logger gained child fields: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{" info ", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"fatal", LevelFatal},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("ParseLevel(loud) err = nil, want error")
	}
}
