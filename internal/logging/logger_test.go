package logging

import (
	"context"
	"testing"
)

type recordingProvider struct {
	names  []string
	logger *recordingLogger
}

func (p *recordingProvider) GetLogger(name string) Logger {
	p.names = append(p.names, name)
	return p.logger
}

type recordingLogger struct {
	fields []map[string]any
}

func (*recordingLogger) Trace(string, ...any) {}
func (*recordingLogger) Debug(string, ...any) {}
func (*recordingLogger) Info(string, ...any)  {}
func (*recordingLogger) Warn(string, ...any)  {}
func (*recordingLogger) Error(string, ...any) {}
func (*recordingLogger) Fatal(string, ...any) {}

func (l *recordingLogger) WithContext(context.Context) Logger { return l }

func (l *recordingLogger) WithFields(fields map[string]any) Logger {
	l.fields = append(l.fields, fields)
	return l
}

func TestModuleLoggerNilProvider(t *testing.T) {
	logger := ModuleLogger(nil, "csl.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("ModuleLogger(nil) = %T, want noopLogger", logger)
	}
	logger.Info("ignored", "key", "value")
}

func TestModuleLoggerTagsModule(t *testing.T) {
	provider := &recordingProvider{logger: &recordingLogger{}}
	ConvertLogger(provider)
	ModuleLogger(provider, "")

	want := []string{convertModule, rootModule}
	if len(provider.names) != len(want) {
		t.Fatalf("GetLogger calls = %v, want %v", provider.names, want)
	}
	for i := range want {
		if provider.names[i] != want[i] {
			t.Fatalf("GetLogger[%d] = %q, want %q", i, provider.names[i], want[i])
		}
		if got := provider.logger.fields[i]["module"]; got != want[i] {
			t.Fatalf("module field = %v, want %q", got, want[i])
		}
	}
}

func TestWithFieldsCopies(t *testing.T) {
	logger := &recordingLogger{}
	fields := map[string]any{"path": "a.csl"}
	WithFields(logger, fields)
	fields["path"] = "b.csl"
	if got := logger.fields[0]["path"]; got != "a.csl" {
		t.Fatalf("path = %v, want a.csl", got)
	}
	if WithFields(logger, nil) != Logger(logger) {
		t.Fatal("WithFields(nil) did not return the same logger")
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"input": "a.csl"})
	ctx = ContextWithFields(ctx, map[string]any{"output": "b.csl"})

	fields := ContextFields(ctx)
	if fields["input"] != "a.csl" || fields["output"] != "b.csl" {
		t.Fatalf("ContextFields() = %v", fields)
	}
	fields["input"] = "mutated"
	if ContextFields(ctx)["input"] != "a.csl" {
		t.Fatal("ContextFields() returned shared map")
	}
	if ContextFields(context.Background()) != nil {
		t.Fatal("ContextFields(empty) != nil")
	}
}
