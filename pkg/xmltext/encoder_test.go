package xmltext

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestEncoderRoundTripsRawEvents(t *testing.T) {
	input := "<?xml version=\"1.0\"?>\n<style a = 'x'>\n  <text value=\"&amp;\" />\n  <!-- c -->\n</style>\n"
	dec := NewDecoder([]byte(input))
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for {
		ev, err := dec.ReadEvent()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadEvent error = %v", err)
		}
		if err := enc.WriteEvent(ev); err != nil {
			t.Fatalf("WriteEvent error = %v", err)
		}
	}
	if buf.String() != input {
		t.Fatalf("output = %q, want %q", buf.String(), input)
	}
}

func TestEncoderRebuildsModifiedTags(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{
			name: "start keeps raw attrs and quotes",
			ev: Event{Kind: KindStartElement, Name: "layout", Attrs: []Attr{
				{Name: "delimiter", Value: "'", Raw: []byte("&apos;"), Quote: '\''},
				NewAttr("suffix", ".&#10;"),
			}},
			want: `<layout delimiter='&apos;' suffix=".&amp;#10;">`,
		},
		{
			name: "empty escapes synthesized attrs",
			ev: Event{Kind: KindEmptyElement, Name: "text", Attrs: []Attr{
				NewAttr("prefix", "<\"a\">\n"),
			}},
			want: `<text prefix="&lt;&quot;a&quot;&gt;&#10;"/>`,
		},
		{
			name: "empty without attrs",
			ev:   Event{Kind: KindEmptyElement, Name: "text"},
			want: `<text/>`,
		},
		{
			name: "end",
			ev:   EndOf(Event{Kind: KindStartElement, Name: "title"}),
			want: `</title>`,
		},
		{
			name: "char data",
			ev:   Event{Kind: KindCharData, Text: []byte("a &amp; b")},
			want: `a &amp; b`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewEncoder(&buf).WriteEvent(tt.ev); err != nil {
				t.Fatalf("WriteEvent error = %v", err)
			}
			if buf.String() != tt.want {
				t.Fatalf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestEncoderWithAttrsDropsRaw(t *testing.T) {
	events := readAll(t, `<layout suffix="."  >`+"</layout>")
	start := events[0].WithAttrs([]Attr{NewAttr("suffix", "!")})
	if start.Raw != nil {
		t.Fatalf("WithAttrs kept raw bytes")
	}
	var buf bytes.Buffer
	if err := NewEncoder(&buf).WriteEvent(start); err != nil {
		t.Fatalf("WriteEvent error = %v", err)
	}
	if got, want := buf.String(), `<layout suffix="!">`; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestEncoderWriteText(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.WriteText("_MD_"); err != nil {
		t.Fatalf("WriteText error = %v", err)
	}
	if err := enc.WriteText("a<b&c>"); err != nil {
		t.Fatalf("WriteText error = %v", err)
	}
	if got, want := buf.String(), "_MD_a&lt;b&amp;c&gt;"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestEncoderRejectsUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).WriteEvent(Event{}); err == nil {
		t.Fatalf("WriteEvent(None) error = nil, want error")
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestEncoderPropagatesWriteErrors(t *testing.T) {
	enc := NewEncoder(failingWriter{})
	err := enc.WriteEvent(Event{Kind: KindCharData, Raw: []byte("x")})
	if !errors.Is(err, errWrite) {
		t.Fatalf("WriteEvent error = %v, want %v", err, errWrite)
	}
}
