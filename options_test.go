package cslmd

import (
	"testing"

	cslerrors "github.com/jacoelho/cslmd/errors"
	"github.com/jacoelho/cslmd/internal/rewrite"
)

func TestOptionsDefaults(t *testing.T) {
	resolved, err := NewOptions().withDefaults()
	if err != nil {
		t.Fatalf("withDefaults() error = %v", err)
	}
	if resolved.markers != rewrite.DefaultMarkers() {
		t.Fatalf("markers = %+v, want %+v", resolved.markers, rewrite.DefaultMarkers())
	}
	want := xmlParseLimits{
		maxDepth:     defaultXMLMaxDepth,
		maxAttrs:     defaultXMLMaxAttrs,
		maxTokenSize: defaultXMLMaxTokenSize,
	}
	if resolved.limits != want {
		t.Fatalf("limits = %+v, want %+v", resolved.limits, want)
	}
}

func TestOptionsOverrides(t *testing.T) {
	opts := NewOptions().
		WithTitleMarker("[T]").
		WithIDMarker("[I]").
		WithEntrySeparator("\n").
		WithItalicMarker("*").
		WithBoldMarker("__").
		WithMaxDepth(8).
		WithMaxAttrs(4).
		WithMaxTokenSize(1024)
	resolved, err := opts.withDefaults()
	if err != nil {
		t.Fatalf("withDefaults() error = %v", err)
	}
	wantMarkers := rewrite.Markers{Title: "[T]", ID: "[I]", EntrySeparator: "\n", Italic: "*", Bold: "__"}
	if resolved.markers != wantMarkers {
		t.Fatalf("markers = %+v, want %+v", resolved.markers, wantMarkers)
	}
	wantLimits := xmlParseLimits{maxDepth: 8, maxAttrs: 4, maxTokenSize: 1024}
	if resolved.limits != wantLimits {
		t.Fatalf("limits = %+v, want %+v", resolved.limits, wantLimits)
	}
}

func TestOptionsZeroLimitUsesDefault(t *testing.T) {
	resolved, err := NewOptions().WithMaxDepth(0).withDefaults()
	if err != nil {
		t.Fatalf("withDefaults() error = %v", err)
	}
	if resolved.limits.maxDepth != defaultXMLMaxDepth {
		t.Fatalf("maxDepth = %d, want %d", resolved.limits.maxDepth, defaultXMLMaxDepth)
	}
}

func TestOptionsValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		field string
	}{
		{"empty title marker", NewOptions().WithTitleMarker(""), "title marker"},
		{"empty id marker", NewOptions().WithIDMarker(""), "id marker"},
		{"empty separator", NewOptions().WithEntrySeparator(""), "entry separator"},
		{"empty italic", NewOptions().WithItalicMarker(""), "italic marker"},
		{"empty bold", NewOptions().WithBoldMarker(""), "bold marker"},
		{"negative depth", NewOptions().WithMaxDepth(-1), "xml max depth"},
		{"negative attrs", NewOptions().WithMaxAttrs(-1), "xml max attrs"},
		{"negative token", NewOptions().WithMaxTokenSize(-1), "xml max token size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			invalid, ok := err.(*cslerrors.InvalidOptions)
			if !ok {
				t.Fatalf("Validate() error = %v, want *errors.InvalidOptions", err)
			}
			if invalid.Field != tt.field {
				t.Fatalf("Field = %q, want %q", invalid.Field, tt.field)
			}
			if _, err := TransformBytes([]byte("<a/>"), tt.opts); err == nil {
				t.Fatal("TransformBytes() err = nil, want invalid options")
			}
		})
	}
}

func TestOptionsLimitsReachDecoder(t *testing.T) {
	if _, err := TransformBytes([]byte("<a><b><c/></b></a>"), NewOptions().WithMaxDepth(2)); err == nil {
		t.Fatal("depth limit: err = nil, want error")
	}
	if _, err := TransformBytes([]byte(`<a x="1" y="2"/>`), NewOptions().WithMaxAttrs(1)); err == nil {
		t.Fatal("attr limit: err = nil, want error")
	}
	if _, err := TransformBytes([]byte("<a>0123456789</a>"), NewOptions().WithMaxTokenSize(4)); err == nil {
		t.Fatal("token limit: err = nil, want error")
	}
	if _, err := TransformBytes([]byte("<a><b/></a>"), NewOptions().WithMaxDepth(2)); err != nil {
		t.Fatalf("within depth limit: error = %v", err)
	}
}
