package cslmd

import (
	cslerrors "github.com/jacoelho/cslmd/errors"
	"github.com/jacoelho/cslmd/internal/rewrite"
)

type intOption struct {
	value int
	set   bool
}

func (o intOption) resolved() int {
	if !o.set {
		return 0
	}
	return o.value
}

type stringOption struct {
	value string
	set   bool
}

func (o stringOption) resolved(fallback string) string {
	if !o.set {
		return fallback
	}
	return o.value
}

// Options configures the rewrite markers and XML parse limits.
// The zero value uses the default markers and limits.
type Options struct {
	titleMarker    stringOption
	idMarker       stringOption
	entrySeparator stringOption
	italicMarker   stringOption
	boldMarker     stringOption
	maxDepth       intOption
	maxAttrs       intOption
	maxTokenSize   intOption
}

type resolvedOptions struct {
	markers rewrite.Markers
	limits  xmlParseLimits
}

// NewOptions returns a default, valid options value.
func NewOptions() Options {
	return Options{}
}

// Validate validates options values.
func (o Options) Validate() error {
	_, err := o.withDefaults()
	return err
}

// WithTitleMarker sets the text appended to title and title-short elements.
func (o Options) WithTitleMarker(value string) Options {
	o.titleMarker = stringOption{value: value, set: true}
	return o
}

// WithIDMarker sets the text appended to id elements.
func (o Options) WithIDMarker(value string) Options {
	o.idMarker = stringOption{value: value, set: true}
	return o
}

// WithEntrySeparator sets the text appended to bibliography layout suffixes.
func (o Options) WithEntrySeparator(value string) Options {
	o.entrySeparator = stringOption{value: value, set: true}
	return o
}

// WithItalicMarker sets the markdown emphasis used for italic text.
func (o Options) WithItalicMarker(value string) Options {
	o.italicMarker = stringOption{value: value, set: true}
	return o
}

// WithBoldMarker sets the markdown emphasis used for bold text.
func (o Options) WithBoldMarker(value string) Options {
	o.boldMarker = stringOption{value: value, set: true}
	return o
}

// WithMaxDepth sets the XML max depth limit (0 uses default).
func (o Options) WithMaxDepth(value int) Options {
	o.maxDepth = intOption{value: value, set: true}
	return o
}

// WithMaxAttrs sets the XML max attributes limit (0 uses default).
func (o Options) WithMaxAttrs(value int) Options {
	o.maxAttrs = intOption{value: value, set: true}
	return o
}

// WithMaxTokenSize sets the XML max token size limit (0 uses default).
func (o Options) WithMaxTokenSize(value int) Options {
	o.maxTokenSize = intOption{value: value, set: true}
	return o
}

func (o Options) withDefaults() (resolvedOptions, error) {
	defaults := rewrite.DefaultMarkers()
	markers := rewrite.Markers{
		Title:          o.titleMarker.resolved(defaults.Title),
		ID:             o.idMarker.resolved(defaults.ID),
		EntrySeparator: o.entrySeparator.resolved(defaults.EntrySeparator),
		Italic:         o.italicMarker.resolved(defaults.Italic),
		Bold:           o.boldMarker.resolved(defaults.Bold),
	}
	checks := []struct {
		field string
		value string
	}{
		{"title marker", markers.Title},
		{"id marker", markers.ID},
		{"entry separator", markers.EntrySeparator},
		{"italic marker", markers.Italic},
		{"bold marker", markers.Bold},
	}
	for _, check := range checks {
		if check.value == "" {
			return resolvedOptions{}, &cslerrors.InvalidOptions{Field: check.field, Reason: "must not be empty"}
		}
	}

	limits, err := resolveXMLParseLimits(o.maxDepth.resolved(), o.maxAttrs.resolved(), o.maxTokenSize.resolved())
	if err != nil {
		return resolvedOptions{}, err
	}
	return resolvedOptions{markers: markers, limits: limits}, nil
}
