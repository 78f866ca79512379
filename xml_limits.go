package cslmd

import (
	"cmp"

	cslerrors "github.com/jacoelho/cslmd/errors"
	"github.com/jacoelho/cslmd/pkg/xmltext"
)

const (
	defaultXMLMaxDepth     = 256
	defaultXMLMaxAttrs     = 256
	defaultXMLMaxTokenSize = 4 << 20
)

type xmlParseLimits struct {
	maxDepth     int
	maxAttrs     int
	maxTokenSize int
}

func resolveXMLParseLimits(maxDepth, maxAttrs, maxTokenSize int) (xmlParseLimits, error) {
	if maxDepth < 0 {
		return xmlParseLimits{}, &cslerrors.InvalidOptions{Field: "xml max depth", Reason: "must be >= 0"}
	}
	if maxAttrs < 0 {
		return xmlParseLimits{}, &cslerrors.InvalidOptions{Field: "xml max attrs", Reason: "must be >= 0"}
	}
	if maxTokenSize < 0 {
		return xmlParseLimits{}, &cslerrors.InvalidOptions{Field: "xml max token size", Reason: "must be >= 0"}
	}
	return xmlParseLimits{
		maxDepth:     cmp.Or(maxDepth, defaultXMLMaxDepth),
		maxAttrs:     cmp.Or(maxAttrs, defaultXMLMaxAttrs),
		maxTokenSize: cmp.Or(maxTokenSize, defaultXMLMaxTokenSize),
	}, nil
}

func (l xmlParseLimits) options() []xmltext.Options {
	return []xmltext.Options{
		xmltext.MaxDepth(l.maxDepth),
		xmltext.MaxAttrs(l.maxAttrs),
		xmltext.MaxTokenSize(l.maxTokenSize),
	}
}
