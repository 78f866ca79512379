// Package rewrite applies the CSL-to-markdown tag rules to an event stream.
package rewrite

import (
	"io"

	"github.com/jacoelho/cslmd/pkg/xmltext"
)

// Markers are the literal strings injected into the output.
type Markers struct {
	Title          string
	ID             string
	EntrySeparator string
	Italic         string
	Bold           string
}

// DefaultMarkers returns the markers expected by markdown-aware citation
// renderers.
func DefaultMarkers() Markers {
	return Markers{
		Title:          "_MD_",
		ID:             "/_MD_",
		EntrySeparator: "&#10;",
		Italic:         "_",
		Bold:           "**",
	}
}

// EventReader yields events in document order and io.EOF at the end.
type EventReader interface {
	ReadEvent() (xmltext.Event, error)
}

// EventWriter receives rewritten events.
type EventWriter interface {
	WriteEvent(ev xmltext.Event) error
	WriteText(s string) error
}

type pass struct {
	out     EventWriter
	markers Markers
	scope   scope
}

// Run copies every event from src to dst in a single forward pass, applying
// the rule registered for the element name and event kind. It stops at the
// first read or write error.
func Run(src EventReader, dst EventWriter, markers Markers) error {
	p := &pass{out: dst, markers: markers}
	for {
		ev, err := src.ReadEvent()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := p.handle(ev); err != nil {
			return err
		}
	}
}

func (p *pass) handle(ev xmltext.Event) error {
	if h := lookup(ev); h != nil {
		return h(p, ev)
	}
	return p.out.WriteEvent(ev)
}
