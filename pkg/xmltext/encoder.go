package xmltext

import (
	"fmt"
	"io"
)

// Encoder writes events to an io.Writer one at a time.
type Encoder struct {
	w   io.Writer
	buf []byte
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteEvent writes ev. Events carrying raw bytes are copied verbatim;
// others are serialized from their name, attributes and text.
func (e *Encoder) WriteEvent(ev Event) error {
	if ev.Raw != nil {
		return e.write(ev.Raw)
	}
	e.buf = e.buf[:0]
	switch ev.Kind {
	case KindStartElement:
		e.buf = appendTag(e.buf, ev, false)
	case KindEmptyElement:
		e.buf = appendTag(e.buf, ev, true)
	case KindEndElement:
		e.buf = append(e.buf, "</"...)
		e.buf = append(e.buf, ev.Name...)
		e.buf = append(e.buf, '>')
	case KindCharData, KindOther:
		e.buf = append(e.buf, ev.Text...)
	default:
		return fmt.Errorf("xmltext: cannot encode %s event", ev.Kind)
	}
	return e.write(e.buf)
}

// WriteText writes s as escaped character data.
func (e *Encoder) WriteText(s string) error {
	e.buf = AppendEscapedText(e.buf[:0], s)
	return e.write(e.buf)
}

func (e *Encoder) write(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	_, err := e.w.Write(data)
	return err
}

func appendTag(dst []byte, ev Event, empty bool) []byte {
	dst = append(dst, '<')
	dst = append(dst, ev.Name...)
	for _, attr := range ev.Attrs {
		dst = appendAttr(dst, attr)
	}
	if empty {
		return append(dst, "/>"...)
	}
	return append(dst, '>')
}

func appendAttr(dst []byte, attr Attr) []byte {
	dst = append(dst, ' ')
	dst = append(dst, attr.Name...)
	dst = append(dst, '=')
	if attr.Raw != nil {
		quote := attr.Quote
		if quote == 0 {
			quote = '"'
		}
		dst = append(dst, quote)
		dst = append(dst, attr.Raw...)
		return append(dst, quote)
	}
	dst = append(dst, '"')
	dst = AppendEscapedAttr(dst, attr.Value)
	return append(dst, '"')
}
