package xmltext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	utf8BOM       = []byte{0xEF, 0xBB, 0xBF}
	litEndTag     = []byte("</")
	litPIOpen     = []byte("<?")
	litPIClose    = []byte("?>")
	litCommOpen   = []byte("<!--")
	litCommClose  = []byte("-->")
	litCDATAOpen  = []byte("<![CDATA[")
	litCDATAClose = []byte("]]>")
	litBang       = []byte("<!")
)

// Decoder streams events from an in-memory XML fragment.
type Decoder struct {
	data  []byte
	stack []string
	err   error
	opts  decoderOptions
	pos   int

	locOffset int
	locLine   int
	locColumn int
}

// NewDecoder creates a decoder over data. The decoder never copies data;
// Raw and Text slices of returned events alias it.
func NewDecoder(data []byte, opts ...Options) *Decoder {
	return &Decoder{
		data:      data,
		opts:      resolveOptions(JoinOptions(opts...)),
		locLine:   1,
		locColumn: 1,
	}
}

// ReadEvent returns the next event in document order.
// It returns io.EOF after the last event once every element is closed.
// Any other error is a *SyntaxError and is returned again by later calls.
func (d *Decoder) ReadEvent() (Event, error) {
	if d.err != nil {
		return Event{}, d.err
	}
	ev, err := d.next()
	if err != nil {
		d.err = d.fail(err)
		return Event{}, d.err
	}
	return ev, nil
}

// InputOffset reports the byte offset of the next unread byte.
func (d *Decoder) InputOffset() int64 {
	return int64(d.pos)
}

// StackDepth reports the number of open elements.
func (d *Decoder) StackDepth() int {
	return len(d.stack)
}

type posError struct {
	err error
	pos int
}

func (e *posError) Error() string {
	return e.err.Error()
}

func errorAt(pos int, err error) error {
	return &posError{pos: pos, err: err}
}

func (d *Decoder) fail(err error) error {
	if err == io.EOF {
		return io.EOF
	}
	pos := d.pos
	var at *posError
	if errors.As(err, &at) {
		pos = at.pos
		err = at.err
	}
	line, column := d.locate(pos)
	return &SyntaxError{
		Offset: int64(pos),
		Line:   line,
		Column: column,
		Err:    err,
	}
}

// locate converts a byte offset into a 1-based line and rune column.
// Offsets are requested in increasing order, so the scan resumes from the
// last located position.
func (d *Decoder) locate(pos int) (int, int) {
	if pos > len(d.data) {
		pos = len(d.data)
	}
	if pos < d.locOffset {
		d.locOffset, d.locLine, d.locColumn = 0, 1, 1
	}
	for d.locOffset < pos {
		b := d.data[d.locOffset]
		if b == '\n' {
			d.locLine++
			d.locColumn = 1
			d.locOffset++
			continue
		}
		size := 1
		if b >= utf8.RuneSelf {
			_, size = utf8.DecodeRune(d.data[d.locOffset:])
		}
		d.locOffset += size
		d.locColumn++
	}
	return d.locLine, d.locColumn
}

func (d *Decoder) next() (Event, error) {
	if d.pos >= len(d.data) {
		if len(d.stack) > 0 {
			return Event{}, errorAt(len(d.data), fmt.Errorf("%w: <%s>", errUnclosedElement, d.stack[len(d.stack)-1]))
		}
		return Event{}, io.EOF
	}

	start := d.pos
	rest := d.data[start:]
	var (
		ev  Event
		err error
	)
	switch {
	case start == 0 && bytes.HasPrefix(rest, utf8BOM):
		d.pos = len(utf8BOM)
		ev = Event{Kind: KindOther}
	case rest[0] != '<':
		ev, err = d.scanCharData()
	case bytes.HasPrefix(rest, litEndTag):
		ev, err = d.scanEndTag()
	case bytes.HasPrefix(rest, litPIOpen):
		ev, err = d.scanDelimited(litPIOpen, litPIClose)
	case bytes.HasPrefix(rest, litCommOpen):
		ev, err = d.scanDelimited(litCommOpen, litCommClose)
	case bytes.HasPrefix(rest, litCDATAOpen):
		ev, err = d.scanDelimited(litCDATAOpen, litCDATAClose)
	case bytes.HasPrefix(rest, litBang):
		ev, err = d.scanDirective()
	default:
		ev, err = d.scanStartTag()
	}
	if err != nil {
		return Event{}, err
	}
	if d.opts.maxTokenSize > 0 && d.pos-start > d.opts.maxTokenSize {
		return Event{}, errorAt(start, errTokenTooLarge)
	}

	ev.Raw = d.data[start:d.pos:d.pos]
	ev.Offset = int64(start)
	ev.Line, ev.Column = d.locate(start)
	return ev, nil
}

func (d *Decoder) scanCharData() (Event, error) {
	start := d.pos
	end := bytes.IndexByte(d.data[start:], '<')
	if end < 0 {
		end = len(d.data)
	} else {
		end += start
	}
	text := d.data[start:end:end]
	if idx, err := validateXMLText(text); err != nil {
		return Event{}, errorAt(start+idx, err)
	}
	d.pos = end
	kind := KindCharData
	if isWhitespaceBytes(text) {
		kind = KindOther
	}
	return Event{Kind: kind, Text: text}, nil
}

func (d *Decoder) scanStartTag() (Event, error) {
	start := d.pos
	d.pos++

	name, err := d.scanName()
	if err != nil {
		return Event{}, err
	}

	var attrs []Attr
	space := d.skipWhitespace()
	for {
		if d.pos >= len(d.data) {
			return Event{}, errorAt(d.pos, errUnexpectedEOF)
		}
		b := d.data[d.pos]
		if b == '/' || b == '>' {
			break
		}
		if !space {
			return Event{}, errorAt(d.pos, errInvalidAttr)
		}
		attr, err := d.scanAttr()
		if err != nil {
			return Event{}, err
		}
		attrs = append(attrs, attr)
		if d.opts.maxAttrs > 0 && len(attrs) > d.opts.maxAttrs {
			return Event{}, errorAt(start, errAttrLimit)
		}
		space = d.skipWhitespace()
	}

	if d.opts.maxDepth > 0 && len(d.stack)+1 > d.opts.maxDepth {
		return Event{}, errorAt(start, errDepthLimit)
	}

	if d.data[d.pos] == '/' {
		d.pos++
		if err := d.expectByte('>'); err != nil {
			return Event{}, err
		}
		return Event{Kind: KindEmptyElement, Name: name, Attrs: attrs}, nil
	}
	d.pos++
	d.stack = append(d.stack, name)
	return Event{Kind: KindStartElement, Name: name, Attrs: attrs}, nil
}

func (d *Decoder) scanAttr() (Attr, error) {
	name, err := d.scanName()
	if err != nil {
		return Attr{}, err
	}
	d.skipWhitespace()
	if err := d.expectByte('='); err != nil {
		return Attr{}, err
	}
	d.skipWhitespace()
	if d.pos >= len(d.data) {
		return Attr{}, errorAt(d.pos, errUnexpectedEOF)
	}
	quote := d.data[d.pos]
	if quote != '"' && quote != '\'' {
		return Attr{}, errorAt(d.pos, errInvalidAttr)
	}
	d.pos++

	start := d.pos
	end := bytes.IndexByte(d.data[start:], quote)
	if end < 0 {
		return Attr{}, errorAt(len(d.data), errUnexpectedEOF)
	}
	end += start
	raw := d.data[start:end:end]
	if lt := bytes.IndexByte(raw, '<'); lt >= 0 {
		return Attr{}, errorAt(start+lt, errInvalidAttr)
	}
	if idx, err := validateXMLText(raw); err != nil {
		return Attr{}, errorAt(start+idx, err)
	}
	value, err := UnescapeAttr(raw)
	if err != nil {
		return Attr{}, errorAt(start, err)
	}
	d.pos = end + 1
	return Attr{Name: name, Value: value, Raw: raw, Quote: quote}, nil
}

func (d *Decoder) scanEndTag() (Event, error) {
	start := d.pos
	d.pos += len(litEndTag)
	name, err := d.scanName()
	if err != nil {
		return Event{}, err
	}
	d.skipWhitespace()
	if err := d.expectByte('>'); err != nil {
		return Event{}, err
	}
	if len(d.stack) == 0 {
		return Event{}, errorAt(start, fmt.Errorf("%w: </%s> has no open element", errMismatchedEndTag, name))
	}
	open := d.stack[len(d.stack)-1]
	if open != name {
		return Event{}, errorAt(start, fmt.Errorf("%w: </%s> closes <%s>", errMismatchedEndTag, name, open))
	}
	d.stack = d.stack[:len(d.stack)-1]
	return Event{Kind: KindEndElement, Name: name}, nil
}

func (d *Decoder) scanDelimited(open, closing []byte) (Event, error) {
	bodyStart := d.pos + len(open)
	end := bytes.Index(d.data[bodyStart:], closing)
	if end < 0 {
		return Event{}, errorAt(len(d.data), errUnexpectedEOF)
	}
	body := d.data[bodyStart : bodyStart+end]
	if idx, err := validateXMLChars(body); err != nil {
		return Event{}, errorAt(bodyStart+idx, err)
	}
	d.pos = bodyStart + end + len(closing)
	return Event{Kind: KindOther}, nil
}

// scanDirective skips a <!...> declaration, including a bracketed internal
// subset, without interpreting it.
func (d *Decoder) scanDirective() (Event, error) {
	depth := 0
	var quote byte
	for i := d.pos + len(litBang); i < len(d.data); i++ {
		c := d.data[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case c == '>' && depth == 0:
			d.pos = i + 1
			return Event{Kind: KindOther}, nil
		}
	}
	return Event{}, errorAt(len(d.data), errUnexpectedEOF)
}

func (d *Decoder) scanName() (string, error) {
	start := d.pos
	for d.pos < len(d.data) {
		first := d.pos == start
		b := d.data[d.pos]
		if b < utf8.RuneSelf {
			if (first && !isNameStartByte(b)) || (!first && !isNameByte(b)) {
				break
			}
			d.pos++
			continue
		}
		r, size := utf8.DecodeRune(d.data[d.pos:])
		if r == utf8.RuneError && size == 1 {
			return "", errorAt(d.pos, errInvalidChar)
		}
		if (first && !isNameStartRune(r)) || (!first && !isNameRune(r)) {
			break
		}
		d.pos += size
	}
	if d.pos == start {
		if start >= len(d.data) {
			return "", errorAt(start, errUnexpectedEOF)
		}
		return "", errorAt(start, errInvalidName)
	}
	return string(d.data[start:d.pos]), nil
}

func (d *Decoder) skipWhitespace() bool {
	start := d.pos
	for d.pos < len(d.data) && isWhitespace(d.data[d.pos]) {
		d.pos++
	}
	return d.pos > start
}

func (d *Decoder) expectByte(value byte) error {
	if d.pos >= len(d.data) {
		return errorAt(d.pos, errUnexpectedEOF)
	}
	if d.data[d.pos] != value {
		return errorAt(d.pos, errInvalidToken)
	}
	d.pos++
	return nil
}
