package xmltext

// Attr is a single attribute in source order.
//
// Raw holds the bytes between the quotes exactly as read. Attributes built
// with NewAttr have no Raw bytes and are escaped when written.
type Attr struct {
	Name  string
	Value string
	Raw   []byte
	Quote byte
}

// NewAttr returns an attribute whose value is escaped on output.
func NewAttr(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// Event is one lexical construct of the input.
//
// Raw is the exact source text of the event. Events built or modified by
// callers carry a nil Raw and are serialized from Name and Attrs.
type Event struct {
	Kind   Kind
	Name   string
	Attrs  []Attr
	Text   []byte
	Raw    []byte
	Offset int64
	Line   int
	Column int
}

// Attr returns the first attribute named name.
func (e Event) Attr(name string) (Attr, bool) {
	for _, attr := range e.Attrs {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attr{}, false
}

// WithAttrs returns a copy of the event carrying attrs. The copy has no raw
// bytes so the encoder rebuilds the tag.
func (e Event) WithAttrs(attrs []Attr) Event {
	e.Attrs = attrs
	e.Raw = nil
	return e
}

// EndOf returns the end event that closes a start event.
func EndOf(start Event) Event {
	return Event{Kind: KindEndElement, Name: start.Name}
}
