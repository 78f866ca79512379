package xmltext

// Kind identifies the syntactic kind of an XML event.
type Kind byte

const (
	KindNone Kind = iota
	KindStartElement
	KindEndElement
	KindEmptyElement
	KindCharData
	KindOther
)

// String returns a stable name for the kind, suitable for debugging.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindStartElement:
		return "StartElement"
	case KindEndElement:
		return "EndElement"
	case KindEmptyElement:
		return "EmptyElement"
	case KindCharData:
		return "CharData"
	case KindOther:
		return "Other"
	default:
		return "Unknown"
	}
}
