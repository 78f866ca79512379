package rewrite

import (
	"strings"

	"github.com/jacoelho/cslmd/pkg/xmltext"
)

// accumulator collects prefix and suffix pieces of a text element in
// attribute order.
type accumulator struct {
	prefix []string
	suffix []string
}

func (a *accumulator) addPrefix(value string) {
	a.prefix = append(a.prefix, value)
}

func (a *accumulator) addSuffix(value string) {
	a.suffix = append(a.suffix, value)
}

// wrap puts marker in front of every prefix piece collected so far and after
// every suffix piece collected so far.
func (a *accumulator) wrap(marker string) {
	a.prefix = append([]string{marker}, a.prefix...)
	a.suffix = append(a.suffix, marker)
}

// attrs returns the synthesized prefix and suffix attributes. Nothing is
// emitted unless both sides collected at least one piece.
func (a *accumulator) attrs() []xmltext.Attr {
	if len(a.prefix) == 0 || len(a.suffix) == 0 {
		return nil
	}
	return []xmltext.Attr{
		xmltext.NewAttr("prefix", strings.Join(a.prefix, "")),
		xmltext.NewAttr("suffix", strings.Join(a.suffix, "")),
	}
}

// appendSuffix appends sep to every suffix attribute, or adds one at the end
// when the element has none.
func appendSuffix(attrs []xmltext.Attr, sep string) []xmltext.Attr {
	out := make([]xmltext.Attr, 0, len(attrs)+1)
	found := false
	for _, attr := range attrs {
		if attr.Name == "suffix" {
			out = append(out, xmltext.NewAttr(attr.Name, attr.Value+sep))
			found = true
			continue
		}
		out = append(out, attr)
	}
	if !found {
		out = append(out, xmltext.NewAttr("suffix", sep))
	}
	return out
}

func sameAttrs(a, b []xmltext.Attr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}
