package rewrite

import "github.com/jacoelho/cslmd/pkg/xmltext"

type handler func(p *pass, ev xmltext.Event) error

type rule struct {
	start handler
	end   handler
	empty handler
}

var rules = map[string]rule{
	"title":        {end: markBeforeEnd(func(m Markers) string { return m.Title })},
	"title-short":  {end: markBeforeEnd(func(m Markers) string { return m.Title })},
	"id":           {end: markBeforeEnd(func(m Markers) string { return m.ID })},
	"bibliography": {start: enterBibliography, end: leaveBibliography},
	"layout":       {start: layoutStart},
	"text":         {empty: textEmpty},
}

func lookup(ev xmltext.Event) handler {
	r, ok := rules[ev.Name]
	if !ok {
		return nil
	}
	switch ev.Kind {
	case xmltext.KindStartElement:
		return r.start
	case xmltext.KindEndElement:
		return r.end
	case xmltext.KindEmptyElement:
		return r.empty
	default:
		return nil
	}
}

// markBeforeEnd writes the selected marker as text right before the end tag.
func markBeforeEnd(marker func(Markers) string) handler {
	return func(p *pass, ev xmltext.Event) error {
		if err := p.out.WriteText(marker(p.markers)); err != nil {
			return err
		}
		return p.out.WriteEvent(ev)
	}
}

func enterBibliography(p *pass, ev xmltext.Event) error {
	p.scope.enterBibliography()
	return p.out.WriteEvent(ev)
}

func leaveBibliography(p *pass, ev xmltext.Event) error {
	p.scope.leaveBibliography()
	return p.out.WriteEvent(ev)
}

// layoutStart terminates bibliography entries with the entry separator.
// Layouts outside a bibliography (in-text citations) are left untouched.
func layoutStart(p *pass, ev xmltext.Event) error {
	if !p.scope.inBibliography {
		return p.out.WriteEvent(ev)
	}
	return p.out.WriteEvent(ev.WithAttrs(appendSuffix(ev.Attrs, p.markers.EntrySeparator)))
}

// textEmpty wraps formatted text nodes with markdown emphasis through their
// prefix and suffix attributes.
func textEmpty(p *pass, ev xmltext.Event) error {
	var acc accumulator
	kept := make([]xmltext.Attr, 0, len(ev.Attrs)+2)
	for _, attr := range ev.Attrs {
		switch attr.Name {
		case "prefix":
			acc.addPrefix(attr.Value)
		case "suffix":
			acc.addSuffix(attr.Value)
		case "font-style":
			switch attr.Value {
			case "italic":
				acc.wrap(p.markers.Italic)
			case "bold":
				acc.wrap(p.markers.Bold)
			}
			kept = append(kept, attr)
		default:
			kept = append(kept, attr)
		}
	}
	kept = append(kept, acc.attrs()...)

	if sameAttrs(kept, ev.Attrs) {
		return p.out.WriteEvent(ev)
	}
	return p.out.WriteEvent(ev.WithAttrs(kept))
}
