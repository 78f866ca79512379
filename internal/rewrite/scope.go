package rewrite

// scope is the ambient state consulted by the rules. Bibliography elements
// are not expected to nest; a second start keeps the flag set and the first
// end clears it.
type scope struct {
	inBibliography bool
}

func (s *scope) enterBibliography() {
	s.inBibliography = true
}

func (s *scope) leaveBibliography() {
	s.inBibliography = false
}
