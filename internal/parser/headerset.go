package parser

// HeaderSet is an ordered set of section headers learned from a document's
// contents block. It accepts additions until frozen.
type HeaderSet struct {
	order  []string
	index  map[string]struct{}
	frozen bool
}

// NewHeaderSet returns an empty, unfrozen set.
func NewHeaderSet() *HeaderSet {
	return &HeaderSet{index: make(map[string]struct{})}
}

// Add appends header unless it is already present or the set is frozen.
// It reports whether the header was added.
func (s *HeaderSet) Add(header string) bool {
	if s.frozen {
		return false
	}
	if _, ok := s.index[header]; ok {
		return false
	}
	s.index[header] = struct{}{}
	s.order = append(s.order, header)
	return true
}

// Freeze closes the set to further additions.
func (s *HeaderSet) Freeze() {
	s.frozen = true
}

// Frozen reports whether Freeze has been called.
func (s *HeaderSet) Frozen() bool {
	return s.frozen
}

// Contains reports whether header is in the set.
func (s *HeaderSet) Contains(header string) bool {
	_, ok := s.index[header]
	return ok
}

// First returns the first learned header.
func (s *HeaderSet) First() (string, bool) {
	if len(s.order) == 0 {
		return "", false
	}
	return s.order[0], true
}

// Len returns the number of headers.
func (s *HeaderSet) Len() int {
	return len(s.order)
}

// Headers returns a copy of the headers in insertion order.
func (s *HeaderSet) Headers() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
