package namespace

import "sort"

// Set is a set of names
type Set map[string]struct{}

// Has reports whether name is in the set
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s Set) add(name string) {
	s[name] = struct{}{}
}

// Sorted returns the members in lexical order
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
