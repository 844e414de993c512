package skill

import (
	"sort"
	"strings"
)

// Set is a case-normalized, deduplicated collection of skill names.
// The zero value is an empty set. Sets are treated as immutable once built;
// mutating operations return a new Set.
type Set struct {
	names []string
}

func Normalize(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = strings.Join(strings.Fields(name), " ")
	return name
}

func NewSet(names ...string) Set {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = Normalize(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return Set{names: out}
}

func (s Set) Len() int {
	return len(s.names)
}

func (s Set) IsEmpty() bool {
	return len(s.names) == 0
}

func (s Set) Contains(name string) bool {
	name = Normalize(name)
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns the skills in deterministic (sorted) order.
func (s Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s Set) Union(other Set) Set {
	return NewSet(append(s.Names(), other.names...)...)
}

func (s Set) SharedCount(other Set) int {
	n := 0
	for _, name := range s.names {
		if other.Contains(name) {
			n++
		}
	}
	return n
}
