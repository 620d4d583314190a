package scoring

import "github.com/dotcommander/compfinder/internal/dataset"

// OwnedSet is the set of units the user currently has. The zero value is an
// empty set ready to use.
type OwnedSet struct {
	units map[string]struct{}
}

// NewOwnedSet creates a set holding units.
func NewOwnedSet(units ...string) *OwnedSet {
	s := &OwnedSet{}
	for _, u := range units {
		s.Add(u)
	}
	return s
}

// Add puts unit in the set.
func (s *OwnedSet) Add(unit string) {
	if s.units == nil {
		s.units = make(map[string]struct{})
	}
	s.units[unit] = struct{}{}
}

// Remove takes unit out of the set.
func (s *OwnedSet) Remove(unit string) {
	delete(s.units, unit)
}

// Toggle flips membership of unit and reports whether it is now owned.
func (s *OwnedSet) Toggle(unit string) bool {
	if s.Has(unit) {
		s.Remove(unit)
		return false
	}
	s.Add(unit)
	return true
}

// Has reports whether unit is owned. Comparison is exact and case-sensitive.
func (s *OwnedSet) Has(unit string) bool {
	if s == nil {
		return false
	}
	_, ok := s.units[unit]
	return ok
}

// Len returns the number of owned units.
func (s *OwnedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.units)
}

// Sorted returns the owned units in catalog order.
func (s *OwnedSet) Sorted() []string {
	out := make([]string, 0, s.Len())
	if s != nil {
		for u := range s.units {
			out = append(out, u)
		}
	}
	dataset.SortUnits(out)
	return out
}
