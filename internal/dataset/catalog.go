package dataset

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllUnits returns every unit named in any team across all levels, once each,
// in collation order.
func AllUnits(ds *Dataset) []string {
	if ds == nil {
		return []string{}
	}
	seen := make(map[string]struct{})
	units := []string{}
	for _, comps := range ds.Levels {
		for _, comp := range comps {
			for _, unit := range comp.Team {
				if _, ok := seen[unit]; ok {
					continue
				}
				seen[unit] = struct{}{}
				units = append(units, unit)
			}
		}
	}
	SortUnits(units)
	return units
}

// SortUnits sorts unit names in place with an English collator. Names the
// collator considers equal are ordered bytewise.
func SortUnits(units []string) {
	c := collate.New(language.English)
	slices.SortFunc(units, func(a, b string) int {
		return cmp.Or(c.CompareString(a, b), strings.Compare(a, b))
	})
}

// SearchUnits keeps the units whose name contains query, ignoring case and
// surrounding whitespace. An empty query keeps everything.
func SearchUnits(units []string, query string) []string {
	q := normalize(query)
	out := make([]string, 0, len(units))
	for _, u := range units {
		if strings.Contains(normalize(u), q) {
			out = append(out, u)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
