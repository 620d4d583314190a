package dataset

import (
	"cmp"
	"slices"
	"strconv"
)

// ListLevels returns the level keys in numeric order, so "10" follows "2".
func ListLevels(ds *Dataset) []string {
	if ds == nil {
		return []string{}
	}
	keys := make([]string, 0, len(ds.Levels))
	for k := range ds.Levels {
		keys = append(keys, k)
	}
	SortLevelKeys(keys)
	return keys
}

// SortLevelKeys sorts level keys in place in numeric order.
func SortLevelKeys(keys []string) {
	slices.SortFunc(keys, compareLevelKeys)
}

// SelectLevel returns the comps at level id, or an empty sequence when the
// level does not exist.
func SelectLevel(ds *Dataset, id string) []Comp {
	if ds == nil {
		return []Comp{}
	}
	comps, ok := ds.Levels[id]
	if !ok || comps == nil {
		return []Comp{}
	}
	return comps
}

// HasLevel reports whether id is a level of ds.
func HasLevel(ds *Dataset, id string) bool {
	if ds == nil {
		return false
	}
	_, ok := ds.Levels[id]
	return ok
}

// compareLevelKeys orders integer keys numerically, non-integer keys after
// them, and falls back to string order so the result is total.
func compareLevelKeys(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Or(cmp.Compare(na, nb), cmp.Compare(a, b))
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}
