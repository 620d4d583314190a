package scoring

import (
	"cmp"
	"slices"
	"strings"
)

// ParseSortMode normalises s and reports whether it names a known mode.
// Unknown values map to DefaultSortMode.
func ParseSortMode(s string) (SortMode, bool) {
	mode := SortMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case SortClosest, SortBronze, SortMissing:
		return mode, true
	case "":
		return DefaultSortMode, true
	default:
		return DefaultSortMode, false
	}
}

// Rank returns a stably sorted copy of records. Each mode compares three keys
// in turn; missingCount ascends, the other keys descend:
//
//	closest: ownedCount, missingCount, bronzeCount
//	bronze:  bronzeCount, ownedCount, missingCount
//	missing: missingCount, ownedCount, bronzeCount
//
// Unknown modes rank like closest.
func Rank(records []ScoreRecord, mode SortMode) []ScoreRecord {
	out := slices.Clone(records)
	if out == nil {
		out = []ScoreRecord{}
	}
	slices.SortStableFunc(out, Comparator(mode))
	return out
}

// Comparator returns the three-key comparison used by Rank for mode.
func Comparator(mode SortMode) func(a, b ScoreRecord) int {
	switch mode {
	case SortBronze:
		return func(a, b ScoreRecord) int {
			return cmp.Or(
				cmp.Compare(b.BronzeCount, a.BronzeCount),
				cmp.Compare(b.OwnedCount, a.OwnedCount),
				cmp.Compare(a.MissingCount, b.MissingCount),
			)
		}
	case SortMissing:
		return func(a, b ScoreRecord) int {
			return cmp.Or(
				cmp.Compare(a.MissingCount, b.MissingCount),
				cmp.Compare(b.OwnedCount, a.OwnedCount),
				cmp.Compare(b.BronzeCount, a.BronzeCount),
			)
		}
	default:
		return func(a, b ScoreRecord) int {
			return cmp.Or(
				cmp.Compare(b.OwnedCount, a.OwnedCount),
				cmp.Compare(a.MissingCount, b.MissingCount),
				cmp.Compare(b.BronzeCount, a.BronzeCount),
			)
		}
	}
}
