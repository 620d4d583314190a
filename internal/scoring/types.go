// Package scoring scores comps against an owned set and provides the
// filter and ranking policies applied to the scores.
package scoring

import "github.com/dotcommander/compfinder/internal/dataset"

// ScoreRecord is the score of one comp against an owned set. Records are
// derived per render and never cached across owned-set changes.
type ScoreRecord struct {
	Comp         *dataset.Comp `json:"-"`
	Level        string        `json:"level"`
	Index        int           `json:"index"` // position within the level
	Team         []string      `json:"team"`
	Owned        []string      `json:"owned"`
	Missing      []string      `json:"missing"`
	OwnedCount   int           `json:"owned_count"`
	MissingCount int           `json:"missing_count"`
	TeamSize     int           `json:"team_size"` // len(team), not the comp metadata
	Ratio        float64       `json:"ratio"`
	BronzeCount  int           `json:"bronze_count"`
}

// SortMode selects the comparator chain used by Rank.
type SortMode string

const (
	SortClosest SortMode = "closest"
	SortBronze  SortMode = "bronze"
	SortMissing SortMode = "missing"
)

// DefaultSortMode is used when no mode, or an unknown one, is given.
const DefaultSortMode = SortClosest

// SortModes lists the recognised modes in display order.
var SortModes = []SortMode{SortClosest, SortBronze, SortMissing}
