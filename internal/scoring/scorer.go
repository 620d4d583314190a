package scoring

import "github.com/dotcommander/compfinder/internal/dataset"

// Score computes the overlap of comp's team with owned. Team order is kept in
// Owned and Missing. An empty team scores zero with a zero ratio.
func Score(comp *dataset.Comp, owned *OwnedSet) ScoreRecord {
	var team []string
	if comp != nil {
		team = comp.Team
	}

	rec := ScoreRecord{
		Comp:    comp,
		Team:    make([]string, 0, len(team)),
		Owned:   []string{},
		Missing: []string{},
	}

	for _, unit := range team {
		rec.Team = append(rec.Team, unit)
		if owned.Has(unit) {
			rec.Owned = append(rec.Owned, unit)
		} else {
			rec.Missing = append(rec.Missing, unit)
		}
	}

	rec.OwnedCount = len(rec.Owned)
	rec.MissingCount = len(rec.Missing)
	rec.TeamSize = len(team)
	if rec.TeamSize > 0 {
		rec.Ratio = float64(rec.OwnedCount) / float64(rec.TeamSize)
	}
	if comp != nil {
		rec.BronzeCount = comp.ResolvedBronzeCount()
	}

	return rec
}

// ScoreAll scores every comp of a level, tagging records with the level and
// each comp's position.
func ScoreAll(level string, comps []dataset.Comp, owned *OwnedSet) []ScoreRecord {
	records := make([]ScoreRecord, 0, len(comps))
	for i := range comps {
		rec := Score(&comps[i], owned)
		rec.Level = level
		rec.Index = i
		records = append(records, rec)
	}
	return records
}
