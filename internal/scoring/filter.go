package scoring

// Filter keeps the records owning at least minOwned units. minOwned is used
// as given; a negative value keeps everything.
func Filter(records []ScoreRecord, minOwned int) []ScoreRecord {
	out := make([]ScoreRecord, 0, len(records))
	for _, rec := range records {
		if rec.OwnedCount >= minOwned {
			out = append(out, rec)
		}
	}
	return out
}
