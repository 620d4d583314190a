package scoring

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/dotcommander/compfinder/internal/dataset"
)

func intPtr(n int) *int { return &n }

func TestScore_Scenario(t *testing.T) {
	owned := NewOwnedSet("A", "B")

	tests := []struct {
		name        string
		comp        dataset.Comp
		wantOwned   int
		wantMissing []string
		wantRatio   float64
		wantBronze  int
	}{
		{
			name:        "level 2 comp",
			comp:        dataset.Comp{Team: []string{"A", "B", "C"}, BronzeCount: intPtr(1)},
			wantOwned:   2,
			wantMissing: []string{"C"},
			wantRatio:   2.0 / 3.0,
			wantBronze:  1,
		},
		{
			name:        "level 3 comp",
			comp:        dataset.Comp{Team: []string{"A", "D"}},
			wantOwned:   1,
			wantMissing: []string{"D"},
			wantRatio:   0.5,
			wantBronze:  0,
		},
		{
			name:        "bronze from traits",
			comp:        dataset.Comp{Team: []string{"D", "A", "E"}, BronzeTraits: []string{"Void", "Zaun"}},
			wantOwned:   1,
			wantMissing: []string{"D", "E"},
			wantRatio:   1.0 / 3.0,
			wantBronze:  2,
		},
		{
			name:        "case sensitive",
			comp:        dataset.Comp{Team: []string{"a", "b"}},
			wantOwned:   0,
			wantMissing: []string{"a", "b"},
			wantRatio:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Score(&tt.comp, owned)
			if rec.OwnedCount != tt.wantOwned {
				t.Errorf("OwnedCount = %d, want %d", rec.OwnedCount, tt.wantOwned)
			}
			if !reflect.DeepEqual(rec.Missing, tt.wantMissing) {
				t.Errorf("Missing = %v, want %v", rec.Missing, tt.wantMissing)
			}
			if rec.MissingCount != len(tt.wantMissing) {
				t.Errorf("MissingCount = %d, want %d", rec.MissingCount, len(tt.wantMissing))
			}
			if rec.Ratio != tt.wantRatio {
				t.Errorf("Ratio = %v, want %v", rec.Ratio, tt.wantRatio)
			}
			if rec.BronzeCount != tt.wantBronze {
				t.Errorf("BronzeCount = %d, want %d", rec.BronzeCount, tt.wantBronze)
			}
			if rec.Comp != &tt.comp {
				t.Error("Comp should reference the source comp")
			}
		})
	}
}

func TestScore_EmptyTeam(t *testing.T) {
	for _, comp := range []*dataset.Comp{{}, {Team: []string{}}, nil} {
		rec := Score(comp, NewOwnedSet("A"))
		if rec.TeamSize != 0 || rec.Ratio != 0 || rec.OwnedCount != 0 {
			t.Errorf("Score(empty) = %+v, want zero scores", rec)
		}
		if rec.Missing == nil || len(rec.Missing) != 0 {
			t.Errorf("Missing = %v, want empty slice", rec.Missing)
		}
	}
}

func TestScore_NilOwnedSet(t *testing.T) {
	rec := Score(&dataset.Comp{Team: []string{"A"}}, nil)
	if rec.OwnedCount != 0 || rec.MissingCount != 1 {
		t.Errorf("Score with nil set = %+v", rec)
	}
}

func TestScore_Partition(t *testing.T) {
	owned := NewOwnedSet("A", "C", "E", "G")
	teams := [][]string{
		{},
		{"A"},
		{"B"},
		{"A", "B", "C", "D", "E"},
		{"G", "F", "E", "D"},
		{"A", "A", "B"},
	}

	for _, team := range teams {
		rec := Score(&dataset.Comp{Team: team}, owned)
		if rec.OwnedCount+rec.MissingCount != rec.TeamSize {
			t.Errorf("team %v: owned %d + missing %d != size %d", team, rec.OwnedCount, rec.MissingCount, rec.TeamSize)
		}

		// Owned and Missing interleave back to the original team.
		oi, mi := 0, 0
		for _, unit := range team {
			if owned.Has(unit) {
				if oi >= len(rec.Owned) || rec.Owned[oi] != unit {
					t.Fatalf("team %v: Owned = %v out of order", team, rec.Owned)
				}
				oi++
			} else {
				if mi >= len(rec.Missing) || rec.Missing[mi] != unit {
					t.Fatalf("team %v: Missing = %v out of order", team, rec.Missing)
				}
				mi++
			}
		}
		if oi != len(rec.Owned) || mi != len(rec.Missing) {
			t.Errorf("team %v: partition has extra entries", team)
		}
	}
}

func TestScore_MalformedBronzeCount(t *testing.T) {
	var comp dataset.Comp
	if err := json.Unmarshal([]byte(`{"team": ["X"], "bronze_count": "n/a"}`), &comp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	rec := Score(&comp, NewOwnedSet())
	if rec.BronzeCount != 0 {
		t.Errorf("BronzeCount = %d, want 0", rec.BronzeCount)
	}
}

func TestScoreAll(t *testing.T) {
	comps := []dataset.Comp{
		{Team: []string{"A"}},
		{Team: []string{"B", "C"}},
	}
	records := ScoreAll("4", comps, NewOwnedSet("C"))
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	for i, rec := range records {
		if rec.Level != "4" || rec.Index != i {
			t.Errorf("record %d: level %q index %d", i, rec.Level, rec.Index)
		}
		if rec.Comp != &comps[i] {
			t.Errorf("record %d does not reference comps[%d]", i, i)
		}
	}
	if records[1].OwnedCount != 1 {
		t.Errorf("records[1].OwnedCount = %d, want 1", records[1].OwnedCount)
	}
}

func TestOwnedSet(t *testing.T) {
	var s OwnedSet
	if s.Has("A") || s.Len() != 0 {
		t.Fatal("zero OwnedSet should be empty")
	}

	s.Add("Zed")
	s.Add("ahri")
	s.Add("Bard")
	s.Add("Bard")
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if got := s.Sorted(); !reflect.DeepEqual(got, []string{"ahri", "Bard", "Zed"}) {
		t.Errorf("Sorted() = %v", got)
	}

	s.Remove("Zed")
	s.Remove("missing")
	if s.Has("Zed") {
		t.Error("Zed should be removed")
	}

	if !s.Toggle("Zed") || !s.Has("Zed") {
		t.Error("Toggle should add Zed")
	}
	if s.Toggle("Zed") || s.Has("Zed") {
		t.Error("Toggle should remove Zed")
	}
}
