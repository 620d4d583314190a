package dataset

import (
	"encoding/json"
	"slices"
)

// Dataset is a parsed comp document: comps grouped by level key.
// It is not modified after load.
type Dataset struct {
	Levels      map[string][]Comp
	GeneratedAt string // generated_at_utc, informational
	TopN        int    // top_n, informational

	units []string
}

// New builds a Dataset from comps keyed by level and computes its unit catalog.
func New(levels map[string][]Comp) *Dataset {
	if levels == nil {
		levels = make(map[string][]Comp)
	}
	ds := &Dataset{Levels: levels}
	ds.units = AllUnits(ds)
	return ds
}

// Units returns the unit catalog computed at load.
func (ds *Dataset) Units() []string {
	if ds == nil {
		return []string{}
	}
	return slices.Clone(ds.units)
}

// Comp is one candidate team composition.
type Comp struct {
	Team           []string       `json:"team"`
	BronzeTraits   []string       `json:"bronze_traits,omitempty"`
	BronzeCount    *int           `json:"bronze_count,omitempty"`     // nil when absent or null
	TeamSize       *int           `json:"team_size,omitempty"`        // informational only
	MaxCostAllowed *float64       `json:"max_cost_allowed,omitempty"` // informational only
	TraitCounts    map[string]int `json:"trait_counts,omitempty"`
}

// ResolvedBronzeCount returns the explicit bronze count when present,
// otherwise the number of bronze traits.
func (c Comp) ResolvedBronzeCount() int {
	if c.BronzeCount != nil {
		return *c.BronzeCount
	}
	return len(c.BronzeTraits)
}

// UnmarshalJSON decodes a comp without ever failing. Fields of the wrong
// type fall back to their empty value; a non-object decodes to an empty comp.
func (c *Comp) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
	}

	*c = Comp{
		Team:         stringList(raw["team"]),
		BronzeTraits: stringList(raw["bronze_traits"]),
	}

	if v, ok := raw["bronze_count"]; ok && v != nil {
		n := ToNonNegativeInt(v, 0)
		c.BronzeCount = &n
	}
	c.TeamSize = optionalInt(raw["team_size"])
	c.MaxCostAllowed = optionalFloat(raw["max_cost_allowed"])
	c.TraitCounts = intMap(raw["trait_counts"])

	return nil
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func optionalInt(v any) *int {
	if _, ok := toFloat(v); !ok {
		return nil
	}
	n := ToNonNegativeInt(v, 0)
	return &n
}

func optionalFloat(v any) *float64 {
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func intMap(v any) map[string]int {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, val := range m {
		out[k] = ToNonNegativeInt(val, 0)
	}
	return out
}
