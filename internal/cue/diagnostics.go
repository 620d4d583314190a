package cue

import (
	"encoding/json"
	"fmt"

	"github.com/dotcommander/compfinder/internal/dataset"
)

// CheckMetadata reports content the loader tolerates but silently repairs:
// comps that are not objects, team and bronze_traits values that are not
// string lists, non-numeric counts, a team_size that disagrees with the team
// and empty teams. Documents that do not decode produce no warnings; the
// schema check covers them.
func CheckMetadata(path string, content []byte) []ValidationError {
	var doc struct {
		Levels map[string][]any `json:"levels"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil
	}
	var top map[string]any
	_ = json.Unmarshal(content, &top)

	var warnings []ValidationError
	warn := func(format string, args ...any) {
		warnings = append(warnings, ValidationError{
			File:     path,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityWarning,
			Source:   SourceMetadata,
		})
	}

	if v, ok := top["generated_at_utc"]; ok && v != nil {
		if _, isString := v.(string); !isString {
			warn("generated_at_utc: %v is not a string, ignored", v)
		}
	}
	if v, ok := top["top_n"]; ok && v != nil && dataset.ToNonNegativeInt(v, -1) < 0 {
		warn("top_n: %v is not a non-negative number, treated as 0", v)
	}

	keys := make([]string, 0, len(doc.Levels))
	for k := range doc.Levels {
		keys = append(keys, k)
	}
	dataset.SortLevelKeys(keys)

	for _, level := range keys {
		for i, item := range doc.Levels[level] {
			where := fmt.Sprintf("levels.%s[%d]", level, i)
			comp, ok := item.(map[string]any)
			if !ok {
				warn("%s: %v is not an object, treated as an empty comp", where, item)
				continue
			}

			team, kept := checkStringList(comp, "team", where, warn)
			if team && kept == 0 {
				warn("%s: comp has no units", where)
			}
			checkStringList(comp, "bronze_traits", where, warn)

			if v, ok := comp["bronze_count"]; ok && v != nil {
				if n := dataset.ToNonNegativeInt(v, -1); n < 0 {
					warn("%s.bronze_count: %v is not a non-negative number, treated as 0", where, v)
				}
			}

			if v, ok := comp["team_size"]; ok {
				n := dataset.ToNonNegativeInt(v, -1)
				switch {
				case n < 0:
					warn("%s.team_size: %v is not a non-negative number, ignored", where, v)
				case n != kept:
					warn("%s.team_size: %d differs from %d units in team", where, n, kept)
				}
			}

			if v, ok := comp["max_cost_allowed"]; ok && dataset.ToNonNegativeInt(v, -1) < 0 {
				warn("%s.max_cost_allowed: %v is not a non-negative number, ignored", where, v)
			}
		}
	}

	return warnings
}

// checkStringList warns about a missing or malformed list field. It reports
// whether the field is a list and how many string entries the loader keeps.
func checkStringList(comp map[string]any, field, where string, warn func(string, ...any)) (bool, int) {
	v, present := comp[field]
	if !present {
		if field == "team" {
			warn("%s: team is missing, treated as empty", where)
		}
		return false, 0
	}
	items, ok := v.([]any)
	if !ok {
		warn("%s.%s: %v is not a list, treated as empty", where, field, v)
		return false, 0
	}
	kept := 0
	for j, item := range items {
		if _, isString := item.(string); isString {
			kept++
			continue
		}
		warn("%s.%s[%d]: %v is not a string, dropped", where, field, j, item)
	}
	return true, kept
}
