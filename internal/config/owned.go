package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ownedDoc is the mapping form of an owned-units file.
type ownedDoc struct {
	Owned []string `yaml:"owned"`
}

// LoadOwnedFile reads the units a user owns from a YAML file. Both a plain
// sequence and a mapping with an "owned" sequence are accepted:
//
//	- Ahri
//	- Jinx
//
//	owned: [Ahri, Jinx]
func LoadOwnedFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read owned file: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse owned file %s: %w", path, err)
	}
	if len(node.Content) == 0 {
		return []string{}, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var units []string
		if err := root.Decode(&units); err != nil {
			return nil, fmt.Errorf("failed to parse owned file %s: %w", path, err)
		}
		return splitUnits(units), nil
	case yaml.MappingNode:
		var doc ownedDoc
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse owned file %s: %w", path, err)
		}
		return splitUnits(doc.Owned), nil
	default:
		return nil, fmt.Errorf("owned file %s must be a list of units or a mapping with an 'owned' list", path)
	}
}

// splitUnits trims entries, expands comma-separated values and drops blanks
// and duplicates while keeping first-seen order.
func splitUnits(values []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			unit := strings.TrimSpace(part)
			if unit == "" || seen[unit] {
				continue
			}
			seen[unit] = true
			out = append(out, unit)
		}
	}
	return out
}
