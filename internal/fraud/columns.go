package fraud

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/claimledger-lab/claimledger/internal/extraction"
)

// DefaultColumns is the expected feature order when no columns file is set.
func DefaultColumns() []string {
	return slices.Clone(extraction.Fields)
}

// LoadColumns reads the expected feature order from path. The file is JSON
// or YAML holding either a list or an object with a "columns" list.
func LoadColumns(path string) ([]string, error) {
	if path == "" {
		return DefaultColumns(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns file: %w", err)
	}
	return ParseColumns(data)
}

// ParseColumns decodes a columns document.
func ParseColumns(data []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse columns: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("columns document is empty")
	}

	var cols []string
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&cols); err != nil {
			return nil, fmt.Errorf("failed to decode columns list: %w", err)
		}
	case yaml.MappingNode:
		var doc struct {
			Columns []string `yaml:"columns"`
		}
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode columns object: %w", err)
		}
		cols = doc.Columns
	default:
		return nil, fmt.Errorf("columns must be a list or an object with a columns list")
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("columns list is empty")
	}
	return cols, nil
}

// Features orders fields by cols. Absent fields are zero.
func Features(cols []string, fields map[string]int) []int {
	row := make([]int, len(cols))
	for i, c := range cols {
		row[i] = fields[c]
	}
	return row
}
