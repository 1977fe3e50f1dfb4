// Package dataset loads grid columns and rows from files.
package dataset

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// ErrInvalidColumns indicates a column list that cannot describe a dataset.
var ErrInvalidColumns = errors.New("invalid columns")

// LoadColumns reads a YAML or JSON list of column specs.
func LoadColumns(path string) ([]models.ColumnSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	return ParseColumns(data)
}

// ParseColumns decodes and validates a YAML or JSON list of column specs.
// A missing label defaults to the key.
func ParseColumns(data []byte) ([]models.ColumnSpec, error) {
	var cols []models.ColumnSpec
	if err := yaml.Unmarshal(data, &cols); err != nil {
		return nil, fmt.Errorf("parse columns: %w", err)
	}
	for i := range cols {
		if cols[i].Label == "" {
			cols[i].Label = cols[i].Key
		}
	}
	if err := ValidateColumns(cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// ValidateColumns checks that keys are present and unique and that types and
// pin sides are known.
func ValidateColumns(cols []models.ColumnSpec) error {
	if len(cols) == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidColumns)
	}
	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		switch {
		case c.Key == "":
			return fmt.Errorf("%w: column %d has no key", ErrInvalidColumns, i+1)
		case seen[c.Key]:
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidColumns, c.Key)
		case !c.Type.Valid():
			return fmt.Errorf("%w: column %q has unknown type %q", ErrInvalidColumns, c.Key, c.Type)
		case !c.Pinned.Valid():
			return fmt.Errorf("%w: column %q has unknown pin side %q", ErrInvalidColumns, c.Key, c.Pinned)
		}
		seen[c.Key] = true
	}
	return nil
}

// Select returns the columns whose keys appear in keys, in the order of keys.
// Unknown keys are skipped.
func Select(cols []models.ColumnSpec, keys []string) []models.ColumnSpec {
	byKey := make(map[string]models.ColumnSpec, len(cols))
	for _, c := range cols {
		byKey[c.Key] = c
	}
	out := make([]models.ColumnSpec, 0, len(keys))
	for _, k := range keys {
		if c, ok := byKey[k]; ok {
			out = append(out, c)
		}
	}
	return out
}
