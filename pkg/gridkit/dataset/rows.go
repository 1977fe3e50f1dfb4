package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// LoadRows reads a JSON array of row objects.
func LoadRows(path string, cols []models.ColumnSpec) ([]models.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return ParseRows(data, cols)
}

// ParseRows decodes a JSON array of row objects. Numbers are kept verbatim as
// json.Number and string cells of date columns become time.Time when they
// parse as RFC 3339 or YYYY-MM-DD.
func ParseRows(data []byte, cols []models.ColumnSpec) ([]models.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rows []models.Row
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("parse rows: %w", err)
	}

	var dateKeys []string
	for _, c := range cols {
		if c.Type == models.ColumnDate {
			dateKeys = append(dateKeys, c.Key)
		}
	}
	for _, r := range rows {
		for _, k := range dateKeys {
			if s, ok := r[k].(string); ok {
				if t, ok := parseDate(s); ok {
					r[k] = t
				}
			}
		}
	}
	return rows, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
