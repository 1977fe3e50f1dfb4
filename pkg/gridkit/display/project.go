package display

import (
	"strings"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/cell"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// Project returns the columns cfg shows, left-pinned first and right-pinned
// last. Order within each group follows cols.
func Project(cfg models.DisplayConfig, cols []models.ColumnSpec) []models.ColumnSpec {
	var left, middle, right []models.ColumnSpec
	for _, c := range cols {
		if !cfg.IsVisible(c.Key) {
			continue
		}
		switch cfg.Pin(c.Key) {
		case models.PinLeft:
			left = append(left, c)
		case models.PinRight:
			right = append(right, c)
		default:
			middle = append(middle, c)
		}
	}
	out := make([]models.ColumnSpec, 0, len(left)+len(middle)+len(right))
	out = append(out, left...)
	out = append(out, middle...)
	return append(out, right...)
}

// FilterRows returns the rows with at least one cell in cols whose normalized
// text contains search, ignoring case. An empty search returns rows unchanged.
// The returned slice shares row values with rows.
func FilterRows(rows []models.Row, cols []models.ColumnSpec, search string, n *cell.Normalizer) []models.Row {
	if strings.TrimSpace(search) == "" {
		return rows
	}
	var out []models.Row
	for _, r := range rows {
		if MatchRow(r, cols, search, n) {
			out = append(out, r)
		}
	}
	return out
}

// MatchRow reports whether r passes the search gate over cols.
func MatchRow(r models.Row, cols []models.ColumnSpec, search string, n *cell.Normalizer) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	if n == nil {
		n = cell.Default()
	}
	for _, c := range cols {
		if strings.Contains(strings.ToLower(n.Normalize(r[c.Key], c.Type)), needle) {
			return true
		}
	}
	return false
}
