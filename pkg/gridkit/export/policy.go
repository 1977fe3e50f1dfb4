package export

import (
	"fmt"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/cell"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// Policy captures how a format filters columns and renders empty cells.
type Policy struct {
	// ExcludeTypes lists column types that never reach the output.
	ExcludeTypes []models.ColumnType
	// EmptyPlaceholder replaces cells that normalize to "".
	EmptyPlaceholder string
	// FieldJoiner separates fields in text formats; empty for cell-based formats.
	FieldJoiner string
}

// Policies is the per-format policy table.
var Policies = map[models.Format]Policy{
	models.FormatClipboard: {ExcludeTypes: []models.ColumnType{models.ColumnImage}, FieldJoiner: "\t"},
	models.FormatCSV:       {ExcludeTypes: []models.ColumnType{models.ColumnImage}, FieldJoiner: ","},
	models.FormatExcel:     {ExcludeTypes: []models.ColumnType{models.ColumnImage}},
	models.FormatPDF:       {ExcludeTypes: []models.ColumnType{models.ColumnImage}, EmptyPlaceholder: "-"},
	models.FormatPrint:     {ExcludeTypes: []models.ColumnType{models.ColumnImage}, EmptyPlaceholder: "-"},
}

// Columns returns the columns of cols that the policy keeps.
func (p Policy) Columns(cols []models.ColumnSpec) []models.ColumnSpec {
	out := make([]models.ColumnSpec, 0, len(cols))
	for _, c := range cols {
		if !p.excludes(c.Type) {
			out = append(out, c)
		}
	}
	return out
}

// Row renders one row over the kept columns.
func (p Policy) Row(r models.Row, cols []models.ColumnSpec, n *cell.Normalizer) ([]string, error) {
	out := make([]string, len(cols))
	for i, c := range cols {
		s, err := n.Render(r[c.Key], c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Key, err)
		}
		if s == "" {
			s = p.EmptyPlaceholder
		}
		out[i] = s
	}
	return out, nil
}

func (p Policy) excludes(t models.ColumnType) bool {
	for _, x := range p.ExcludeTypes {
		if x == t {
			return true
		}
	}
	return false
}
