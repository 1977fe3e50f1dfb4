package export

import (
	"context"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/cell"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

const (
	minExcelColWidth = 10
	maxExcelColWidth = 50
	maxSheetNameLen  = 31
)

// ExcelExporter writes a single-sheet xlsx workbook.
type ExcelExporter struct{}

func (ExcelExporter) Format() models.Format { return models.FormatExcel }
func (ExcelExporter) FileExtension() string { return ".xlsx" }
func (ExcelExporter) MimeType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export writes a bold, frozen header row followed by one row per table row
// and sets the print area to the written table.
// Cells of number columns are stored as numbers when they parse as such.
func (e ExcelExporter) Export(ctx context.Context, t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(t.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := setPrintSetup(f, sheet, len(t.Headers), len(t.Rows)); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E7E6E6"}},
	})
	if err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, err
	}

	for i, w := range columnWidths(t) {
		if err := sw.SetColWidth(i+1, i+1, w); err != nil {
			return nil, err
		}
	}
	if len(t.Rows) > 0 {
		if err := sw.SetPanes(&excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, err
		}
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for rowIdx, row := range t.Rows {
		if rowIdx%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		values := make([]interface{}, len(row))
		for colIdx, v := range row {
			values[colIdx] = excelValue(t.Columns[colIdx].Type, v)
		}
		cellName, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cellName, values); err != nil {
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func excelValue(t models.ColumnType, v string) interface{} {
	if t != models.ColumnNumber || v == "" {
		return v
	}
	n := cell.ParseNumber(v)
	// Infinity and NaN have no xlsx number form and stay text.
	if f, ok := n.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return v
	}
	return n
}

// columnWidths fits each column to its widest cell within the Excel limits.
func columnWidths(t *Table) []float64 {
	widths := make([]float64, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = float64(runewidth.StringWidth(h))
	}
	for _, row := range t.Rows {
		for i, v := range row {
			if w := float64(runewidth.StringWidth(v)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i, w := range widths {
		widths[i] = min(max(w+2, minExcelColWidth), maxExcelColWidth)
	}
	return widths
}

// sheetName derives a worksheet name from title, dropping the characters
// Excel forbids and truncating to 31 characters.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, title)
	name = strings.Trim(strings.TrimSpace(name), "'")
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = strings.TrimSpace(string(runes[:maxSheetNameLen]))
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}
