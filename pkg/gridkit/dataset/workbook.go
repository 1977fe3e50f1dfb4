package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/cell"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// LoadWorkbook reads a dataset from one sheet of an xlsx file. An empty sheet
// name selects the first sheet.
func LoadWorkbook(path, sheet string) (*models.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSheet(f, sheet)
}

// ReadSheet reads a dataset from a sheet, limited to the sheet's print area
// when it defines one. The first non-empty row inside the data bounds holds
// the labels; every following row with data becomes a Row. Column keys are
// derived from the labels and columns whose cells all parse as numbers are
// typed as number.
func ReadSheet(f *excelize.File, sheet string) (*models.Dataset, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if a, ok := printArea(f, sheet); ok {
		rows = a.clip(rows)
	}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrInvalidColumns, sheet)
	}

	header := rows[minRow]
	cols := make([]models.ColumnSpec, 0, maxCol-minCol+1)
	used := make(map[string]int)
	for colIdx := minCol; colIdx <= maxCol; colIdx++ {
		label := ""
		if colIdx < len(header) {
			label = strings.TrimSpace(header[colIdx])
		}
		if label == "" {
			label, _ = excelize.ColumnNumberToName(colIdx + 1)
		}
		cols = append(cols, models.ColumnSpec{
			Key:   uniqueKey(keyFromLabel(label), used),
			Label: label,
			Type:  models.ColumnNumber,
		})
	}

	filled := make([]bool, len(cols))
	var result []models.Row
	for rowIdx := minRow + 1; rowIdx <= maxRow; rowIdx++ {
		row := rows[rowIdx]
		r := make(models.Row, len(cols))
		hasData := false
		for i, c := range cols {
			colIdx := minCol + i
			if colIdx >= len(row) || row[colIdx] == "" {
				continue
			}
			hasData = true
			filled[i] = true
			v := cell.ParseNumber(row[colIdx])
			if _, ok := v.(string); ok {
				cols[i].Type = models.ColumnText
			}
			r[c.Key] = v
		}
		if hasData {
			result = append(result, r)
		}
	}

	for i, ok := range filled {
		if !ok {
			cols[i].Type = models.ColumnText
		}
	}

	return &models.Dataset{Columns: cols, Rows: result}, nil
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, v := range row {
			if v != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// keyFromLabel lower-cases label and joins its words with underscores.
func keyFromLabel(label string) string {
	var sb strings.Builder
	pending := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
			pending = false
			continue
		}
		pending = true
	}
	if sb.Len() == 0 {
		return "col"
	}
	return sb.String()
}

func uniqueKey(key string, used map[string]int) string {
	used[key]++
	if n := used[key]; n > 1 {
		return key + "_" + strconv.Itoa(n)
	}
	return key
}
