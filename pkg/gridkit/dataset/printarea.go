package dataset

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// area is a 1-based inclusive cell range.
type area struct {
	r1, c1, r2, c2 int
}

// printArea returns the first print area defined for sheet.
func printArea(f *excelize.File, sheet string) (area, bool) {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		name, a, ok := parseAreaReference(dn.RefersTo)
		if ok && (name == sheet || (name == "" && dn.Scope == sheet)) {
			return a, true
		}
	}
	return area{}, false
}

// parseAreaReference parses 'Sheet'!$A$1:$D$10 or Sheet!A1:D10. Only the
// first range of a multi-range reference is used.
func parseAreaReference(ref string) (string, area, bool) {
	part, _, _ := strings.Cut(ref, ",")
	part = strings.TrimSpace(part)

	var sheet string
	if idx := strings.LastIndex(part, "!"); idx >= 0 {
		sheet = part[:idx]
		if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
		part = part[idx+1:]
	}

	start, end, ok := strings.Cut(strings.ReplaceAll(part, "$", ""), ":")
	if !ok {
		return "", area{}, false
	}
	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return "", area{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return "", area{}, false
	}
	return sheet, area{r1: min(r1, r2), c1: min(c1, c2), r2: max(r1, r2), c2: max(c1, c2)}, true
}

// clip returns the part of rows inside a. Cells outside a are blanked so the
// column positions of the remaining cells are kept.
func (a area) clip(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for i, row := range rows {
		if i+1 < a.r1 || i+1 > a.r2 {
			out = append(out, nil)
			continue
		}
		kept := make([]string, len(row))
		for j, v := range row {
			if j+1 >= a.c1 && j+1 <= a.c2 {
				kept[j] = v
			}
		}
		out = append(out, kept)
	}
	return out
}
