package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	printAreaName   = "_xlnm.Print_Area"
	printTitlesName = "_xlnm.Print_Titles"
)

// setPrintSetup limits printing to the table, in landscape, with the header
// row repeated on every page. It must run before the sheet is streamed.
func setPrintSetup(f *excelize.File, sheet string, cols, rows int) error {
	if cols == 0 {
		return nil
	}
	ref, err := areaReference(sheet, 1, 1, cols, rows+1)
	if err != nil {
		return err
	}
	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     printAreaName,
		RefersTo: ref,
		Scope:    sheet,
	}); err != nil {
		return err
	}
	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     printTitlesName,
		RefersTo: quoteSheet(sheet) + "!$1:$1",
		Scope:    sheet,
	}); err != nil {
		return err
	}

	orientation := "landscape"
	return f.SetPageLayout(sheet, &excelize.PageLayoutOptions{Orientation: &orientation})
}

// areaReference formats 'Sheet'!$A$1:$C$4 for the 1-based inclusive range.
func areaReference(sheet string, c1, r1, c2, r2 int) (string, error) {
	start, err := excelize.CoordinatesToCellName(c1, r1, true)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(c2, r2, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!%s:%s", quoteSheet(sheet), start, end), nil
}

func quoteSheet(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}
