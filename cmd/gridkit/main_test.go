package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/export"
)

const (
	testColumns = `
- key: id
  label: ID
  type: number
- key: name
  label: Name
- key: shipped
  label: Shipped
  type: checkbox
- key: photo
  label: Photo
  type: image
`
	testRows = `[
  {"id": 1, "name": "Widget, large", "shipped": true, "photo": "w.png"},
  {"id": 2, "name": "Gadget", "shipped": false},
  {"id": 3, "name": "Gizmo", "shipped": "1"}
]`
)

func writeInput(t *testing.T) (dir, rows, cols string) {
	t.Helper()
	dir = t.TempDir()
	rows = filepath.Join(dir, "rows.json")
	cols = filepath.Join(dir, "cols.yaml")
	require.NoError(t, os.WriteFile(rows, []byte(testRows), 0644))
	require.NoError(t, os.WriteFile(cols, []byte(testColumns), 0644))
	return dir, rows, cols
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportCSV(t *testing.T) {
	dir, rows, cols := writeInput(t)
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "export", rows, "--columns", cols, "--format", "csv",
		"--output-dir", outDir, "--filename", "stock.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 rows to stock.csv")

	data, err := os.ReadFile(filepath.Join(outDir, "stock.csv"))
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Shipped\n1,\"Widget, large\",Yes\n2,Gadget,No\n3,Gizmo,Yes", string(data))
}

func TestExportSearchAndVisible(t *testing.T) {
	dir, rows, cols := writeInput(t)

	_, err := execute(t, "export", rows, "--columns", cols, "--format", "csv",
		"--output-dir", dir, "--filename", "g.csv", "--search", "gi", "--visible", "name,id")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "g.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Name,ID\nGizmo,3", string(data))
}

func TestExportExcel(t *testing.T) {
	dir, rows, cols := writeInput(t)

	_, err := execute(t, "export", rows, "--columns", cols, "--format", "excel",
		"--output-dir", dir, "--title", "Stock Report")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "Stock_Report_*.xlsx"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	f, err := excelize.OpenFile(matches[0])
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name", "Shipped"}, got[0])
	assert.Len(t, got, 4)
}

func TestExportNothingToExport(t *testing.T) {
	dir, rows, cols := writeInput(t)

	out, err := execute(t, "export", rows, "--columns", cols, "--output-dir", dir, "--search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to export")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, rows, cols := writeInput(t)

	_, err := execute(t, "export", rows, "--columns", cols, "--format", "docx")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestExportRequiresColumnsForJSON(t *testing.T) {
	_, rows, _ := writeInput(t)

	_, err := execute(t, "export", rows)
	assert.ErrorContains(t, err, "--columns is required")
}

func TestExportMissingFile(t *testing.T) {
	_, err := execute(t, "export", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "file not found")
}

func TestPreviewTSV(t *testing.T) {
	_, rows, cols := writeInput(t)

	out, err := execute(t, "preview", rows, "--columns", cols, "--style", "tsv", "--limit", "2")
	require.NoError(t, err)
	assert.Equal(t, "ID\tName\tShipped\tPhoto\n1\tWidget, large\tYes\t\n2\tGadget\tNo\t\n", out)
}

func TestPreviewWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Qty"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Widget", 3}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := execute(t, "preview", path, "--style", "tsv")
	require.NoError(t, err)
	assert.Equal(t, "Name\tQty\nWidget\t3\n", out)
}

func TestConfigFileSetsLocale(t *testing.T) {
	dir := t.TempDir()
	rows := filepath.Join(dir, "rows.json")
	cols := filepath.Join(dir, "cols.yaml")
	cfg := filepath.Join(dir, "gridkit.yaml")
	require.NoError(t, os.WriteFile(rows, []byte(`[{"day": "2024-03-05"}]`), 0644))
	require.NoError(t, os.WriteFile(cols, []byte("- key: day\n  type: date\n"), 0644))
	require.NoError(t, os.WriteFile(cfg, []byte("locale: de-DE\n"), 0644))

	out, err := execute(t, "preview", rows, "--columns", cols, "--style", "tsv", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "day\n05.03.2024\n", out)

	out, err = execute(t, "preview", rows, "--columns", cols, "--style", "tsv", "--config", cfg, "--locale", "en-GB")
	require.NoError(t, err)
	assert.Equal(t, "day\n05/03/2024\n", out)
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
