package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

var june1 = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func testEngine() *Engine {
	return NewEngine(Options{
		Now:         func() time.Time { return june1 },
		CompressPDF: false,
	})
}

func memberColumns() []models.ColumnSpec {
	return []models.ColumnSpec{
		{Key: "name", Label: "Name"},
		{Key: "age", Label: "Age", Type: models.ColumnNumber},
		{Key: "joined", Label: "Joined", Type: models.ColumnDate},
		{Key: "active", Label: "Active", Type: models.ColumnCheckbox},
		{Key: "avatar", Label: "Avatar", Type: models.ColumnImage},
	}
}

func memberRows() []models.Row {
	return []models.Row{
		{"name": "Alice", "age": 34, "joined": time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), "active": "true", "avatar": "a.png"},
		{"name": "Bob", "age": nil, "joined": nil, "active": 0, "avatar": "b.png"},
	}
}

func TestExportCSVQuotesOnlyWhenNeeded(t *testing.T) {
	rows := []models.Row{{"name": "A,B", "age": 5}}
	cols := []models.ColumnSpec{{Key: "name", Label: "Name"}, {Key: "age", Label: "Age"}}

	a, err := testEngine().Export(context.Background(), Request{Rows: rows, Columns: cols, Title: "Report", Format: models.FormatCSV})
	require.NoError(t, err)
	require.NotNil(t, a)

	assert.Equal(t, "Name,Age\n\"A,B\",5", a.Text())
	assert.Equal(t, "Report_2024-06-01.csv", a.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", a.ContentType)
	assert.Equal(t, 1, a.Rows)
}

func TestEscapeCSV(t *testing.T) {
	assert.Equal(t, "plain", escapeCSV("plain"))
	assert.Equal(t, `"say ""hi"""`, escapeCSV(`say "hi"`))
	assert.Equal(t, "\"two\nlines\"", escapeCSV("two\nlines"))
	assert.Equal(t, "", escapeCSV(""))
}

func TestExportClipboardIsTabSeparated(t *testing.T) {
	a, err := testEngine().Export(context.Background(), Request{
		Rows: memberRows(), Columns: memberColumns(), Title: "Members", Format: models.FormatClipboard,
	})
	require.NoError(t, err)

	want := "Name\tAge\tJoined\tActive\n" +
		"Alice\t34\t1/15/2023\tYes\n" +
		"Bob\t\t\tNo"
	assert.Equal(t, want, a.Text())
}

func TestExportEmptyDatasetIsNoop(t *testing.T) {
	for _, f := range models.Formats {
		a, err := testEngine().Export(context.Background(), Request{Columns: memberColumns(), Title: "Report", Format: f})
		assert.NoError(t, err, f)
		assert.Nil(t, a, f)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := testEngine().Export(context.Background(), Request{Rows: memberRows(), Columns: memberColumns(), Format: "docx"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExportNeverIncludesImageColumns(t *testing.T) {
	e := testEngine()
	for _, f := range models.Formats {
		t.Run(string(f), func(t *testing.T) {
			a, err := e.Export(context.Background(), Request{Rows: memberRows(), Columns: memberColumns(), Title: "Members", Format: f})
			require.NoError(t, err)

			if f == models.FormatExcel {
				header := readSheet(t, a.Data, "Members")[0]
				assert.NotContains(t, header, "Avatar")
				return
			}
			assert.NotContains(t, a.Text(), "Avatar")
			assert.NotContains(t, a.Text(), "a.png")
		})
	}
}

func TestExportExcel(t *testing.T) {
	a, err := testEngine().Export(context.Background(), Request{
		Rows: memberRows(), Columns: memberColumns(), Title: "Monthly Report", Format: models.FormatExcel,
	})
	require.NoError(t, err)
	assert.Equal(t, "Monthly_Report_2024-06-01.xlsx", a.Filename)

	rows := readSheet(t, a.Data, "Monthly Report")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Age", "Joined", "Active"}, rows[0])
	assert.Equal(t, []string{"Alice", "34", "1/15/2023", "Yes"}, rows[1])
	assert.Equal(t, "Bob", rows[2][0])
	assert.Equal(t, "No", rows[2][3])

	f, err := excelize.OpenReader(bytes.NewReader(a.Data))
	require.NoError(t, err)
	defer f.Close()
	typ, err := f.GetCellType("Monthly Report", "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
	assert.NotEqual(t, excelize.CellTypeInlineString, typ)
}

func TestExportExcelKeepsNonFiniteNumbersAsText(t *testing.T) {
	cols := []models.ColumnSpec{{Key: "v", Label: "Value", Type: models.ColumnNumber}}
	rows := []models.Row{{"v": math.Inf(1)}, {"v": math.NaN()}, {"v": 1.5}, {"v": "-Infinity"}}
	a, err := testEngine().Export(context.Background(), Request{
		Rows: rows, Columns: cols, Title: "Readings", Format: models.FormatExcel,
	})
	require.NoError(t, err)

	got := readSheet(t, a.Data, "Readings")
	assert.Equal(t, [][]string{{"Value"}, {"Infinity"}, {"NaN"}, {"1.5"}, {"-Infinity"}}, got)

	f, err := excelize.OpenReader(bytes.NewReader(a.Data))
	require.NoError(t, err)
	defer f.Close()
	number, err := f.GetCellType("Readings", "A4")
	require.NoError(t, err)
	for _, ref := range []string{"A2", "A3", "A5"} {
		typ, err := f.GetCellType("Readings", ref)
		require.NoError(t, err)
		assert.NotEqual(t, number, typ, ref)
	}
}

func TestExportFilenameOverrideWins(t *testing.T) {
	a, err := testEngine().Export(context.Background(), Request{
		Rows: memberRows(), Columns: memberColumns(), Title: "Monthly Report", Format: models.FormatPDF, Filename: "members.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "members.pdf", a.Filename)
}

func TestExportPDF(t *testing.T) {
	a, err := testEngine().Export(context.Background(), Request{
		Rows: memberRows(), Columns: memberColumns(), Title: "Members", Format: models.FormatPDF,
	})
	require.NoError(t, err)
	assert.Equal(t, "Members_2024-06-01.pdf", a.Filename)
	assert.True(t, bytes.HasPrefix(a.Data, []byte("%PDF-")))

	text := a.Text()
	for _, s := range []string{"(Members)", "(Name)", "(Active)", "(Alice)", "(Yes)", "(No)", "(-)"} {
		assert.Contains(t, text, s)
	}
}

func TestExportPDFPaginates(t *testing.T) {
	rows := make([]models.Row, 200)
	for i := range rows {
		rows[i] = models.Row{"name": fmt.Sprintf("member-%d", i)}
	}
	a, err := testEngine().Export(context.Background(), Request{
		Rows: rows, Columns: []models.ColumnSpec{{Key: "name", Label: "Name"}}, Title: "Long", Format: models.FormatPDF,
	})
	require.NoError(t, err)
	assert.Greater(t, strings.Count(a.Text(), "(Name)"), 1)
	assert.Contains(t, a.Text(), "(member-199)")
}

func TestExportPrint(t *testing.T) {
	rows := []models.Row{{"name": "<script>alert(1)</script>", "age": nil, "avatar": "x.png"}}
	a, err := testEngine().Export(context.Background(), Request{
		Rows: rows, Columns: memberColumns(), Title: "Members & Co", Format: models.FormatPrint,
	})
	require.NoError(t, err)

	doc := a.Text()
	assert.Contains(t, doc, "<h1>Members &amp; Co</h1>")
	assert.Contains(t, doc, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, doc, "<script>alert(1)</script>")
	assert.Contains(t, doc, "<td>-</td>")
	assert.Contains(t, doc, "window.print()")
	assert.Equal(t, "text/html; charset=utf-8", a.ContentType)
}

type explosive struct{}

func (explosive) String() string { panic("boom") }

func TestExportRecoversFromCellPanics(t *testing.T) {
	rows := []models.Row{{"name": explosive{}}}
	_, err := testEngine().Export(context.Background(), Request{
		Rows: rows, Columns: []models.ColumnSpec{{Key: "name", Label: "Name"}}, Format: models.FormatCSV,
	})
	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, models.FormatCSV, exportErr.Format)
	assert.Equal(t, "normalize", exportErr.Stage)
	assert.Contains(t, err.Error(), "boom")
}

func TestExportRejectsCyclicValues(t *testing.T) {
	self := map[string]any{}
	self["self"] = self
	_, err := testEngine().Export(context.Background(), Request{
		Rows:    []models.Row{{"name": "Alice"}, {"name": self}},
		Columns: []models.ColumnSpec{{Key: "name", Label: "Name"}},
		Format:  models.FormatCSV,
	})
	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "normalize", exportErr.Stage)
	assert.Contains(t, err.Error(), "row 1")
}

func TestExportHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testEngine().Export(ctx, Request{Rows: memberRows(), Columns: memberColumns(), Format: models.FormatCSV})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExportChunksPreserveOrder(t *testing.T) {
	rows := make([]models.Row, 25)
	for i := range rows {
		rows[i] = models.Row{"n": i}
	}
	e := NewEngine(Options{ChunkSize: 3, Workers: 4, Now: func() time.Time { return june1 }})
	a, err := e.Export(context.Background(), Request{
		Rows: rows, Columns: []models.ColumnSpec{{Key: "n", Label: "N", Type: models.ColumnNumber}}, Format: models.FormatCSV,
	})
	require.NoError(t, err)

	lines := strings.Split(a.Text(), "\n")
	require.Len(t, lines, 26)
	for i := range rows {
		assert.Equal(t, fmt.Sprint(i), lines[i+1])
	}
}

func TestExportDoesNotMutateRows(t *testing.T) {
	rows := memberRows()
	before := fmt.Sprint(rows)
	_, err := testEngine().Export(context.Background(), Request{Rows: rows, Columns: memberColumns(), Format: models.FormatExcel})
	require.NoError(t, err)
	assert.Equal(t, before, fmt.Sprint(rows))
}

func readSheet(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}
