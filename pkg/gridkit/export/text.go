package export

import (
	"context"
	"strings"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// ClipboardExporter renders tab-separated text for the system clipboard.
type ClipboardExporter struct{}

func (ClipboardExporter) Format() models.Format { return models.FormatClipboard }
func (ClipboardExporter) FileExtension() string { return ".txt" }
func (ClipboardExporter) MimeType() string      { return "text/plain; charset=utf-8" }

// Export joins the header and body with tabs and newlines.
func (e ClipboardExporter) Export(_ context.Context, t *Table) ([]byte, error) {
	return joinLines(t, Policies[models.FormatClipboard].FieldJoiner, nil), nil
}

// CSVExporter renders comma-separated text.
type CSVExporter struct{}

func (CSVExporter) Format() models.Format { return models.FormatCSV }
func (CSVExporter) FileExtension() string { return ".csv" }
func (CSVExporter) MimeType() string      { return "text/csv; charset=utf-8" }

// Export joins fields with commas, quoting only fields that need it.
func (e CSVExporter) Export(_ context.Context, t *Table) ([]byte, error) {
	return joinLines(t, Policies[models.FormatCSV].FieldJoiner, escapeCSV), nil
}

func joinLines(t *Table, sep string, escape func(string) string) []byte {
	var sb strings.Builder
	writeLine := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				sb.WriteString(sep)
			}
			if escape != nil {
				f = escape(f)
			}
			sb.WriteString(f)
		}
	}
	writeLine(t.Headers)
	for _, r := range t.Rows {
		sb.WriteByte('\n')
		writeLine(r)
	}
	return []byte(sb.String())
}

// escapeCSV quotes s when it contains a comma, a quote or a line break.
func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
