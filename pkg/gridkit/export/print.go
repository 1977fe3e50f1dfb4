package export

import (
	"bytes"
	"context"
	"html/template"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
h1 { font-size: 18px; margin-bottom: 12px; }
table { border-collapse: collapse; width: 100%; font-size: 12px; }
th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; }
th { background: #e7e6e6; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
<script>window.onload = function () { window.print(); window.close(); };</script>
</body>
</html>
`))

// PrintExporter renders a standalone HTML document that prints itself and
// closes once loaded.
type PrintExporter struct{}

func (PrintExporter) Format() models.Format { return models.FormatPrint }
func (PrintExporter) FileExtension() string { return ".html" }
func (PrintExporter) MimeType() string      { return "text/html; charset=utf-8" }

// Export executes the print template; title and cells are HTML-escaped.
func (e PrintExporter) Export(_ context.Context, t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
