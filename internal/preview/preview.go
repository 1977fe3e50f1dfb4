// Package preview prints the visible part of a dataset to a terminal.
package preview

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/cell"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// Style selects the output layout.
type Style string

const (
	StyleAuto     Style = ""
	StyleTable    Style = "table"
	StyleTSV      Style = "tsv"
	StyleMarkdown Style = "markdown"
)

// Options configures Render.
type Options struct {
	Style Style
	// Limit caps the number of rows printed. Zero prints all rows.
	Limit      int
	Normalizer *cell.Normalizer
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Render writes rows under cols to w. Image columns are rendered empty.
func Render(w io.Writer, rows []models.Row, cols []models.ColumnSpec, opts Options) error {
	n := opts.Normalizer
	if n == nil {
		n = cell.Default()
	}
	style := opts.Style
	if style == StyleAuto {
		style = StyleTSV
		if IsTerminal(w) {
			style = StyleTable
		}
	}

	shown := rows
	if opts.Limit > 0 && len(shown) > opts.Limit {
		shown = shown[:opts.Limit]
	}

	switch style {
	case StyleTSV:
		return renderTSV(w, shown, cols, n)
	case StyleTable, StyleMarkdown:
		renderTable(w, shown, cols, n, style, len(rows))
		return nil
	default:
		return fmt.Errorf("unknown preview style %q", style)
	}
}

func renderTable(w io.Writer, rows []models.Row, cols []models.ColumnSpec, n *cell.Normalizer, style Style, total int) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, 0, len(cols))
	for i, c := range cols {
		header[i] = c.Label
		if c.Type == models.ColumnNumber {
			configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
		}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for _, r := range rows {
		t.AppendRow(values(r, cols, n))
	}

	if style == StyleMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
	if total > len(rows) {
		_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", len(rows), total)
		return
	}
	_, _ = fmt.Fprintf(w, "(%d rows)\n", total)
}

func renderTSV(w io.Writer, rows []models.Row, cols []models.ColumnSpec, n *cell.Normalizer) error {
	fields := make([]string, len(cols))
	for i, c := range cols {
		fields[i] = c.Label
	}
	if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
		return err
	}
	for _, r := range rows {
		for i, c := range cols {
			fields[i] = cellText(r, c, n)
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func values(r models.Row, cols []models.ColumnSpec, n *cell.Normalizer) table.Row {
	out := make(table.Row, len(cols))
	for i, c := range cols {
		out[i] = cellText(r, c, n)
	}
	return out
}

func cellText(r models.Row, c models.ColumnSpec, n *cell.Normalizer) string {
	return n.Normalize(r[c.Key], c.Type)
}
