package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/gridkit-go/pkg/gridkit"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/display"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/export"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/sink"
)

type exportFlags struct {
	inputFlags
	format   string
	title    string
	filename string
}

func (a *app) newExportCmd() *cobra.Command {
	var o exportFlags
	cmd := &cobra.Command{
		Use:   "export <rows.json|book.xlsx>",
		Short: "Export rows to the clipboard, CSV, xlsx, PDF or a print page",
		Long: `Export serializes the visible columns of the rows that pass --search.

Formats:
  clipboard  tab-separated text copied to the system clipboard
  csv        comma-separated file
  excel      xlsx workbook
  pdf        landscape A4 table
  print      printable page opened in a browser`,
		Example: `  gridkit export rows.json --columns cols.yaml --format csv --title "Monthly Report"
  gridkit export book.xlsx --sheet Claims --format pdf --visible id,status`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd.Context(), cmd.OutOrStdout(), args[0], o)
		},
	}

	f := cmd.Flags()
	addInputFlags(cmd, &o.inputFlags)
	f.StringVarP(&o.format, "format", "f", string(models.FormatCSV), "Export format: "+formatList())
	f.StringVarP(&o.title, "title", "t", "", "Report title (default: input file name)")
	f.StringVarP(&o.filename, "filename", "o", "", "Output file name, overriding <title>_<date>.<ext>")
	f.String("output-dir", "", "Directory for saved files")
	f.Int("chunk-size", 0, "Rows normalized per chunk")
	f.Int("workers", 0, "Chunks normalized concurrently")
	f.Bool("pdf-compress", true, "Compress PDF streams")
	f.String("browser-bin", "", "Browser binary for print output")
	f.Duration("browser-timeout", 0, "Timeout for opening the print page")
	return cmd
}

func addInputFlags(cmd *cobra.Command, in *inputFlags) {
	f := cmd.Flags()
	f.StringVarP(&in.columns, "columns", "c", "", "Column definitions (YAML or JSON)")
	f.StringVar(&in.sheet, "sheet", "", "Sheet to read from an xlsx input (default: first sheet)")
	f.StringSliceVar(&in.visible, "visible", nil, "Columns to show, in order")
	f.StringVarP(&in.search, "search", "s", "", "Only rows with a cell containing this text")
}

func formatList() string {
	names := make([]string, len(models.Formats))
	for i, f := range models.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func (a *app) runExport(ctx context.Context, out io.Writer, path string, o exportFlags) error {
	ds, err := loadInput(path, o.inputFlags)
	if err != nil {
		return err
	}

	opts := a.exportOptions()
	opts.Files = &sink.FileSink{
		Dir: a.cfg.OutputDir,
		Saved: func(p string) {
			a.logger.Debug("file saved", zap.String("path", p))
		},
	}
	opts.Notifier = gridkit.NotifierFuncs{
		OnSuccess: func(msg string) { fmt.Fprintln(out, msg) },
	}

	var (
		req       gridkit.Request
		artifact  *models.Artifact
		exportErr error
	)
	m := newManager(ds, o.search, display.Callbacks{
		OnExport: func(f models.Format) {
			req.Format = f
			artifact, exportErr = gridkit.Export(ctx, req, opts)
		},
	})
	cfg := m.Config()
	shown := display.Project(cfg, ds.Columns)
	req = gridkit.Request{
		Rows:     display.FilterRows(ds.Rows, shown, cfg.Search, a.cfg.Normalizer()),
		Columns:  shown,
		Title:    titleFor(o.title, path),
		Filename: o.filename,
	}
	if !m.Dispatch(display.Export(models.Format(o.format))) {
		return fmt.Errorf("%w: %q (must be %s)", export.ErrUnknownFormat, o.format, formatList())
	}
	if exportErr != nil {
		return exportErr
	}
	if artifact == nil {
		fmt.Fprintln(out, "Nothing to export")
	}
	return nil
}
