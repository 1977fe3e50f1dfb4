// Package export serializes grid rows into clipboard text, CSV, xlsx, PDF and
// printable HTML.
package export

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/cell"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// DefaultChunkSize is the number of rows normalized per chunk.
const DefaultChunkSize = 2000

// Options configures an Engine.
type Options struct {
	// Locale selects the date layout (BCP 47, e.g. "en-US").
	Locale string
	// ChunkSize is the number of rows normalized per chunk.
	ChunkSize int
	// Workers bounds the number of chunks normalized concurrently.
	Workers int
	// CompressPDF enables PDF stream compression.
	CompressPDF bool
	// Now returns the export clock. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	return Options{
		ChunkSize:   DefaultChunkSize,
		Workers:     runtime.GOMAXPROCS(0),
		CompressPDF: true,
		Now:         time.Now,
	}
}

// Request describes one export call.
type Request struct {
	Rows    []models.Row
	Columns []models.ColumnSpec
	Title   string
	Format  models.Format
	// Filename overrides the generated file name when non-empty.
	Filename string
}

// Engine turns requests into artifacts. It holds no per-call state and is
// safe for concurrent use.
type Engine struct {
	opts       Options
	normalizer *cell.Normalizer
}

// NewEngine creates an Engine. Zero option fields take their defaults.
func NewEngine(opts Options) *Engine {
	def := DefaultOptions()
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = def.ChunkSize
	}
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}
	return &Engine{
		opts:       opts,
		normalizer: cell.ForLocale(opts.Locale),
	}
}

// Normalizer returns the cell normalizer the engine renders with.
func (e *Engine) Normalizer() *cell.Normalizer {
	return e.normalizer
}

// Exporter returns the serializer for format f.
func (e *Engine) Exporter(f models.Format) (Exporter, error) {
	switch f {
	case models.FormatClipboard:
		return ClipboardExporter{}, nil
	case models.FormatCSV:
		return CSVExporter{}, nil
	case models.FormatExcel:
		return ExcelExporter{}, nil
	case models.FormatPDF:
		return PDFExporter{Compress: e.opts.CompressPDF, CreatedAt: e.opts.Now()}, nil
	case models.FormatPrint:
		return PrintExporter{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Export serializes req. An empty row set produces no artifact and no error.
// Failures, including panics raised while rendering cells, are returned as
// *ExportError.
func (e *Engine) Export(ctx context.Context, req Request) (*models.Artifact, error) {
	if len(req.Rows) == 0 {
		return nil, nil
	}
	ex, err := e.Exporter(req.Format)
	if err != nil {
		return nil, err
	}

	t, err := buildTable(ctx, req.Title, req.Rows, req.Columns, Policies[req.Format], e.normalizer,
		buildOptions{chunkSize: e.opts.ChunkSize, workers: e.opts.Workers})
	if err != nil {
		return nil, NewExportError(req.Format, "normalize", err)
	}

	data, err := serialize(ctx, ex, t)
	if err != nil {
		return nil, NewExportError(req.Format, "serialize", err)
	}

	return &models.Artifact{
		Format:      req.Format,
		Filename:    Filename(req.Title, e.opts.Now(), ex.FileExtension(), req.Filename),
		ContentType: ex.MimeType(),
		Data:        data,
		Rows:        len(t.Rows),
	}, nil
}

func serialize(ctx context.Context, ex Exporter, t *Table) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return ex.Export(ctx, t)
}
