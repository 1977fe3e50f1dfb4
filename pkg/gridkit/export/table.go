package export

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/cell"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// Table is a dataset after column filtering and cell normalization.
type Table struct {
	// Title is the export title.
	Title string
	// Columns are the columns kept by the format's policy.
	Columns []models.ColumnSpec
	// Headers holds the labels of Columns.
	Headers []string
	// Rows holds the normalized cells, one slice per source row.
	Rows [][]string
}

type buildOptions struct {
	chunkSize int
	workers   int
}

// buildTable normalizes rows in chunks of opts.chunkSize, running at most
// opts.workers chunks at once. ctx is checked before every chunk.
func buildTable(ctx context.Context, title string, rows []models.Row, cols []models.ColumnSpec,
	p Policy, n *cell.Normalizer, opts buildOptions) (*Table, error) {
	kept := p.Columns(cols)
	t := &Table{
		Title:   title,
		Columns: kept,
		Headers: make([]string, len(kept)),
		Rows:    make([][]string, len(rows)),
	}
	for i, c := range kept {
		t.Headers[i] = c.Label
	}

	chunk := max(opts.chunkSize, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.workers, 1))
	for start := 0; start < len(rows); start += chunk {
		if gctx.Err() != nil {
			break
		}
		start := start
		end := min(start+chunk, len(rows))
		g.Go(func() (err error) {
			if err := gctx.Err(); err != nil {
				return err
			}
			i := start
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("row %d: %v", i, r)
				}
			}()
			for ; i < end; i++ {
				if t.Rows[i], err = p.Row(rows[i], kept, n); err != nil {
					return fmt.Errorf("row %d: %w", i, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
