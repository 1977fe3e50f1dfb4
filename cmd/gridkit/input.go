package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/dataset"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/display"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// inputFlags are shared by every command that reads a dataset.
type inputFlags struct {
	columns string
	sheet   string
	visible []string
	search  string
}

// loadInput reads the dataset at path. xlsx files carry their own columns
// unless --columns is given; JSON rows always need --columns.
func loadInput(path string, in inputFlags) (*models.Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	var ds *models.Dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		wb, err := dataset.LoadWorkbook(path, in.sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read workbook: %w", err)
		}
		ds = wb
		if in.columns != "" {
			cols, err := dataset.LoadColumns(in.columns)
			if err != nil {
				return nil, err
			}
			ds.Columns = cols
		}
	default:
		if in.columns == "" {
			return nil, fmt.Errorf("--columns is required for %s", filepath.Base(path))
		}
		cols, err := dataset.LoadColumns(in.columns)
		if err != nil {
			return nil, err
		}
		rows, err := dataset.LoadRows(path, cols)
		if err != nil {
			return nil, err
		}
		ds = &models.Dataset{Columns: cols, Rows: rows}
	}

	if len(in.visible) > 0 {
		ds.Columns = dataset.Select(ds.Columns, in.visible)
		if len(ds.Columns) == 0 {
			return nil, fmt.Errorf("none of the --visible columns exist: %s", strings.Join(in.visible, ","))
		}
	}
	return ds, nil
}

// titleFor returns title, or the input's base name without extension.
func titleFor(title, path string) string {
	if title != "" {
		return title
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// newManager mounts a toolbar over ds with the initial search applied.
func newManager(ds *models.Dataset, search string, cb display.Callbacks) *display.Manager {
	m := display.NewManager(display.Props{Columns: ds.Columns}, cb)
	if search != "" {
		m.Dispatch(display.SetSearch(search))
	}
	return m
}
