package models

// Row maps column keys to cell values of any shape
// (string, numbers, bool, time.Time or nil).
type Row map[string]any

// Dataset pairs the canonical rows with their column specs.
type Dataset struct {
	// Columns lists the columns in display order.
	Columns []ColumnSpec `json:"columns"`
	// Rows holds the records in export order.
	Rows []Row `json:"rows"`
}
