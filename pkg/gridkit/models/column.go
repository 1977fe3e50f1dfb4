// Package models defines data structures shared by the grid toolbar and the export engine.
package models

// ColumnType is the semantic type of a column.
type ColumnType string

const (
	ColumnText     ColumnType = "text"
	ColumnNumber   ColumnType = "number"
	ColumnDate     ColumnType = "date"
	ColumnBoolean  ColumnType = "boolean"
	ColumnCheckbox ColumnType = "checkbox"
	ColumnImage    ColumnType = "image"
)

// Valid reports whether t is a known column type. The empty type is valid and means text.
func (t ColumnType) Valid() bool {
	switch t {
	case "", ColumnText, ColumnNumber, ColumnDate, ColumnBoolean, ColumnCheckbox, ColumnImage:
		return true
	}
	return false
}

// IsCheckbox reports whether cells of this type are coerced to Yes/No.
func (t ColumnType) IsCheckbox() bool {
	return t == ColumnCheckbox || t == ColumnBoolean
}

// PinSide is the edge a column is pinned to.
type PinSide string

const (
	PinNone  PinSide = ""
	PinLeft  PinSide = "left"
	PinRight PinSide = "right"
)

// Valid reports whether p is one of the three pin states.
func (p PinSide) Valid() bool {
	return p == PinNone || p == PinLeft || p == PinRight
}

// ColumnSpec describes one column of a dataset.
type ColumnSpec struct {
	// Key identifies the column; unique per dataset.
	Key string `json:"key" yaml:"key"`
	// Label is the display header. Labels may repeat.
	Label string `json:"label" yaml:"label"`
	// Type is the semantic cell type (empty means text).
	Type ColumnType `json:"type,omitempty" yaml:"type,omitempty"`
	// Pinned is the initial pin side.
	Pinned PinSide `json:"pinned,omitempty" yaml:"pinned,omitempty"`
}

// HasColumn reports whether a column with the given key exists in cols.
func HasColumn(cols []ColumnSpec, key string) bool {
	for _, c := range cols {
		if c.Key == key {
			return true
		}
	}
	return false
}
