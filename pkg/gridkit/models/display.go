package models

// Density is a row spacing preset.
type Density string

const (
	DensityCompact     Density = "compact"
	DensityComfortable Density = "comfortable"
	DensitySpacious    Density = "spacious"
)

// Valid reports whether d is one of the enumerated presets.
func (d Density) Valid() bool {
	return d == DensityCompact || d == DensityComfortable || d == DensitySpacious
}

// Padding returns the number of blank cells drawn on each side of a value.
func (d Density) Padding() int {
	switch d {
	case DensityCompact:
		return 0
	case DensitySpacious:
		return 2
	default:
		return 1
	}
}

// DisplayConfig is the toolbar's display configuration.
type DisplayConfig struct {
	// Search is the free-text search gate.
	Search string `json:"search" yaml:"search"`
	// FiltersOpen reports whether the filter panel is shown.
	FiltersOpen bool `json:"filters_open" yaml:"filters_open"`
	// ActiveFilterCount is supplied by the caller and only displayed.
	ActiveFilterCount int `json:"active_filter_count" yaml:"active_filter_count"`
	// ColumnVisibility maps column key to visibility. true means shown;
	// a key missing from the map is shown.
	ColumnVisibility map[string]bool `json:"column_visibility,omitempty" yaml:"column_visibility,omitempty"`
	// ColumnPins maps column key to its pin side. Unpinned keys are absent.
	ColumnPins map[string]PinSide `json:"column_pins,omitempty" yaml:"column_pins,omitempty"`
	// Density is the row spacing preset.
	Density Density `json:"density" yaml:"density"`
	// SelectionEnabled toggles row selection checkboxes.
	SelectionEnabled bool `json:"selection_enabled" yaml:"selection_enabled"`
	// Fullscreen toggles the fullscreen grid.
	Fullscreen bool `json:"fullscreen" yaml:"fullscreen"`
}

// DefaultDisplayConfig returns the configuration a grid mounts with.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		ColumnVisibility: map[string]bool{},
		ColumnPins:       map[string]PinSide{},
		Density:          DensityComfortable,
	}
}

// IsVisible reports whether the column with key is shown.
func (c DisplayConfig) IsVisible(key string) bool {
	v, ok := c.ColumnVisibility[key]
	return !ok || v
}

// Pin returns the pin side of the column with key.
func (c DisplayConfig) Pin(key string) PinSide {
	return c.ColumnPins[key]
}
