// Package display implements the grid toolbar's display configuration.
//
// The configuration is a flat set of independent toggles plus one free-text
// search field. There is no state machine: every intent touches exactly one
// field and no field constrains another.
package display

import "github.com/ukaji3/gridkit-go/pkg/gridkit/models"

// Kind identifies an intent.
type Kind int

const (
	KindSetSearch Kind = iota + 1
	KindToggleFilters
	KindToggleColumnVisibility
	KindSetColumnPin
	KindSetDensity
	KindToggleSelection
	KindToggleFullscreen
	// KindExport and KindAddClick are notifications only; they never change the config.
	KindExport
	KindAddClick
)

var kindNames = map[Kind]string{
	KindSetSearch:              "set_search",
	KindToggleFilters:          "toggle_filters",
	KindToggleColumnVisibility: "toggle_column_visibility",
	KindSetColumnPin:           "set_column_pin",
	KindSetDensity:             "set_density",
	KindToggleSelection:        "toggle_selection",
	KindToggleFullscreen:       "toggle_fullscreen",
	KindExport:                 "export",
	KindAddClick:               "add_click",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Intent is a request to change the display configuration.
type Intent struct {
	Kind    Kind
	Key     string
	Text    string
	Side    models.PinSide
	Density models.Density
	Format  models.Format
}

// SetSearch replaces the search text.
func SetSearch(text string) Intent { return Intent{Kind: KindSetSearch, Text: text} }

// ToggleFilters flips the filter panel.
func ToggleFilters() Intent { return Intent{Kind: KindToggleFilters} }

// ToggleColumnVisibility flips the visibility of the column with key.
func ToggleColumnVisibility(key string) Intent {
	return Intent{Kind: KindToggleColumnVisibility, Key: key}
}

// SetColumnPin pins the column with key to side.
func SetColumnPin(key string, side models.PinSide) Intent {
	return Intent{Kind: KindSetColumnPin, Key: key, Side: side}
}

// Unpin removes any pin from the column with key.
func Unpin(key string) Intent { return SetColumnPin(key, models.PinNone) }

// SetDensity replaces the density preset.
func SetDensity(d models.Density) Intent { return Intent{Kind: KindSetDensity, Density: d} }

// ToggleSelection flips row selection mode.
func ToggleSelection() Intent { return Intent{Kind: KindToggleSelection} }

// ToggleFullscreen flips fullscreen mode.
func ToggleFullscreen() Intent { return Intent{Kind: KindToggleFullscreen} }

// Export requests an export in format f.
func Export(f models.Format) Intent { return Intent{Kind: KindExport, Format: f} }

// AddClick reports a click on the toolbar's add button.
func AddClick() Intent { return Intent{Kind: KindAddClick} }
