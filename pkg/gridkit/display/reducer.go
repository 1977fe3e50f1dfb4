package display

import (
	"maps"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// Reduce applies in to cfg and returns the resulting configuration.
// cols is the current column set; intents naming a key outside it are ignored,
// as are out-of-range densities and pin sides. cfg is never modified.
func Reduce(cfg models.DisplayConfig, cols []models.ColumnSpec, in Intent) models.DisplayConfig {
	switch in.Kind {
	case KindSetSearch:
		cfg.Search = in.Text
	case KindToggleFilters:
		cfg.FiltersOpen = !cfg.FiltersOpen
	case KindToggleColumnVisibility:
		if !models.HasColumn(cols, in.Key) {
			return cfg
		}
		visible := cfg.IsVisible(in.Key)
		cfg.ColumnVisibility = cloneOrNew(cfg.ColumnVisibility)
		cfg.ColumnVisibility[in.Key] = !visible
	case KindSetColumnPin:
		if !models.HasColumn(cols, in.Key) || !in.Side.Valid() {
			return cfg
		}
		if cfg.Pin(in.Key) == in.Side {
			return cfg
		}
		cfg.ColumnPins = cloneOrNew(cfg.ColumnPins)
		if in.Side == models.PinNone {
			delete(cfg.ColumnPins, in.Key)
		} else {
			cfg.ColumnPins[in.Key] = in.Side
		}
	case KindSetDensity:
		if in.Density.Valid() {
			cfg.Density = in.Density
		}
	case KindToggleSelection:
		cfg.SelectionEnabled = !cfg.SelectionEnabled
	case KindToggleFullscreen:
		cfg.Fullscreen = !cfg.Fullscreen
	}
	return cfg
}

// Equal reports whether a and b describe the same display state.
// Absent visibility entries compare equal to explicit true entries.
func Equal(a, b models.DisplayConfig) bool {
	if a.Search != b.Search || a.FiltersOpen != b.FiltersOpen ||
		a.ActiveFilterCount != b.ActiveFilterCount || a.Density != b.Density ||
		a.SelectionEnabled != b.SelectionEnabled || a.Fullscreen != b.Fullscreen {
		return false
	}
	for k := range a.ColumnVisibility {
		if a.IsVisible(k) != b.IsVisible(k) {
			return false
		}
	}
	for k := range b.ColumnVisibility {
		if a.IsVisible(k) != b.IsVisible(k) {
			return false
		}
	}
	return maps.Equal(pinsOnly(a.ColumnPins), pinsOnly(b.ColumnPins))
}

// SeedPins returns cfg with the pin side declared on each column applied,
// unless the config already carries a pin for that key.
func SeedPins(cfg models.DisplayConfig, cols []models.ColumnSpec) models.DisplayConfig {
	for _, c := range cols {
		if c.Pinned == models.PinNone || !c.Pinned.Valid() {
			continue
		}
		if _, ok := cfg.ColumnPins[c.Key]; ok {
			continue
		}
		cfg = Reduce(cfg, cols, SetColumnPin(c.Key, c.Pinned))
	}
	return cfg
}

func cloneOrNew[V any](m map[string]V) map[string]V {
	if m == nil {
		return make(map[string]V)
	}
	return maps.Clone(m)
}

func pinsOnly(m map[string]models.PinSide) map[string]models.PinSide {
	out := make(map[string]models.PinSide, len(m))
	for k, v := range m {
		if v != models.PinNone {
			out[k] = v
		}
	}
	return out
}
