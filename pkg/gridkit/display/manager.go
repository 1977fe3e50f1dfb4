package display

import (
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// Callbacks receive the toolbar's intents. Every field is optional.
type Callbacks struct {
	OnSearchChange           func(text string)
	OnFiltersToggle          func(open bool)
	OnColumnVisibilityToggle func(key string, visible bool)
	OnColumnPin              func(key string, side models.PinSide)
	OnDensityChange          func(d models.Density)
	OnSelectionToggle        func(enabled bool)
	OnExport                 func(f models.Format)
	OnFullscreenToggle       func(fullscreen bool)
	OnAddClick               func()
}

// Props are the read-only values the caller passes on every render.
type Props struct {
	Columns           []models.ColumnSpec
	ActiveFilterCount int
	SelectedCount     int
}

// Manager is a controlled toolbar: it proposes configuration changes to its
// caller through Callbacks and keeps the last configuration it was synced to
// or produced.
type Manager struct {
	cfg       models.DisplayConfig
	props     Props
	callbacks Callbacks
}

// NewManager creates a Manager mounted with the default configuration and
// any pins declared on the columns.
func NewManager(props Props, cb Callbacks) *Manager {
	m := &Manager{callbacks: cb}
	m.SetProps(props)
	m.cfg = SeedPins(models.DefaultDisplayConfig(), props.Columns)
	m.cfg.ActiveFilterCount = props.ActiveFilterCount
	return m
}

// Config returns the current configuration.
func (m *Manager) Config() models.DisplayConfig {
	return m.cfg
}

// Props returns the props of the last render.
func (m *Manager) Props() Props {
	return m.props
}

// SetProps replaces the caller-owned props.
func (m *Manager) SetProps(p Props) {
	m.props = p
	m.cfg.ActiveFilterCount = p.ActiveFilterCount
}

// Sync replaces the configuration with the caller's authoritative copy.
func (m *Manager) Sync(cfg models.DisplayConfig) {
	m.cfg = cfg
	m.cfg.ActiveFilterCount = m.props.ActiveFilterCount
}

// Dispatch applies in and notifies the matching callback.
// It reports whether the intent was accepted; ignored intents notify nobody.
func (m *Manager) Dispatch(in Intent) bool {
	switch in.Kind {
	case KindExport:
		if !in.Format.Valid() {
			return false
		}
		if m.callbacks.OnExport != nil {
			m.callbacks.OnExport(in.Format)
		}
		return true
	case KindAddClick:
		if m.callbacks.OnAddClick != nil {
			m.callbacks.OnAddClick()
		}
		return true
	}

	next := Reduce(m.cfg, m.props.Columns, in)
	if !m.accepted(next, in) {
		return false
	}
	m.cfg = next
	m.notify(in)
	return true
}

// accepted reports whether Reduce acted on in. Re-pinning to the same side
// and re-setting the same search text still count as accepted.
func (m *Manager) accepted(next models.DisplayConfig, in Intent) bool {
	switch in.Kind {
	case KindSetSearch:
		return true
	case KindSetColumnPin:
		return in.Side.Valid() && models.HasColumn(m.props.Columns, in.Key)
	case KindSetDensity:
		return in.Density.Valid()
	}
	return !Equal(m.cfg, next)
}

func (m *Manager) notify(in Intent) {
	cb := m.callbacks
	switch in.Kind {
	case KindSetSearch:
		if cb.OnSearchChange != nil {
			cb.OnSearchChange(m.cfg.Search)
		}
	case KindToggleFilters:
		if cb.OnFiltersToggle != nil {
			cb.OnFiltersToggle(m.cfg.FiltersOpen)
		}
	case KindToggleColumnVisibility:
		if cb.OnColumnVisibilityToggle != nil {
			cb.OnColumnVisibilityToggle(in.Key, m.cfg.IsVisible(in.Key))
		}
	case KindSetColumnPin:
		if cb.OnColumnPin != nil {
			cb.OnColumnPin(in.Key, m.cfg.Pin(in.Key))
		}
	case KindSetDensity:
		if cb.OnDensityChange != nil {
			cb.OnDensityChange(m.cfg.Density)
		}
	case KindToggleSelection:
		if cb.OnSelectionToggle != nil {
			cb.OnSelectionToggle(m.cfg.SelectionEnabled)
		}
	case KindToggleFullscreen:
		if cb.OnFullscreenToggle != nil {
			cb.OnFullscreenToggle(m.cfg.Fullscreen)
		}
	}
}
