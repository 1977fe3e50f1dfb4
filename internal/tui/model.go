// Package tui is an interactive terminal grid. Its toolbar keys dispatch
// display intents; the grid owns the rows and re-renders the visible subset.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ukaji3/gridkit-go/pkg/gridkit"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/cell"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/display"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

const statusDuration = 3 * time.Second

// ExportFunc runs one export. gridkit.Export satisfies it.
type ExportFunc func(ctx context.Context, req gridkit.Request, opts gridkit.Options) (*models.Artifact, error)

// Config configures a grid.
type Config struct {
	Title   string
	Columns []models.ColumnSpec
	Rows    []models.Row
	// Density is the initial row density. Empty means comfortable.
	Density models.Density
	// Search is the initial search text.
	Search     string
	Normalizer *cell.Normalizer
	// Export configures exports started from the grid. Its Notifier is
	// replaced by the grid's status line.
	Export gridkit.Options
	Logger *zap.Logger
}

type statusClearMsg struct{}

type exportDoneMsg struct {
	format models.Format
	text   string
	err    error
}

// Model is the bubbletea model of the grid.
type Model struct {
	parent     context.Context
	ctx        context.Context
	cancel     context.CancelFunc
	title      string
	cols       []models.ColumnSpec
	rows       []models.Row
	manager    *display.Manager
	normalizer *cell.Normalizer
	exportOpts gridkit.Options
	export     ExportFunc
	log        *zap.Logger

	shown    []models.ColumnSpec
	view     []int
	selected map[int]bool
	pending  []models.Format

	cursor    int
	colCursor int
	offset    int
	width     int
	height    int

	searching bool
	search    textinput.Model
	exporting int

	status      string
	statusErr   bool
	statusUntil time.Time
}

// New creates a grid model.
func New(ctx context.Context, cfg Config) *Model {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = 100
	ti.Width = 30

	m := &Model{
		parent:     ctx,
		title:      cfg.Title,
		cols:       cfg.Columns,
		rows:       slices.Clip(cfg.Rows),
		normalizer: cfg.Normalizer,
		exportOpts: cfg.Export,
		export:     gridkit.Export,
		log:        cfg.Logger,
		selected:   map[int]bool{},
		search:     ti,
	}
	m.ctx, m.cancel = context.WithCancel(ctx)
	if m.normalizer == nil {
		m.normalizer = cell.Default()
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	m.manager = display.NewManager(display.Props{Columns: cfg.Columns}, m.callbacks())
	if cfg.Density.Valid() {
		m.manager.Dispatch(display.SetDensity(cfg.Density))
	}
	if cfg.Search != "" {
		m.manager.Dispatch(display.SetSearch(cfg.Search))
	}
	m.refresh()
	return m
}

// Run shows the grid until the user quits.
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(New(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Config returns the current display configuration.
func (m *Model) Config() models.DisplayConfig {
	return m.manager.Config()
}

func (m *Model) callbacks() display.Callbacks {
	return display.Callbacks{
		OnSearchChange: func(text string) {
			m.log.Debug("search changed", zap.String("search", text))
			m.cursor, m.offset = 0, 0
			m.refresh()
		},
		OnColumnVisibilityToggle: func(key string, visible bool) {
			m.log.Debug("column visibility", zap.String("column", key), zap.Bool("visible", visible))
			m.refresh()
		},
		OnColumnPin: func(key string, side models.PinSide) {
			m.log.Debug("column pinned", zap.String("column", key), zap.String("side", string(side)))
			m.refresh()
			m.focusColumn(key)
		},
		OnDensityChange: func(d models.Density) {
			m.log.Debug("density changed", zap.String("density", string(d)))
		},
		OnSelectionToggle: func(enabled bool) {
			if !enabled {
				clear(m.selected)
				m.syncProps()
			}
		},
		OnExport: func(f models.Format) {
			m.pending = append(m.pending, f)
		},
		OnAddClick: func() {
			m.rows = append(m.rows, models.Row{})
			m.manager.Dispatch(display.SetSearch(""))
			m.refresh()
			m.cursor = len(m.view) - 1
		},
	}
}

// refresh recomputes the projected columns and the rows passing search.
func (m *Model) refresh() {
	cfg := m.manager.Config()
	m.shown = display.Project(cfg, m.cols)
	m.view = m.view[:0]
	for i, r := range m.rows {
		if display.MatchRow(r, m.shown, cfg.Search, m.normalizer) {
			m.view = append(m.view, i)
		}
	}
	m.cursor = clamp(m.cursor, 0, len(m.view)-1)
	m.colCursor = clamp(m.colCursor, 0, len(m.shown)-1)
}

func (m *Model) syncProps() {
	p := m.manager.Props()
	p.SelectedCount = len(m.selected)
	m.manager.SetProps(p)
}

func (m *Model) focusColumn(key string) {
	for i, c := range m.shown {
		if c.Key == key {
			m.colCursor = i
			return
		}
	}
}

func (m *Model) currentColumn() (models.ColumnSpec, bool) {
	if m.colCursor < 0 || m.colCursor >= len(m.shown) {
		return models.ColumnSpec{}, false
	}
	return m.shown[m.colCursor], true
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureRowVisible()

	case statusClearMsg:
		if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
			m.status = ""
			m.statusUntil = time.Time{}
		}

	case exportDoneMsg:
		m.exporting--
		if msg.text == "" {
			return m, nil
		}
		return m, m.setStatus(msg.text, msg.err != nil)

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	col, hasCol := m.currentColumn()

	switch {
	case key.Matches(msg, keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		m.cancelExports()
		return m, nil

	case key.Matches(msg, keys.Search):
		m.searching = true
		m.search.SetValue(m.manager.Config().Search)
		return m, m.search.Focus()

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.view)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Left):
		if m.colCursor > 0 {
			m.colCursor--
		}
	case key.Matches(msg, keys.Right):
		if m.colCursor < len(m.shown)-1 {
			m.colCursor++
		}
	case key.Matches(msg, keys.Home):
		m.cursor = 0
	case key.Matches(msg, keys.End):
		m.cursor = max(len(m.view)-1, 0)

	case key.Matches(msg, keys.Filters):
		m.manager.Dispatch(display.ToggleFilters())
	case key.Matches(msg, keys.Hide):
		if hasCol {
			m.manager.Dispatch(display.ToggleColumnVisibility(col.Key))
		}
	case key.Matches(msg, keys.ShowAll):
		cfg := m.manager.Config()
		for _, c := range m.cols {
			if !cfg.IsVisible(c.Key) {
				m.manager.Dispatch(display.ToggleColumnVisibility(c.Key))
			}
		}
	case key.Matches(msg, keys.PinLeft):
		if hasCol {
			m.manager.Dispatch(display.SetColumnPin(col.Key, models.PinLeft))
		}
	case key.Matches(msg, keys.PinRight):
		if hasCol {
			m.manager.Dispatch(display.SetColumnPin(col.Key, models.PinRight))
		}
	case key.Matches(msg, keys.Unpin):
		if hasCol {
			m.manager.Dispatch(display.Unpin(col.Key))
		}
	case key.Matches(msg, keys.Density):
		m.manager.Dispatch(display.SetDensity(densityCycle[m.manager.Config().Density]))
	case key.Matches(msg, keys.Selection):
		m.manager.Dispatch(display.ToggleSelection())
	case key.Matches(msg, keys.Select):
		m.toggleSelected()
	case key.Matches(msg, keys.Fullscreen):
		m.manager.Dispatch(display.ToggleFullscreen())
	case key.Matches(msg, keys.Add):
		m.manager.Dispatch(display.AddClick())

	case key.Matches(msg, keys.Export):
		m.manager.Dispatch(display.Export(exportKeys[msg.String()]))
		return m, m.flushExports()
	}

	m.ensureRowVisible()
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.manager.Dispatch(display.SetSearch(""))
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.manager.Config().Search {
		m.manager.Dispatch(display.SetSearch(v))
	}
	return m, cmd
}

func (m *Model) toggleSelected() {
	if !m.manager.Config().SelectionEnabled || len(m.view) == 0 {
		return
	}
	idx := m.view[m.cursor]
	if m.selected[idx] {
		delete(m.selected, idx)
	} else {
		m.selected[idx] = true
	}
	m.syncProps()
}

// exportRows returns the selected rows when any are selected, else the rows
// passing search.
func (m *Model) exportRows() []models.Row {
	indices := m.view
	if m.manager.Config().SelectionEnabled && len(m.selected) > 0 {
		indices = make([]int, 0, len(m.selected))
		for i := range m.selected {
			indices = append(indices, i)
		}
		slices.Sort(indices)
	}
	out := make([]models.Row, len(indices))
	for i, idx := range indices {
		out[i] = m.rows[idx]
	}
	return out
}

func (m *Model) flushExports() tea.Cmd {
	var cmds []tea.Cmd
	for _, f := range m.pending {
		cmds = append(cmds, m.exportCmd(f))
	}
	m.pending = m.pending[:0]
	return tea.Batch(cmds...)
}

func (m *Model) exportCmd(f models.Format) tea.Cmd {
	req := gridkit.Request{
		Rows:    m.exportRows(),
		Columns: slices.Clone(m.shown),
		Title:   m.title,
		Format:  f,
	}
	opts := m.exportOpts
	if opts.Logger == nil {
		opts.Logger = m.log
	}
	run, ctx := m.export, m.ctx
	m.exporting++

	return func() tea.Msg {
		done := exportDoneMsg{format: f}
		opts.Notifier = gridkit.NotifierFuncs{
			OnSuccess: func(msg string) { done.text = msg },
			OnFailure: func(msg string, err error) {
				done.text = fmt.Sprintf("%s: %v", msg, err)
				done.err = err
			},
		}
		a, err := run(ctx, req, opts)
		switch {
		case errors.Is(err, context.Canceled) && ctx.Err() != nil:
			done.text, done.err = "Export cancelled", nil
		case a == nil && err == nil:
			done.text = "Nothing to export"
		}
		return done
	}
}

// cancelExports stops every export in flight. Later exports run under a
// fresh context.
func (m *Model) cancelExports() {
	if m.exporting == 0 {
		return
	}
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(m.parent)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

func (m *Model) ensureRowVisible() {
	visible := m.bodyRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	m.offset = clamp(m.offset, 0, max(len(m.view)-visible, 0))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
