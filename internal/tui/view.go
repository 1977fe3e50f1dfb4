package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

const (
	minColWidth     = 3
	maxColWidth     = 30
	defaultBodyRows = 20
	pinSeparator    = "│"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	toolbarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// chromeLines returns the number of lines drawn around the body.
func (m *Model) chromeLines() int {
	cfg := m.manager.Config()
	n := 1 // header
	if cfg.Fullscreen {
		return n
	}
	n += 3 // toolbar, status, help
	if cfg.FiltersOpen {
		n++
	}
	if m.searching {
		n++
	}
	return n
}

// bodyRows returns the number of data rows that fit the window.
func (m *Model) bodyRows() int {
	if m.height <= 0 {
		return defaultBodyRows
	}
	return max(m.height-m.chromeLines(), 1)
}

func (m *Model) View() string {
	cfg := m.manager.Config()
	var b strings.Builder

	if !cfg.Fullscreen {
		b.WriteString(m.toolbarView())
		b.WriteByte('\n')
		if cfg.FiltersOpen {
			b.WriteString(toolbarStyle.Render(fmt.Sprintf("Filters: %d active", cfg.ActiveFilterCount)))
			b.WriteByte('\n')
		}
		if m.searching {
			b.WriteString(m.search.View())
			b.WriteByte('\n')
		}
	}

	widths := m.columnWidths()
	b.WriteString(headerStyle.Render(m.fitLine(m.headerLine(widths))))
	b.WriteByte('\n')

	end := min(m.offset+m.bodyRows(), len(m.view))
	for i := m.offset; i < end; i++ {
		line := m.fitLine(m.rowLine(m.view[i], widths))
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case m.selected[m.view[i]]:
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(m.view) == 0 {
		b.WriteString(toolbarStyle.Render("No rows"))
		b.WriteByte('\n')
	}

	if !cfg.Fullscreen {
		b.WriteString(m.statusView())
		b.WriteByte('\n')
		b.WriteString(m.helpView())
	}
	return b.String()
}

func (m *Model) toolbarView() string {
	cfg := m.manager.Config()
	parts := []string{
		fmt.Sprintf("%d/%d rows", len(m.view), len(m.rows)),
		"density: " + string(cfg.Density),
	}
	if cfg.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", cfg.Search))
	}
	if hidden := len(m.cols) - len(m.shown); hidden > 0 {
		parts = append(parts, fmt.Sprintf("%d hidden", hidden))
	}
	if cfg.SelectionEnabled {
		parts = append(parts, fmt.Sprintf("%d selected", m.manager.Props().SelectedCount))
	}
	if m.exporting > 0 {
		parts = append(parts, "exporting...")
	}
	return titleStyle.Render(m.title) + "  " + toolbarStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) statusView() string {
	if m.status != "" {
		if m.statusErr {
			return errorStyle.Render(m.status)
		}
		return statusStyle.Render(m.status)
	}
	col, ok := m.currentColumn()
	if !ok {
		return ""
	}
	text := fmt.Sprintf("column: %s (%s)", col.Label, col.Type)
	if side := m.manager.Config().Pin(col.Key); side != models.PinNone {
		text += ", pinned " + string(side)
	}
	return toolbarStyle.Render(text)
}

func (m *Model) helpView() string {
	bindings := keys.help()
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = h.Key + " " + h.Desc
	}
	return helpStyle.Render(strings.Join(parts, " · "))
}

// columnWidths sizes each shown column to its label and the cells in the
// current window.
func (m *Model) columnWidths() []int {
	widths := make([]int, len(m.shown))
	end := min(m.offset+m.bodyRows(), len(m.view))
	for i, c := range m.shown {
		w := runewidth.StringWidth(c.Label)
		for _, idx := range m.view[m.offset:end] {
			w = max(w, runewidth.StringWidth(m.cellText(idx, c)))
		}
		widths[i] = clamp(w, minColWidth, maxColWidth)
	}
	return widths
}

func (m *Model) cellText(idx int, c models.ColumnSpec) string {
	return m.normalizer.Normalize(m.rows[idx][c.Key], c.Type)
}

func (m *Model) headerLine(widths []int) string {
	cells := make([]string, len(m.shown))
	for i, c := range m.shown {
		cells[i] = m.pad(c.Label, widths[i], false)
	}
	prefix := ""
	if m.manager.Config().SelectionEnabled {
		prefix = "    "
	}
	return prefix + m.joinCells(cells)
}

func (m *Model) rowLine(idx int, widths []int) string {
	cells := make([]string, len(m.shown))
	for i, c := range m.shown {
		cells[i] = m.pad(m.cellText(idx, c), widths[i], c.Type == models.ColumnNumber)
	}
	prefix := ""
	if m.manager.Config().SelectionEnabled {
		prefix = "[ ] "
		if m.selected[idx] {
			prefix = "[x] "
		}
	}
	return prefix + m.joinCells(cells)
}

// joinCells joins cells, separating pinned groups from the middle.
func (m *Model) joinCells(cells []string) string {
	cfg := m.manager.Config()
	var b strings.Builder
	for i, s := range cells {
		if i > 0 {
			prev, cur := cfg.Pin(m.shown[i-1].Key), cfg.Pin(m.shown[i].Key)
			if prev != cur {
				b.WriteString(pinSeparator)
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(s)
	}
	return b.String()
}

func (m *Model) pad(s string, w int, right bool) string {
	s = runewidth.Truncate(s, w, "…")
	if right {
		s = runewidth.FillLeft(s, w)
	} else {
		s = runewidth.FillRight(s, w)
	}
	p := strings.Repeat(" ", m.manager.Config().Density.Padding())
	return p + s + p
}

func (m *Model) fitLine(s string) string {
	if m.width <= 0 {
		return s
	}
	return runewidth.Truncate(s, m.width, "")
}
