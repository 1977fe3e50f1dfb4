package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Home       key.Binding
	End        key.Binding
	Search     key.Binding
	Filters    key.Binding
	Hide       key.Binding
	ShowAll    key.Binding
	PinLeft    key.Binding
	PinRight   key.Binding
	Unpin      key.Binding
	Density    key.Binding
	Selection  key.Binding
	Select     key.Binding
	Fullscreen key.Binding
	Add        key.Binding
	Export     key.Binding
	Cancel     key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	Home:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
	End:        key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filters:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
	Hide:       key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "hide column")),
	ShowAll:    key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "show all")),
	PinLeft:    key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "pin left")),
	PinRight:   key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "pin right")),
	Unpin:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unpin")),
	Density:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "density")),
	Selection:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "selection")),
	Select:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select row")),
	Fullscreen: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "fullscreen")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add row")),
	Export:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "export")),
	Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel exports")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// exportKeys maps the export bindings to formats in toolbar order.
var exportKeys = map[string]models.Format{
	"1": models.FormatClipboard,
	"2": models.FormatCSV,
	"3": models.FormatExcel,
	"4": models.FormatPDF,
	"5": models.FormatPrint,
}

var densityCycle = map[models.Density]models.Density{
	models.DensityCompact:     models.DensityComfortable,
	models.DensityComfortable: models.DensitySpacious,
	models.DensitySpacious:    models.DensityCompact,
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Search, k.Hide, k.PinLeft, k.PinRight, k.Unpin, k.Density, k.Selection, k.Export, k.Cancel, k.Quit}
}
