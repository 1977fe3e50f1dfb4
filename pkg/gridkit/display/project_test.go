package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

func keys(cols []models.ColumnSpec) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Key
	}
	return out
}

func TestProject(t *testing.T) {
	cols := []models.ColumnSpec{
		{Key: "a", Label: "A"}, {Key: "b", Label: "B"}, {Key: "c", Label: "C"},
		{Key: "d", Label: "D"}, {Key: "e", Label: "E"},
	}
	cfg := models.DefaultDisplayConfig()
	cfg = Reduce(cfg, cols, SetColumnPin("d", models.PinLeft))
	cfg = Reduce(cfg, cols, SetColumnPin("a", models.PinRight))
	cfg = Reduce(cfg, cols, SetColumnPin("b", models.PinLeft))
	cfg = Reduce(cfg, cols, ToggleColumnVisibility("c"))

	assert.Equal(t, []string{"b", "d", "e", "a"}, keys(Project(cfg, cols)))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, keys(Project(models.DefaultDisplayConfig(), cols)))
}

func TestFilterRows(t *testing.T) {
	cols := []models.ColumnSpec{
		{Key: "name", Label: "Name"},
		{Key: "joined", Label: "Joined", Type: models.ColumnDate},
		{Key: "photo", Label: "Photo", Type: models.ColumnImage},
	}
	rows := []models.Row{
		{"name": "Alice", "joined": time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), "photo": "bob.png"},
		{"name": "Bob", "joined": nil},
	}

	assert.Len(t, FilterRows(rows, cols, "", nil), 2)
	assert.Equal(t, []models.Row{rows[1]}, FilterRows(rows, cols, " BOB ", nil))
	assert.Equal(t, []models.Row{rows[0]}, FilterRows(rows, cols, "1/15", nil))
	assert.Empty(t, FilterRows(rows, cols, "zed", nil))
}

func TestMatchRow(t *testing.T) {
	cols := []models.ColumnSpec{
		{Key: "name", Type: models.ColumnText},
		{Key: "done", Type: models.ColumnCheckbox},
	}
	r := models.Row{"name": "Quarterly Report", "done": "1"}

	assert.True(t, MatchRow(r, cols, "", nil))
	assert.True(t, MatchRow(r, cols, "  report ", nil))
	assert.True(t, MatchRow(r, cols, "yes", nil))
	assert.False(t, MatchRow(r, cols, "no", nil))
	assert.False(t, MatchRow(r, cols[:1], "yes", nil))
}
