package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

var (
	testCols = []models.ColumnSpec{
		{Key: "name", Label: "Name", Type: models.ColumnText},
		{Key: "qty", Label: "Qty", Type: models.ColumnNumber},
		{Key: "ok", Label: "OK", Type: models.ColumnCheckbox},
	}
	testRows = []models.Row{
		{"name": "Widget", "qty": 3, "ok": true},
		{"name": "Gadget", "qty": 1.5, "ok": nil},
	}
)

func TestRenderTSVWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testRows, testCols, Options{}))

	assert.Equal(t, "Name\tQty\tOK\nWidget\t3\tYes\nGadget\t1.5\tNo\n", buf.String())
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testRows, testCols, Options{Style: StyleTable, Limit: 1}))

	out := buf.String()
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Widget")
	assert.NotContains(t, out, "Gadget")
	assert.True(t, strings.HasSuffix(out, "(1 of 2 rows)\n"))
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testRows, testCols, Options{Style: StyleMarkdown}))

	assert.Contains(t, buf.String(), "| Name | Qty | OK |")
}

func TestRenderEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, testCols, Options{Style: StyleTable}))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRenderUnknownStyle(t *testing.T) {
	err := Render(&bytes.Buffer{}, testRows, testCols, Options{Style: "html"})
	assert.ErrorContains(t, err, "unknown preview style")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
