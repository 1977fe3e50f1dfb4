package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	day := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		title    string
		ext      string
		override string
		want     string
	}{
		{"Monthly Report", ".xlsx", "", "Monthly_Report_2024-06-01.xlsx"},
		{"  Claims   Q2\tdraft ", ".csv", "", "Claims_Q2_draft_2024-06-01.csv"},
		{"a/b:c", ".pdf", "", "a-b-c_2024-06-01.pdf"},
		{"", ".csv", "", "export_2024-06-01.csv"},
		{"Monthly Report", ".xlsx", "custom name.xlsx", "custom name.xlsx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.title, day, tt.ext, tt.override), tt.title)
	}
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Members", sheetName("Members"))
	assert.Equal(t, "Q2Claims", sheetName("Q2/Claims"))
	assert.Equal(t, "ab", sheetName("[a]:b?*"))
	assert.Equal(t, "Sheet1", sheetName("  "))
	assert.Equal(t, "Sheet1", sheetName("'"))
	assert.Len(t, []rune(sheetName("A very long contribution report title for 2024")), 31)
}
