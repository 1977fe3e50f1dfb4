package export

import (
	"strings"
	"time"
)

const defaultBaseName = "export"

// Filename returns the artifact name for title exported at now:
// {title}_{YYYY-MM-DD}{ext}, with whitespace runs in title turned into
// underscores. A non-empty override is returned unchanged.
func Filename(title string, now time.Time, ext, override string) string {
	if override != "" {
		return override
	}
	return sanitizeTitle(title) + "_" + now.Format("2006-01-02") + ext
}

// sanitizeTitle joins whitespace-separated words with underscores and replaces
// characters that are invalid in file names.
func sanitizeTitle(title string) string {
	name := strings.Join(strings.Fields(title), "_")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		if r < 32 || r == 127 {
			return '-'
		}
		return r
	}, name)
	if name == "" {
		return defaultBaseName
	}
	return name
}
