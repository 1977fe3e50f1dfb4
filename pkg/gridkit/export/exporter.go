package export

import (
	"context"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// Exporter serializes a normalized table into one format.
type Exporter interface {
	// Format returns the format the exporter produces.
	Format() models.Format

	// Export serializes t and returns the artifact bytes.
	Export(ctx context.Context, t *Table) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string

	// MimeType returns the MIME type of the produced bytes.
	MimeType() string
}
