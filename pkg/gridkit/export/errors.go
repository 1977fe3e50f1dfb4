package export

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// ErrUnknownFormat indicates the requested format has no serializer.
var ErrUnknownFormat = errors.New("unknown export format")

// ExportError represents a failed export.
type ExportError struct {
	Format models.Format
	Stage  string // "normalize", "serialize"
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s failed (%s): %v", e.Format, e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates a new ExportError.
func NewExportError(format models.Format, stage string, err error) *ExportError {
	return &ExportError{
		Format: format,
		Stage:  stage,
		Err:    err,
	}
}
