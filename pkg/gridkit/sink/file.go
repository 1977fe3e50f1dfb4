package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// FileSink saves artifacts into a directory, the counterpart of a browser download.
type FileSink struct {
	// Dir is the target directory. Empty means the working directory.
	Dir string
	// Saved, when set, receives the path of every written file.
	Saved func(path string)
}

// Deliver writes the artifact as Dir/Filename. The file name may not leave Dir.
func (s *FileSink) Deliver(ctx context.Context, a *models.Artifact) <-chan error {
	return Func(func(ctx context.Context, a *models.Artifact) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := s.Path(a.Filename)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(path, a.Data, 0644); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		if s.Saved != nil {
			s.Saved(path)
		}
		return nil
	}).Deliver(ctx, a)
}

// Path returns where an artifact named filename would be written.
func (s *FileSink) Path(filename string) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if filename == "" || !filepath.IsLocal(filename) {
		return "", fmt.Errorf("invalid file name %q", filename)
	}
	return filepath.Join(dir, filename), nil
}
