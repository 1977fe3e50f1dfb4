package sink

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// ClipboardSink writes text artifacts to the system clipboard.
type ClipboardSink struct {
	// WriteAll replaces the clipboard contents. Defaults to clipboard.WriteAll.
	WriteAll func(text string) error
}

// NewClipboardSink returns a sink backed by the system clipboard.
func NewClipboardSink() *ClipboardSink {
	return &ClipboardSink{WriteAll: clipboard.WriteAll}
}

// Deliver writes the artifact text asynchronously. A failed write yields an
// error wrapping ErrClipboardUnavailable. The write is not retried.
func (s *ClipboardSink) Deliver(ctx context.Context, a *models.Artifact) <-chan error {
	write := s.WriteAll
	if write == nil {
		if clipboard.Unsupported {
			return Done(ErrClipboardUnavailable)
		}
		write = clipboard.WriteAll
	}
	return Func(func(ctx context.Context, a *models.Artifact) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := write(a.Text()); err != nil {
			return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
		}
		return nil
	}).Deliver(ctx, a)
}
