// Package sink delivers export artifacts to the platform: the clipboard,
// the file system and a print browsing context.
package sink

import (
	"context"
	"errors"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// ErrClipboardUnavailable indicates the clipboard could not be written.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// ErrPopupBlocked indicates no print browsing context could be opened.
var ErrPopupBlocked = errors.New("print window blocked")

// Sink delivers an artifact. The returned channel yields exactly one value,
// nil on success, and is then closed.
type Sink interface {
	Deliver(ctx context.Context, a *models.Artifact) <-chan error
}

// Func adapts a synchronous delivery function to Sink. The function runs on
// its own goroutine.
type Func func(ctx context.Context, a *models.Artifact) error

// Deliver runs f and reports its outcome.
func (f Func) Deliver(ctx context.Context, a *models.Artifact) <-chan error {
	out := make(chan error, 1)
	go func() {
		defer close(out)
		out <- f(ctx, a)
	}()
	return out
}

// Done returns a channel that already carries err.
func Done(err error) <-chan error {
	out := make(chan error, 1)
	out <- err
	close(out)
	return out
}
