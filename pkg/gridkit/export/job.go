package export

import (
	"context"

	"github.com/google/uuid"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// Job is an export running on its own goroutine.
type Job struct {
	ID     string
	Format models.Format

	cancel   context.CancelFunc
	done     chan struct{}
	artifact *models.Artifact
	err      error
}

// Start runs req in the background. Cancelling ctx or calling Cancel stops
// the export at the next chunk boundary.
func (e *Engine) Start(ctx context.Context, req Request) *Job {
	ctx, cancel := context.WithCancel(ctx)
	j := &Job{
		ID:     uuid.NewString(),
		Format: req.Format,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(j.done)
		defer cancel()
		j.artifact, j.err = e.Export(ctx, req)
	}()
	return j
}

// Done is closed when the job finishes.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancel stops the job. It does not wait for it to finish.
func (j *Job) Cancel() {
	j.cancel()
}

// Wait blocks until the job finishes or ctx is done.
func (j *Job) Wait(ctx context.Context) (*models.Artifact, error) {
	select {
	case <-j.done:
		return j.artifact, j.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
