package gridkit

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/export"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/sink"
)

// Request is an export request; see export.Request.
type Request = export.Request

// Export serializes req and delivers the artifact to the sink for its format.
//
// An empty row set is a no-op. Serialization and delivery failures are
// reported once through the notifier and returned; nothing is retried and no
// other format is tried instead. A blocked print window is not an error.
func Export(ctx context.Context, req Request, opts Options) (*models.Artifact, error) {
	log := opts.logger().With(zap.String("format", string(req.Format)), zap.String("title", req.Title))
	notify := opts.notifier()

	job := export.NewEngine(opts.Engine).Start(ctx, req)
	log = log.With(zap.String("job", job.ID))
	a, err := job.Wait(ctx)
	if err != nil {
		log.Error("export failed", zap.Error(err))
		notify.Failure("Export failed", err)
		return nil, err
	}
	if a == nil {
		log.Debug("nothing to export")
		return nil, nil
	}
	log.Debug("artifact built", zap.String("filename", a.Filename), zap.Int("rows", a.Rows), zap.Int("bytes", len(a.Data)))

	if !opts.ShouldDeliver() {
		return a, nil
	}

	err = <-opts.sinkFor(a.Format).Deliver(ctx, a)
	switch {
	case err == nil:
		notify.Success(successMessage(a))
		return a, nil
	case a.Format == models.FormatPrint && errors.Is(err, sink.ErrPopupBlocked):
		log.Debug("print window not opened", zap.Error(err))
		return a, nil
	case a.Format == models.FormatClipboard:
		log.Warn("clipboard write failed", zap.Error(err))
		notify.Failure("Failed to copy to clipboard", err)
	default:
		log.Error("delivery failed", zap.Error(err))
		notify.Failure("Export failed", err)
	}
	return a, err
}

func successMessage(a *models.Artifact) string {
	switch a.Format {
	case models.FormatClipboard:
		return fmt.Sprintf("Copied %d rows to clipboard", a.Rows)
	case models.FormatPrint:
		return "Opened print preview"
	}
	return fmt.Sprintf("Exported %d rows to %s", a.Rows, a.Filename)
}
