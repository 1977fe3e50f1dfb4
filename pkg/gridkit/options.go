// Package gridkit exports data-grid rows to clipboard text, CSV, xlsx, PDF and
// print documents, and delivers the results.
package gridkit

import (
	"go.uber.org/zap"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/export"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/sink"
)

// Options configures Export.
type Options struct {
	// Engine configures serialization.
	Engine export.Options
	// OutputDir receives saved files when Files is nil.
	OutputDir string
	// Deliver specifies whether artifacts are handed to a sink.
	// If nil, defaults to true.
	Deliver *bool
	// Logger receives diagnostics. If nil, logging is disabled.
	Logger *zap.Logger
	// Notifier receives the one user-facing outcome of every export.
	// If nil, outcomes are only logged.
	Notifier Notifier
	// Clipboard delivers clipboard artifacts. Defaults to the system clipboard.
	Clipboard sink.Sink
	// Files delivers csv, excel and pdf artifacts. Defaults to a FileSink on OutputDir.
	Files sink.Sink
	// Print delivers print documents. Defaults to a browser opened over the DevTools protocol.
	Print sink.Sink
}

// DefaultOptions returns default export options.
func DefaultOptions() Options {
	return Options{
		Engine:    export.DefaultOptions(),
		OutputDir: ".",
	}
}

// ShouldDeliver returns whether artifacts are handed to a sink.
func (o Options) ShouldDeliver() bool {
	if o.Deliver != nil {
		return *o.Deliver
	}
	return true
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) notifier() Notifier {
	if o.Notifier != nil {
		return o.Notifier
	}
	return LogNotifier{Logger: o.logger()}
}

func (o Options) sinkFor(f models.Format) sink.Sink {
	switch f {
	case models.FormatClipboard:
		if o.Clipboard != nil {
			return o.Clipboard
		}
		return sink.NewClipboardSink()
	case models.FormatPrint:
		if o.Print != nil {
			return o.Print
		}
		return &sink.PrintSink{Opener: &sink.RodOpener{}}
	}
	if o.Files != nil {
		return o.Files
	}
	return &sink.FileSink{Dir: o.OutputDir}
}
