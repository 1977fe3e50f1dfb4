// Package main provides the CLI entry point for gridkit.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/gridkit-go/internal/config"
	"github.com/ukaji3/gridkit-go/internal/logging"
	"github.com/ukaji3/gridkit-go/pkg/gridkit"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/sink"
)

// app holds the state shared by all commands.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "gridkit",
		Short: "Export and browse tabular data",
		Long: `gridkit exports rows from JSON or xlsx files to the clipboard, CSV,
xlsx, PDF or a printable page, and browses them in an interactive grid.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Config file (default: ./gridkit.yaml)")
	pf.Bool("verbose", false, "Enable debug logging")
	pf.String("locale", "", "Locale for date cells, e.g. en-US or de-DE")

	rootCmd.AddCommand(a.newExportCmd(), a.newPreviewCmd(), a.newViewCmd())
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	// The interactive grid owns the terminal.
	if cmd.Name() == "view" {
		a.logger = zap.NewNop()
		return nil
	}
	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	if cfg.File != "" {
		logger.Debug("config loaded", zap.String("file", cfg.File))
	}
	return nil
}

// exportOptions builds export options from the loaded configuration.
func (a *app) exportOptions() gridkit.Options {
	opts := gridkit.DefaultOptions()
	opts.Engine = a.cfg.ExportOptions()
	opts.OutputDir = a.cfg.OutputDir
	opts.Logger = a.logger
	opts.Print = &sink.PrintSink{Opener: &sink.RodOpener{
		Bin:     a.cfg.Browser.Bin,
		Timeout: a.cfg.Browser.Timeout,
	}}
	return opts
}
