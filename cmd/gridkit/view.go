package main

import (
	"github.com/spf13/cobra"

	"github.com/ukaji3/gridkit-go/internal/tui"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

func (a *app) newViewCmd() *cobra.Command {
	var (
		in    inputFlags
		title string
	)
	cmd := &cobra.Command{
		Use:   "view <rows.json|book.xlsx>",
		Short: "Browse rows in an interactive grid",
		Long: `View opens an interactive grid. Toolbar keys search, hide and pin
columns, change density, select rows and export with 1-5
(clipboard, csv, excel, pdf, print).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadInput(args[0], in)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), tui.Config{
				Title:      titleFor(title, args[0]),
				Columns:    ds.Columns,
				Rows:       ds.Rows,
				Density:    models.Density(a.cfg.Display.Density),
				Search:     in.search,
				Normalizer: a.cfg.Normalizer(),
				Export:     a.exportOptions(),
				Logger:     a.logger,
			})
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&title, "title", "t", "", "Grid and report title (default: input file name)")
	cmd.Flags().String("density", "", "Initial density: compact, comfortable or spacious")
	cmd.Flags().String("output-dir", "", "Directory for saved files")
	return cmd
}
