package main

import (
	"github.com/spf13/cobra"

	"github.com/ukaji3/gridkit-go/internal/preview"
	"github.com/ukaji3/gridkit-go/pkg/gridkit/display"
)

func (a *app) newPreviewCmd() *cobra.Command {
	var (
		in    inputFlags
		style string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "preview <rows.json|book.xlsx>",
		Short: "Print the visible rows as a table",
		Long: `Preview prints the rows an export would contain. On a terminal the rows
are drawn as a table; otherwise they are written as tab-separated text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadInput(args[0], in)
			if err != nil {
				return err
			}
			m := newManager(ds, in.search, display.Callbacks{})
			cfg := m.Config()
			n := a.cfg.Normalizer()
			shown := display.Project(cfg, ds.Columns)
			rows := display.FilterRows(ds.Rows, shown, cfg.Search, n)

			return preview.Render(cmd.OutOrStdout(), rows, shown, preview.Options{
				Style:      preview.Style(style),
				Limit:      limit,
				Normalizer: n,
			})
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVar(&style, "style", "", "Output style: table, tsv or markdown (default: table on a terminal, else tsv)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum rows to print (0 prints all)")
	return cmd
}
