package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aigit-dev/examboard/internal/datasource"
	"github.com/aigit-dev/examboard/internal/termreport"
)

func newStatsCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "stats <bundle.json>",
		Short: "Print bundle statistics to the terminal",
		Long: `Print bundle statistics to the terminal.

Shows the same aggregates the web dashboard shows: KPI summary, per-author
pass/fail table, and the score trend over time.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
				color.NoColor = true
			}

			loader := datasource.NewLoader(nil)
			data, err := loader.LoadFromFile(args[0])
			if err != nil {
				return &BundleInvalidError{Message: err.Error()}
			}
			return termreport.Render(os.Stdout, data)
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}
