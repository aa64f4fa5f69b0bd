package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aigit-dev/examboard/internal/webapi"
)

// version is overridden with -ldflags "-X main.version=..." at release build.
var version = "dev"

func newRootCommand() *cobra.Command {
	webapi.Version = version

	cmd := &cobra.Command{
		Use:   "examboard",
		Short: "Examboard - dashboard for commit comprehension-exam transcripts",
		Long: `Examboard renders a read-only analytics dashboard over exported commit
exam transcripts: per-author pass/fail history, score trends, and drill-down
into individual transcripts.

It visualizes snapshots produced by the external exam tool; it never grades
or verifies transcripts itself.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newStatsCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
