package main

import (
	"log/slog"

	"github.com/JonMunkholm/droprows/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "droprows",
	Short: "Drop table rows by position",
	Long: `droprows removes rows from a CSV table by 1-based position.

Rows are selected with a spec such as "1, 3-5, 9": single rows and
inclusive ranges separated by commas. Positions past the end of the
table are ignored.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		switch {
		case verbose:
			level = "debug"
		case quiet:
			level = "error"
		}
		slog.SetDefault(logging.New(cmd.ErrOrStderr(), level, "text"))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(maskCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
