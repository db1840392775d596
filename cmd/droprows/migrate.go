package main

import (
	"github.com/JonMunkholm/droprows/internal/params"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <params.yaml>",
	Short: "Print params in the current version",
	Long: `Read a params file of any version and print it in the current shape.

Version 1 params store first_row and last_row; they become a rows spec
"first-last". A non-empty rows value always takes precedence.`,
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	stored, err := readParamsFile(args[0])
	if err != nil {
		return err
	}
	return writeParams(cmd.OutOrStdout(), params.Migrate(stored).Stored())
}
