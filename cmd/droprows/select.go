package main

import (
	"errors"

	"github.com/JonMunkholm/droprows/internal/params"
	"github.com/JonMunkholm/droprows/internal/rowrange"
	"github.com/spf13/cobra"
)

var (
	selectParamsFile    string
	selectAdd           string
	selectFromOutput    bool
	selectMaxMaskLength int
)

var selectCmd = &cobra.Command{
	Use:   "select --params <params.yaml> --add <rows>",
	Short: "Add a row selection to params",
	Long: `Merge a row selection into a params file and print the result.

By default --add numbers rows of the step's input table and is unioned
with the rows already dropped. With --from-output it numbers rows of the
step's output, as seen after the current rows are dropped.`,
	Args: cobra.NoArgs,
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringVarP(&selectParamsFile, "params", "p", "", "YAML params file (any version)")
	selectCmd.Flags().StringVarP(&selectAdd, "add", "a", "", "Rows to add, e.g. \"2, 7-9\"")
	selectCmd.Flags().BoolVar(&selectFromOutput, "from-output", false, "Number --add rows by the output table")
	selectCmd.Flags().IntVar(&selectMaxMaskLength, "max-rows", rowrange.DefaultMaxMaskLength, "Ignore selected rows past this position")
	_ = selectCmd.MarkFlagRequired("params")
}

func runSelect(cmd *cobra.Command, args []string) error {
	if selectAdd == "" {
		return errors.New("--add is required")
	}

	stored, err := readParamsFile(selectParamsFile)
	if err != nil {
		return err
	}

	merged, err := params.AddSelectedRows(stored, selectAdd, !selectFromOutput, selectMaxMaskLength)
	if err != nil {
		return err
	}
	return writeParams(cmd.OutOrStdout(), merged.Stored())
}
