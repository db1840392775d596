package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/droprows/internal/config"
	"github.com/JonMunkholm/droprows/internal/core"
	"github.com/JonMunkholm/droprows/internal/params"
	"github.com/JonMunkholm/droprows/internal/store"
	"github.com/JonMunkholm/droprows/internal/table"
	"github.com/spf13/cobra"
)

var (
	applyRows       string
	applyParamsFile string
	applyCategories []string
	applyOutput     string
)

var applyCmd = &cobra.Command{
	Use:   "apply [input.csv]",
	Short: "Drop rows from a CSV file",
	Long: `Drop the rows selected by --rows (or a params file) from a CSV table.

The table is read from the named file or stdin and written to --output or
stdout. Columns named with --category are treated as categorical, and
categories left without rows are removed from them.`,
	Example: `  droprows apply --rows "1, 3-5" data.csv
  droprows apply --params step.yaml -o out.csv < data.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyRows, "rows", "r", "", "Rows to drop, e.g. \"1, 3-5\"")
	applyCmd.Flags().StringVarP(&applyParamsFile, "params", "p", "", "YAML params file (any version)")
	applyCmd.Flags().StringSliceVarP(&applyCategories, "category", "c", nil, "Categorical column name (repeatable)")
	applyCmd.Flags().StringVarP(&applyOutput, "output", "o", "", "Output file (default: stdout)")
	applyCmd.MarkFlagsMutuallyExclusive("rows", "params")
}

func runApply(cmd *cobra.Command, args []string) error {
	stored := params.Stored{Rows: applyRows}
	if applyParamsFile != "" {
		var err error
		if stored, err = readParamsFile(applyParamsFile); err != nil {
			return err
		}
	}

	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	t, err := table.ReadCSV(in, table.ReadOptions{Categories: applyCategories})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc := core.NewService(store.NewMemory(), config.RenderConfig{MaxConcurrent: 1})
	out, err := svc.RenderStored(ctx, t, stored)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), applyOutput, out)
}

func writeOutput(stdout io.Writer, path string, t *table.Table) (err error) {
	if path == "" {
		return table.WriteCSV(stdout, t)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return table.WriteCSV(f, t)
}
