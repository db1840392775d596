package main

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/droprows/internal/rowrange"
	"github.com/spf13/cobra"
)

var (
	maskRows  string
	maskCount int
)

var maskCmd = &cobra.Command{
	Use:   "mask --rows <rows> --count <n>",
	Short: "Show which rows a spec drops",
	Long: `Parse a rows spec against a table of --count rows and print the
canonical spec and the number of rows it drops.`,
	Args: cobra.NoArgs,
	RunE: runMask,
}

func init() {
	maskCmd.Flags().StringVarP(&maskRows, "rows", "r", "", "Rows spec, e.g. \"1, 3-5\"")
	maskCmd.Flags().IntVarP(&maskCount, "count", "n", 0, "Number of rows in the table")
	_ = maskCmd.MarkFlagRequired("count")
}

func runMask(cmd *cobra.Command, args []string) error {
	if maskCount < 0 {
		return errors.New("--count must not be negative")
	}

	mask, err := rowrange.Parse(maskRows, maskCount)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Rows:    %s\n", orNone(mask.String()))
	fmt.Fprintf(out, "Dropped: %d of %d\n", mask.Count(), maskCount)
	fmt.Fprintf(out, "Kept:    %d\n", maskCount-mask.Count())
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
