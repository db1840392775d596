package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/droprows/internal/rowrange"
)

const fruitCSV = "name,color\napple,red\nbanana,yellow\ncherry,red\ndate,brown\n"

// testCmd returns a command wired to in-memory stdin/stdout.
func testCmd(stdin string) (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	return cmd, &out
}

func resetApplyFlags() {
	applyRows, applyParamsFile, applyOutput = "", "", ""
	applyCategories = nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunApply_Stdin(t *testing.T) {
	resetApplyFlags()
	applyRows = "1, 3"

	cmd, out := testCmd(fruitCSV)
	require.NoError(t, runApply(cmd, nil))
	assert.Equal(t, "name,color\nbanana,yellow\ndate,brown\n", out.String())
}

func TestRunApply_FileToFile(t *testing.T) {
	resetApplyFlags()
	in := writeFile(t, "in.csv", fruitCSV)
	applyRows = "2-4"
	applyOutput = filepath.Join(t.TempDir(), "out.csv")

	cmd, out := testCmd("")
	require.NoError(t, runApply(cmd, []string{in}))
	assert.Empty(t, out.String())

	got, err := os.ReadFile(applyOutput)
	require.NoError(t, err)
	assert.Equal(t, "name,color\napple,red\n", string(got))
}

func TestRunApply_LegacyParamsFile(t *testing.T) {
	resetApplyFlags()
	applyParamsFile = writeFile(t, "step.yaml", "version: 1\nfirst_row: 2\nlast_row: 3\n")

	cmd, out := testCmd(fruitCSV)
	require.NoError(t, runApply(cmd, nil))
	assert.Equal(t, "name,color\napple,red\ndate,brown\n", out.String())
}

func TestRunApply_ParseError(t *testing.T) {
	resetApplyFlags()
	applyRows = "3-1"

	cmd, out := testCmd(fruitCSV)
	err := runApply(cmd, nil)
	require.Error(t, err)
	assert.Empty(t, out.String())

	var pe *rowrange.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, rowrange.BackwardsRange, pe.Kind)
	assert.Equal(t, "3-1", pe.Value)
}

func TestRunApply_MissingInput(t *testing.T) {
	resetApplyFlags()

	cmd, _ := testCmd("")
	err := runApply(cmd, []string{filepath.Join(t.TempDir(), "missing.csv")})
	assert.ErrorContains(t, err, "open input")
}

func TestApplyCmd_RowsAndParamsExclusive(t *testing.T) {
	resetApplyFlags()
	defer resetApplyFlags()

	rootCmd.SetArgs([]string{"apply", "--rows", "1", "--params", "x.yaml"})
	rootCmd.SetIn(strings.NewReader(fruitCSV))
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "none of the others can be")
}
