package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sestats/sestats/stats"
	"github.com/sestats/sestats/internal/testutil"
)

// resetFlags restores the package-level flag state between executions;
// cobra only overwrites flags that appear in the new argument list.
func resetFlags() {
	printAll, printMore, printRelTimes, printAbsTimes = false, false, false, false
	sortBy, compareBy, compareAt = "", "", ""
	ascending = false
	tableFormat = "grid"
	precision = 2
	chartCols = nil
	sampling = 10
	outputDir = "."
	logLevel = "error"
}

// execute runs the root command with args and returns captured stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	rootCmd.SetArgs(args)

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := rootCmd.Execute()

	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String(), err
}

func TestRoot_DefaultReport_OneRowPerRunPlusTotals(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRun(t, filepath.Join(root, "a"), "label: alpha\n", testutil.ProgressRun(100, 200)...)
	testutil.WriteRun(t, filepath.Join(root, "b"), "label: beta\n", testutil.ProgressRun(50, 150, 250)...)

	out, err := execute(t, "--table-format", "csv", root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4, "header, two runs, totals")
	assert.Contains(t, lines[0], "Instrs")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
	assert.Contains(t, lines[3], "Total (2)")
}

func TestRoot_SingleRun_NoTotalsRow(t *testing.T) {
	// os.MkdirTemp rather than t.TempDir: the latter embeds the test name
	// (which contains "Total") in the path echoed by the Path column.
	root, err := os.MkdirTemp("", "single-run")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(root) })
	testutil.WriteRun(t, filepath.Join(root, "solo"), "", testutil.ProgressRun(10)...)

	out, err := execute(t, "--table-format", "csv", root)
	require.NoError(t, err)
	assert.NotContains(t, out, "Total")
}

func TestRoot_CompareAtLast_AlignsRuns(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRun(t, filepath.Join(root, "short"), "label: short\n", testutil.ProgressRun(100, 300, 500)...)
	testutil.WriteRun(t, filepath.Join(root, "long"), "label: long\n", testutil.ProgressRun(200, 400, 600, 800)...)

	out, err := execute(t, "--table-format", "csv", "--compare-by", "Instrs", "--compare-at", "last", root)
	require.NoError(t, err)
	assert.Contains(t, out, "short,500")
	assert.Contains(t, out, "long,600")
}

func TestRoot_NoRunsFound_Errors(t *testing.T) {
	_, err := execute(t, t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, stats.ErrNoRuns)
}

func TestRoot_ChartWithMultipleRuns_Errors(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRun(t, filepath.Join(root, "a"), "", testutil.ProgressRun(10)...)
	testutil.WriteRun(t, filepath.Join(root, "b"), "", testutil.ProgressRun(20)...)

	_, err := execute(t, "--chart", "Instrs", root)
	require.Error(t, err)
	assert.ErrorIs(t, err, stats.ErrChartMultipleRuns)
}

func TestRoot_Chart_WritesImage(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRun(t, filepath.Join(root, "solo"), "", testutil.ProgressRun(10, 20, 30, 40)...)
	outDir := t.TempDir()

	_, err := execute(t, "--chart", "Instrs,Mem(MiB)", "--sampling", "1", "--output-dir", outDir, root)
	require.NoError(t, err)

	if _, statErr := os.Stat(filepath.Join(outDir, "chart.png")); statErr != nil {
		t.Fatalf("expected chart.png in output dir: %v", statErr)
	}
}

func TestRoot_UnknownSortColumn_Errors(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRun(t, filepath.Join(root, "a"), "", testutil.ProgressRun(10)...)

	_, err := execute(t, "--sort-by", "Bogus", root)
	require.Error(t, err)
	assert.ErrorIs(t, err, stats.ErrUnknownColumn)
}

func TestDisplayMode_FlagResolution(t *testing.T) {
	resetFlags()
	assert.Equal(t, stats.ModeDefault, displayMode())
	printMore = true
	assert.Equal(t, stats.ModeExtended, displayMode())
	printMore = false
	printAll = true
	assert.Equal(t, stats.ModeFull, displayMode())
	printAll = false
	printRelTimes = true
	assert.Equal(t, stats.ModeRelTimes, displayMode())
	printRelTimes = false
	printAbsTimes = true
	assert.Equal(t, stats.ModeAbsTimes, displayMode())
}
