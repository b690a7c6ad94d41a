package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sestats/sestats/stats"
	"github.com/sestats/sestats/stats/render"
)

var (
	// CLI flags for the report view
	printAll      bool   // show every derived column
	printMore     bool   // add state and memory aggregates
	printRelTimes bool   // per-phase times as % of wall time
	printAbsTimes bool   // per-phase times in seconds
	sortBy        string // display column to sort rows by
	ascending     bool   // sort ascending instead of descending
	logLevel      string // log verbosity level

	// CLI flags for run alignment
	compareBy string // progress column to align runs on
	compareAt string // integer target or "last"

	// CLI flags for output
	tableFormat string // grid, markdown, plain, csv
	precision   int    // decimals for float columns
	chartCols   []string
	sampling    int    // records between chart samples
	outputDir   string // directory for chart files
)

// rootCmd is the single CLI command: report on one or more run directories.
var rootCmd = &cobra.Command{
	Use:   "sestats <run-dir>...",
	Short: "Summarize symbolic-execution engine statistics logs",
	Long: "sestats reads the statistics logs of one or more engine run directories " +
		"and renders a summary table, optionally aligning runs at a common progress " +
		"point, or a PNG line chart of selected columns for a single run.",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		runs, err := stats.LoadRuns(args)
		if err != nil {
			return err
		}

		if len(chartCols) > 0 {
			if len(runs) != 1 {
				return stats.ErrChartMultipleRuns
			}
			namer := &render.SequentialNamer{Dir: outputDir, Base: "chart", Ext: ".png"}
			_, err := render.RenderChart(runs[0], chartCols, sampling, namer)
			return err
		}

		mode := displayMode()
		var cmp *stats.Comparison
		if compareBy != "" {
			column, err := stats.CompareColumn(compareBy)
			if err != nil {
				return err
			}
			cmp = &stats.Comparison{Column: column, At: compareAt}
		}

		reports, err := stats.BuildReports(runs, cmp)
		if err != nil {
			return err
		}
		rows := stats.ProjectReports(reports, mode)
		var totals *stats.DisplayRow
		if len(reports) > 1 {
			row := stats.TotalsRow(reports, mode)
			totals = &row
		}
		opts := render.TableOptions{
			Format:    tableFormat,
			Precision: precision,
			SortBy:    sortBy,
			Ascending: ascending,
		}
		return render.RenderTable(os.Stdout, mode, rows, totals, opts)
	},
}

// displayMode resolves the mutually exclusive view flags to a mode.
func displayMode() stats.DisplayMode {
	switch {
	case printAll:
		return stats.ModeFull
	case printMore:
		return stats.ModeExtended
	case printRelTimes:
		return stats.ModeRelTimes
	case printAbsTimes:
		return stats.ModeAbsTimes
	default:
		return stats.ModeDefault
	}
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// init sets up CLI flags.
func init() {
	rootCmd.Flags().BoolVar(&printAll, "print-all", false, "Show every derived column")
	rootCmd.Flags().BoolVar(&printMore, "print-more", false, "Add state and memory aggregates to the default view")
	rootCmd.Flags().BoolVar(&printRelTimes, "print-rel-times", false, "Show per-phase times as percentages of wall time")
	rootCmd.Flags().BoolVar(&printAbsTimes, "print-abs-times", false, "Show per-phase times in seconds")
	rootCmd.MarkFlagsMutuallyExclusive("print-all", "print-more", "print-rel-times", "print-abs-times")

	rootCmd.Flags().StringVar(&sortBy, "sort-by", "", "Display column to sort rows by")
	rootCmd.Flags().BoolVar(&ascending, "ascending", false, "Sort ascending instead of descending")

	rootCmd.Flags().StringVar(&compareBy, "compare-by", "", "Progress column to align runs on (Instrs, Time, Queries)")
	rootCmd.Flags().StringVar(&compareAt, "compare-at", "", "Alignment target: an integer, or \"last\" for the smallest final value across runs")

	rootCmd.Flags().StringVar(&tableFormat, "table-format", render.FormatGrid, "Table format (grid, markdown, plain, csv)")
	rootCmd.Flags().IntVar(&precision, "precision", 2, "Decimals shown for float columns")

	rootCmd.Flags().StringSliceVar(&chartCols, "chart", nil, "Comma-separated column labels to render as a line chart (single run only)")
	rootCmd.Flags().IntVar(&sampling, "sampling", 10, "Records between chart samples")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory chart files are written to")

	rootCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
