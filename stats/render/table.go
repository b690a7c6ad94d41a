// Package render formats reports for output: tables to a writer, line
// charts to PNG files.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/sestats/sestats/stats"
)

// Table formats accepted by --table-format.
const (
	FormatGrid     = "grid"
	FormatMarkdown = "markdown"
	FormatPlain    = "plain"
	FormatCSV      = "csv"
)

// TableOptions controls table rendering.
type TableOptions struct {
	Format    string
	Precision int    // decimals for float columns
	SortBy    string // display column label; empty keeps input order
	Ascending bool   // sort direction, default descending
}

// sortRows orders rows by the named display column. "Path" sorts
// lexically by run label; every other column sorts numerically. The totals
// row is appended after sorting by the caller and never participates.
func sortRows(rows []stats.DisplayRow, mode stats.DisplayMode, key string, ascending bool) error {
	labels := mode.Labels()
	col := -1
	for i, label := range labels {
		if label == key {
			col = i
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("%w: %q is not a column of the active view", stats.ErrUnknownColumn, key)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		var less bool
		if col == 0 {
			less = rows[i].Label < rows[j].Label
		} else {
			less = rows[i].Values[col-1] < rows[j].Values[col-1]
		}
		if ascending {
			return less
		}
		return !less
	})
	return nil
}

// formatValue renders one numeric cell. Integer-valued cells print without
// a fraction to keep counter columns readable.
func formatValue(v float64, precision int) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// RenderTable writes the report table: one row per run, the totals row
// last when present.
func RenderTable(w io.Writer, mode stats.DisplayMode, rows []stats.DisplayRow, totals *stats.DisplayRow, opts TableOptions) error {
	if opts.SortBy != "" {
		if err := sortRows(rows, mode, opts.SortBy, opts.Ascending); err != nil {
			return err
		}
	}

	cells := make([][]string, 0, len(rows)+1)
	for _, row := range rows {
		cells = append(cells, rowCells(row, opts.Precision))
	}
	if totals != nil {
		cells = append(cells, rowCells(*totals, opts.Precision))
	}

	if opts.Format == FormatCSV {
		cw := csv.NewWriter(w)
		if err := cw.Write(mode.Labels()); err != nil {
			return err
		}
		if err := cw.WriteAll(cells); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(mode.Labels())
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
	switch opts.Format {
	case FormatGrid, "":
		// tablewriter defaults.
	case FormatMarkdown:
		table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		table.SetCenterSeparator("|")
	case FormatPlain:
		table.SetBorder(false)
		table.SetColumnSeparator("")
		table.SetCenterSeparator("")
		table.SetRowSeparator("")
		table.SetHeaderLine(false)
	default:
		return fmt.Errorf("unknown table format %q", opts.Format)
	}
	table.AppendBulk(cells)
	table.Render()
	return nil
}

func rowCells(row stats.DisplayRow, precision int) []string {
	cells := make([]string, 0, len(row.Values)+1)
	cells = append(cells, row.Label)
	for _, v := range row.Values {
		cells = append(cells, formatValue(v, precision))
	}
	return cells
}
