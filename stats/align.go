package stats

import (
	"fmt"
	"strconv"
)

// CompareAtLast is the compare-at token meaning "the minimum final-column
// value across all runs", so every run is guaranteed to have reached the
// target.
const CompareAtLast = "last"

// compareColumns maps accepted --compare-by keys to progress columns. Only
// the monotonically non-decreasing columns qualify; the alignment search's
// contract is undefined on anything else. Display shorthands are accepted
// alongside wire names.
var compareColumns = map[string]Field{
	"Instructions": FieldInstructions,
	"Instrs":       FieldInstructions,
	"WallTime":     FieldWallTime,
	"Time":         FieldWallTime,
	"NumQueries":   FieldNumQueries,
	"Queries":      FieldNumQueries,
}

// CompareColumn resolves a user-supplied compare key to its progress field.
func CompareColumn(key string) (Field, error) {
	field, ok := compareColumns[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a comparable progress column", ErrUnknownColumn, key)
	}
	return field, nil
}

// Comparison describes an alignment request: compare every run at the
// point where Column first exceeds the resolved target.
type Comparison struct {
	Column Field
	// At is either a base-10 integer, CompareAtLast, or empty. Empty
	// defaults to the first run's final value of Column.
	At string
}

// resolveTarget turns the compare-at request into a concrete integer
// target, reading each run's final record as needed.
func (c Comparison) resolveTarget(runs []*Run) (int64, error) {
	finalValue := func(run *Run) (int64, error) {
		rec, err := run.Records.At(run.Records.Len() - 1)
		if err != nil {
			return 0, err
		}
		return rec.Int(c.Column), nil
	}

	switch c.At {
	case CompareAtLast:
		min, err := finalValue(runs[0])
		if err != nil {
			return 0, err
		}
		for _, run := range runs[1:] {
			v, err := finalValue(run)
			if err != nil {
				return 0, err
			}
			if v < min {
				min = v
			}
		}
		return min, nil
	case "":
		return finalValue(runs[0])
	default:
		target, err := strconv.ParseInt(c.At, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("compare-at value %q is neither an integer nor %q", c.At, CompareAtLast)
		}
		return target, nil
	}
}

// RunReport is one run's contribution to a report: the record selected for
// display (the last one, or the alignment point) together with the
// aggregates of the prefix ending at it.
type RunReport struct {
	Run    *Run
	Record Record
	Stats  AggregateStats
}

// reportAt builds a RunReport from the prefix ending at index end.
func reportAt(run *Run, end int) (RunReport, error) {
	prefix, err := run.Records.Prefix(end)
	if err != nil {
		return RunReport{}, err
	}
	agg, err := Aggregate(prefix)
	if err != nil {
		return RunReport{}, err
	}
	return RunReport{Run: run, Record: prefix[len(prefix)-1], Stats: agg}, nil
}

// BuildReports selects and aggregates a record for every run. Without a
// comparison each run contributes its full sequence and final record; with
// one, each run contributes the prefix up to its alignment point.
func BuildReports(runs []*Run, cmp *Comparison) ([]RunReport, error) {
	reports := make([]RunReport, 0, len(runs))

	if cmp == nil {
		for _, run := range runs {
			report, err := reportAt(run, run.Records.Len()-1)
			if err != nil {
				return nil, err
			}
			reports = append(reports, report)
		}
		return reports, nil
	}

	target, err := cmp.resolveTarget(runs)
	if err != nil {
		return nil, err
	}
	column := func(rec Record) int64 { return rec.Int(cmp.Column) }
	for _, run := range runs {
		idx, err := AlignmentIndex(run.Records, column, target)
		if err != nil {
			return nil, err
		}
		report, err := reportAt(run, idx)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// TotalsRow sums the reports' records and aggregates element-wise and
// re-projects the summed pseudo-pair. Summing percentage-like and averaged
// fields is an approximation kept for compatibility with the established
// report shape; do not "fix" it.
func TotalsRow(reports []RunReport, mode DisplayMode) DisplayRow {
	var rec Record
	var agg AggregateStats
	for _, report := range reports {
		rec = rec.Add(report.Record)
		agg = agg.Add(report.Stats)
	}
	label := fmt.Sprintf("Total (%d)", len(reports))
	return Project(label, rec, agg, mode)
}

// ProjectReports projects every report under the given mode, in input
// order.
func ProjectReports(reports []RunReport, mode DisplayMode) []DisplayRow {
	rows := make([]DisplayRow, 0, len(reports))
	for _, report := range reports {
		rows = append(rows, Project(report.Run.Label(), report.Record, report.Stats, mode))
	}
	return rows
}
