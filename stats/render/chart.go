package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/sestats/sestats/stats"
)

// Namer picks output file names. Injecting it keeps the collision-avoiding
// naming strategy out of the chart logic and out of global state.
type Namer interface {
	// Next returns a path that does not currently exist.
	Next() (string, error)
}

// SequentialNamer names files base.ext, base-1.ext, base-2.ext, ... inside
// Dir, skipping names that already exist.
type SequentialNamer struct {
	Dir  string
	Base string
	Ext  string
}

func (n *SequentialNamer) Next() (string, error) {
	for i := 0; ; i++ {
		name := n.Base + n.Ext
		if i > 0 {
			name = fmt.Sprintf("%s-%d%s", n.Base, i, n.Ext)
		}
		path := filepath.Join(n.Dir, name)
		_, err := os.Stat(path)
		if err == nil {
			continue
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat chart path %s: %w", path, err)
		}
		return path, nil
	}
}

// chartSamples projects the run at record indices 0, sampling, 2*sampling,
// ..., always including the final record. Each sample re-aggregates only
// the prefix ending at its index.
func chartSamples(run *stats.Run, sampling int) ([]stats.DisplayRow, error) {
	if sampling < 1 {
		sampling = 1
	}
	n := run.Records.Len()
	var rows []stats.DisplayRow
	for i := 0; i < n; i += sampling {
		row, err := sampleAt(run, i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if (n-1)%sampling != 0 {
		row, err := sampleAt(run, n-1)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func sampleAt(run *stats.Run, i int) (stats.DisplayRow, error) {
	prefix, err := run.Records.Prefix(i)
	if err != nil {
		return stats.DisplayRow{}, err
	}
	agg, err := stats.Aggregate(prefix)
	if err != nil {
		return stats.DisplayRow{}, err
	}
	return stats.Project(run.Label(), prefix[len(prefix)-1], agg, stats.ModeFull), nil
}

// columnIndex resolves a chart column label within the full view. The Path
// column is not chartable.
func columnIndex(label string) (int, error) {
	labels := stats.ModeFull.Labels()
	for i := 1; i < len(labels); i++ {
		if labels[i] == label {
			return i - 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not a chartable column", stats.ErrUnknownColumn, label)
}

// RenderChart renders the requested columns of a single run as a PNG line
// chart, one series per column, plotted against executed instructions.
// Returns the written file path.
func RenderChart(run *stats.Run, columns []string, sampling int, namer Namer) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("no chart columns requested")
	}
	rows, err := chartSamples(run, sampling)
	if err != nil {
		return "", err
	}

	// X axis: instruction count at each sample (first full-view column).
	xs := make([]float64, len(rows))
	for i, row := range rows {
		xs[i] = row.Values[0]
	}

	series := make([]chart.Series, 0, len(columns))
	for _, col := range columns {
		idx, err := columnIndex(col)
		if err != nil {
			return "", err
		}
		ys := make([]float64, len(rows))
		for i, row := range rows {
			ys[i] = row.Values[idx]
		}
		series = append(series, chart.ContinuousSeries{Name: col, XValues: xs, YValues: ys})
	}

	ch := chart.Chart{
		Title:  run.Label(),
		Width:  1024,
		Height: 768,
		XAxis:  chart.XAxis{Name: "Instrs"},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	path, err := namer.Next()
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := ch.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	logrus.Infof("wrote chart %s (%d samples, %d series)", path, len(rows), len(series))
	return path, nil
}
