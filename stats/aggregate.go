package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const bytesPerMiB = 1024 * 1024

// AggregateStats summarizes a prefix of a run's records: running maximum
// and average of the two monotonically-sampled resource metrics. Memory is
// reported in MiB. Recomputed per requested prefix rather than updated
// incrementally; prefixes are short enough that re-aggregation is cheap,
// and charting requests each prefix exactly once per sample.
type AggregateStats struct {
	MaxMem    float64
	AvgMem    float64
	MaxStates float64
	AvgStates float64
}

// Add returns the element-wise sum of two AggregateStats. Feeds the totals
// pseudo-row together with Record.Add.
func (a AggregateStats) Add(other AggregateStats) AggregateStats {
	return AggregateStats{
		MaxMem:    a.MaxMem + other.MaxMem,
		AvgMem:    a.AvgMem + other.AvgMem,
		MaxStates: a.MaxStates + other.MaxStates,
		AvgStates: a.AvgStates + other.AvgStates,
	}
}

// Aggregate computes AggregateStats over a non-empty record prefix.
// Returns ErrEmptyPrefix for zero records; callers always aggregate after
// at least one record exists, so that is a caller bug.
func Aggregate(records []Record) (AggregateStats, error) {
	if len(records) == 0 {
		return AggregateStats{}, ErrEmptyPrefix
	}
	mem := make([]float64, len(records))
	states := make([]float64, len(records))
	for i, rec := range records {
		mem[i] = rec.Get(FieldMallocUsage) / bytesPerMiB
		states[i] = rec.Get(FieldNumStates)
	}
	return AggregateStats{
		MaxMem:    floats.Max(mem),
		AvgMem:    stat.Mean(mem, nil),
		MaxStates: floats.Max(states),
		AvgStates: stat.Mean(states, nil),
	}, nil
}
