package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sestats/sestats/internal/testutil"
)

func runWithInstrs(label string, instrs ...float64) *Run {
	return &Run{
		Dir:     label,
		Records: NewRecordStore(label+"/run.stats", testutil.ProgressRun(instrs...)),
	}
}

func TestCompareColumn_AcceptsProgressColumnsOnly(t *testing.T) {
	for _, key := range []string{"Instrs", "Instructions", "Time", "WallTime", "Queries", "NumQueries"} {
		if _, err := CompareColumn(key); err != nil {
			t.Errorf("key %q: unexpected error %v", key, err)
		}
	}
	_, err := CompareColumn("ICov(%)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownColumn))
}

func TestBuildReports_NoComparison_UsesFinalRecord(t *testing.T) {
	runs := []*Run{runWithInstrs("a", 100, 200, 300)}
	reports, err := BuildReports(runs, nil)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 300.0, reports[0].Record.Get(FieldInstructions))
	// Full-sequence aggregation: single synthetic memory value throughout.
	assert.Equal(t, reports[0].Stats.MaxMem, reports[0].Stats.AvgMem)
}

func TestBuildReports_CompareAtLast_AlignsAtMinimumFinalValue(t *testing.T) {
	// GIVEN two runs with final instruction counts 500 and 800
	short := runWithInstrs("short", 100, 300, 500)
	long := runWithInstrs("long", 200, 400, 600, 800)

	// WHEN compared by Instrs at "last"
	cmp := &Comparison{Column: FieldInstructions, At: CompareAtLast}
	reports, err := BuildReports([]*Run{short, long}, cmp)
	require.NoError(t, err)

	// THEN the target is min(500, 800) = 500: the short run clamps to its
	// final record, the long run stops at the first record exceeding 500.
	assert.Equal(t, 500.0, reports[0].Record.Get(FieldInstructions))
	assert.Equal(t, 600.0, reports[1].Record.Get(FieldInstructions))
}

func TestBuildReports_ExplicitTarget(t *testing.T) {
	run := runWithInstrs("a", 100, 300, 500)
	cmp := &Comparison{Column: FieldInstructions, At: "150"}
	reports, err := BuildReports([]*Run{run}, cmp)
	require.NoError(t, err)
	assert.Equal(t, 300.0, reports[0].Record.Get(FieldInstructions))
}

func TestBuildReports_EmptyCompareAt_DefaultsToFirstRunFinal(t *testing.T) {
	first := runWithInstrs("first", 100, 200)
	second := runWithInstrs("second", 50, 150, 250, 350)
	cmp := &Comparison{Column: FieldInstructions, At: ""}
	reports, err := BuildReports([]*Run{first, second}, cmp)
	require.NoError(t, err)

	// Target is the first run's final value, 200.
	assert.Equal(t, 200.0, reports[0].Record.Get(FieldInstructions))
	assert.Equal(t, 250.0, reports[1].Record.Get(FieldInstructions))
}

func TestBuildReports_BadTargetValue_Errors(t *testing.T) {
	run := runWithInstrs("a", 100)
	cmp := &Comparison{Column: FieldInstructions, At: "soon"}
	_, err := BuildReports([]*Run{run}, cmp)
	require.Error(t, err)
}

func TestTotalsRow_SumsRecordsAndStatsBeforeProjecting(t *testing.T) {
	var recA, recB Record
	recA[FieldInstructions] = 100
	recA[FieldCoveredInstructions] = 10
	recA[FieldUncoveredInstructions] = 20
	recB[FieldInstructions] = 50
	recB[FieldCoveredInstructions] = 30
	recB[FieldUncoveredInstructions] = 40

	reports := []RunReport{
		{Run: &Run{Dir: "a"}, Record: recA, Stats: AggregateStats{MaxMem: 1, AvgMem: 1, MaxStates: 2, AvgStates: 2}},
		{Run: &Run{Dir: "b"}, Record: recB, Stats: AggregateStats{MaxMem: 3, AvgMem: 2, MaxStates: 4, AvgStates: 3}},
	}
	row := TotalsRow(reports, ModeDefault)

	assert.Equal(t, "Total (2)", row.Label)
	labels := ModeDefault.Labels()
	byLabel := map[string]float64{}
	for i, v := range row.Values {
		byLabel[labels[i+1]] = v
	}
	assert.Equal(t, 150.0, byLabel["Instrs"])
	assert.Equal(t, 100.0, byLabel["ICount"])
	// Coverage of the summed pseudo-record, not the sum of coverages.
	assert.InDelta(t, 100.0*40/100, byLabel["ICov(%)"], 1e-9)
}

func TestProjectReports_PreservesInputOrder(t *testing.T) {
	runs := []*Run{runWithInstrs("b", 10), runWithInstrs("a", 20)}
	reports, err := BuildReports(runs, nil)
	require.NoError(t, err)
	rows := ProjectReports(reports, ModeDefault)
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].Label)
	assert.Equal(t, "a", rows[1].Label)
}
