package stats

// DisplayMode selects which projection of a record a report shows. Each
// mode carries a fixed label set, resolved once at startup.
type DisplayMode string

const (
	// ModeDefault shows progress, coverage, and solver share.
	ModeDefault DisplayMode = "default"
	// ModeExtended adds state and memory aggregates to the default view.
	ModeExtended DisplayMode = "extended"
	// ModeFull shows every derived column.
	ModeFull DisplayMode = "full"
	// ModeRelTimes shows per-phase times as percentages of wall time.
	ModeRelTimes DisplayMode = "rel-times"
	// ModeAbsTimes shows per-phase times in seconds.
	ModeAbsTimes DisplayMode = "abs-times"
)

// modeLabels maps each display mode to its column labels. The leading
// "Path" column holds the run label and is handled by the renderer.
var modeLabels = map[DisplayMode][]string{
	ModeDefault: {
		"Path", "Instrs", "Time(s)", "ICov(%)", "BCov(%)", "ICount", "TSolver(%)",
	},
	ModeExtended: {
		"Path", "Instrs", "Time(s)", "ICov(%)", "BCov(%)", "ICount", "TSolver(%)",
		"States", "maxStates", "avgStates", "Mem(MiB)", "maxMem(MiB)", "avgMem(MiB)",
	},
	ModeFull: {
		"Path", "Instrs", "Time(s)", "ICov(%)", "BCov(%)", "ICount", "TSolver(%)",
		"States", "maxStates", "avgStates", "Mem(MiB)", "maxMem(MiB)", "avgMem(MiB)",
		"Queries", "AvgQC", "Tcex(%)", "Tfork(%)", "TResolve(%)",
	},
	ModeRelTimes: {
		"Path", "Time(s)", "TUser(%)", "TSolver(%)", "Tcex(%)", "Tfork(%)", "TResolve(%)",
	},
	ModeAbsTimes: {
		"Path", "Time(s)", "TUser(s)", "TSolver(s)", "Tcex(s)", "Tfork(s)", "TResolve(s)",
	},
}

// Labels returns the column labels of the mode, Path column included.
func (m DisplayMode) Labels() []string {
	return modeLabels[m]
}

// IsValid reports whether m names a known display mode.
func (m DisplayMode) IsValid() bool {
	_, ok := modeLabels[m]
	return ok
}

// DisplayRow is one rendered table row: the run label plus the numeric
// values for the active mode's columns after "Path".
type DisplayRow struct {
	Label  string
	Values []float64
}

// InstructionCoverage returns covered/(covered+uncovered) as a percentage.
// A zero denominator counts as fully covered.
func InstructionCoverage(rec Record) float64 {
	covered := rec.Get(FieldCoveredInstructions)
	uncovered := rec.Get(FieldUncoveredInstructions)
	if covered+uncovered == 0 {
		return 100.0
	}
	return 100 * covered / (covered + uncovered)
}

// BranchCoverage returns (2*full+partial)/(2*total) as a percentage. A run
// with no branches counts as fully covered; that is a policy substitution,
// not an error.
func BranchCoverage(rec Record) float64 {
	total := rec.Get(FieldNumBranches)
	if total == 0 {
		return 100.0
	}
	return 100 * (2*rec.Get(FieldFullBranches) + rec.Get(FieldPartialBranches)) / (2 * total)
}

// AvgQueryConstructs returns constructs per query, guarding the zero-query
// case by dividing by one instead.
func AvgQueryConstructs(rec Record) float64 {
	queries := rec.Get(FieldNumQueries)
	if queries < 1 {
		queries = 1
	}
	return rec.Get(FieldNumQueryConstructs) / queries
}

// relTime returns the phase time as a percentage of wall time, 0 when no
// wall time has elapsed.
func relTime(rec Record, phase Field) float64 {
	wall := rec.Get(FieldWallTime)
	if wall == 0 {
		return 0
	}
	return 100 * rec.Get(phase) / wall
}

// Project maps one record plus its prefix aggregates into the row shape of
// the given mode. Pure function of its three inputs; projecting the same
// pair twice yields identical rows.
func Project(label string, rec Record, agg AggregateStats, mode DisplayMode) DisplayRow {
	var values []float64
	switch mode {
	case ModeDefault, ModeExtended, ModeFull:
		values = []float64{
			rec.Get(FieldInstructions),
			rec.Get(FieldWallTime),
			InstructionCoverage(rec),
			BranchCoverage(rec),
			rec.Get(FieldCoveredInstructions) + rec.Get(FieldUncoveredInstructions),
			relTime(rec, FieldSolverTime),
		}
		if mode == ModeExtended || mode == ModeFull {
			values = append(values,
				rec.Get(FieldNumStates),
				agg.MaxStates,
				agg.AvgStates,
				rec.Get(FieldMallocUsage)/bytesPerMiB,
				agg.MaxMem,
				agg.AvgMem,
			)
		}
		if mode == ModeFull {
			values = append(values,
				rec.Get(FieldNumQueries),
				AvgQueryConstructs(rec),
				relTime(rec, FieldCexCacheTime),
				relTime(rec, FieldForkTime),
				relTime(rec, FieldResolveTime),
			)
		}
	case ModeRelTimes:
		values = []float64{
			rec.Get(FieldWallTime),
			relTime(rec, FieldUserTime),
			relTime(rec, FieldSolverTime),
			relTime(rec, FieldCexCacheTime),
			relTime(rec, FieldForkTime),
			relTime(rec, FieldResolveTime),
		}
	case ModeAbsTimes:
		values = []float64{
			rec.Get(FieldWallTime),
			rec.Get(FieldUserTime),
			rec.Get(FieldSolverTime),
			rec.Get(FieldCexCacheTime),
			rec.Get(FieldForkTime),
			rec.Get(FieldResolveTime),
		}
	}
	return DisplayRow{Label: label, Values: values}
}
