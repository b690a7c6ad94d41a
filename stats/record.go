// Package stats reads statistics logs written by a symbolic-execution engine
// and turns them into summary reports. This package holds the core data
// types and algorithms; rendering lives in stats/render.
package stats

// Field indexes a column within a Record. Field meaning is fixed by
// position in the log line; records are index-addressed, not named.
type Field int

const (
	FieldInstructions Field = iota
	FieldFullBranches
	FieldPartialBranches
	FieldNumBranches
	FieldUserTime
	FieldNumStates
	FieldMallocUsage
	FieldNumQueries
	FieldNumQueryConstructs
	FieldNumObjects
	FieldWallTime
	FieldCoveredInstructions
	FieldUncoveredInstructions
	FieldQueryTime
	FieldSolverTime
	FieldCexCacheTime
	FieldForkTime
	FieldResolveTime

	// NumFields is the fixed arity of a Record.
	NumFields = 18
)

// fieldNames gives the wire-order column names, used for error messages
// and for resolving --compare-by keys.
var fieldNames = [NumFields]string{
	"Instructions",
	"FullBranches",
	"PartialBranches",
	"NumBranches",
	"UserTime",
	"NumStates",
	"MallocUsage",
	"NumQueries",
	"NumQueryConstructs",
	"NumObjects",
	"WallTime",
	"CoveredInstructions",
	"UncoveredInstructions",
	"QueryTime",
	"SolverTime",
	"CexCacheTime",
	"ForkTime",
	"ResolveTime",
}

// String returns the wire-order column name of f.
func (f Field) String() string {
	if f < 0 || f >= NumFields {
		return "unknown"
	}
	return fieldNames[f]
}

// floatFields marks the positions parsed as floating-point seconds.
// Every other position is an integer counter or byte count.
var floatFields = [NumFields]bool{
	FieldUserTime:     true,
	FieldWallTime:     true,
	FieldQueryTime:    true,
	FieldSolverTime:   true,
	FieldCexCacheTime: true,
	FieldForkTime:     true,
	FieldResolveTime:  true,
}

// Record is one snapshot line from a run's statistics log: an ordered tuple
// of 18 numeric fields, immutable once parsed. Integer-valued fields are
// stored as floats; exactness is not required beyond displayed rounding.
type Record [NumFields]float64

// Get returns the value at field f.
func (r Record) Get(f Field) float64 {
	return r[f]
}

// Int returns the value at field f truncated to an integer. Progress
// columns (Instructions, WallTime, NumQueries) are compared as integers by
// the alignment search.
func (r Record) Int(f Field) int64 {
	return int64(r[f])
}

// Add returns the element-wise sum of r and other. Used to build the
// pseudo-record behind the totals row.
func (r Record) Add(other Record) Record {
	var sum Record
	for i := range r {
		sum[i] = r[i] + other[i]
	}
	return sum
}
