package stats

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fatal conditions the CLI reports. None of these
// are retried and there is no partial-output mode.
var (
	// ErrNoRuns means no directory contained a recognizable run.
	ErrNoRuns = errors.New("no run directories found")

	// ErrUnknownColumn means a user-supplied column name matched no label.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrChartMultipleRuns means chart output was requested for more than
	// one run.
	ErrChartMultipleRuns = errors.New("line charts support exactly one run")

	// ErrEmptyPrefix means aggregation was requested over zero records.
	// Every run has at least one record before aggregation is requested,
	// so hitting this indicates a bug in the caller.
	ErrEmptyPrefix = errors.New("cannot aggregate an empty record prefix")
)

// MalformedRecordError reports a log line that failed to decode. Decoding
// errors are fatal; there is no partial-result recovery.
type MalformedRecordError struct {
	Path   string // log file the line came from
	Line   int    // 1-based line number within the file
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s:%d: malformed record: %s", e.Path, e.Line, e.Reason)
}
