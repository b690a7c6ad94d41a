// Package testutil provides shared fixtures for the stats and render test
// packages: synthetic statistics logs and run directories.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Header is the version header every synthetic log starts with.
const Header = "sestats 1"

// RecordLine formats one wire record line from 18 field values in wire
// order. Integral values print as integers so integer columns stay valid.
func RecordLine(values [18]float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if v == float64(int64(v)) {
			parts[i] = strconv.FormatInt(int64(v), 10)
		} else {
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	return strings.Join(parts, ",")
}

// StatsLog joins the header and the given record lines into log content.
func StatsLog(lines ...string) string {
	return Header + "\n" + strings.Join(lines, "\n") + "\n"
}

// WriteRun creates a run directory at dir containing an info file with the
// given content and a statistics log with the given record lines.
func WriteRun(t *testing.T, dir, info string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "info"), []byte(info), 0o644); err != nil {
		t.Fatalf("write info: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "run.stats"), []byte(StatsLog(lines...)), 0o644); err != nil {
		t.Fatalf("write run.stats: %v", err)
	}
}

// ProgressRun builds record lines whose first column (instruction count)
// walks the given values and whose remaining columns stay fixed at small
// nonzero defaults. Handy for alignment tests that only care about a
// monotone progress column.
func ProgressRun(instrs ...float64) []string {
	lines := make([]string, len(instrs))
	for i, n := range instrs {
		var rec [18]float64
		rec[0] = n           // Instructions
		rec[5] = 1           // NumStates
		rec[6] = 1048576     // MallocUsage: 1 MiB
		rec[10] = float64(i) // WallTime
		lines[i] = RecordLine(rec)
	}
	return lines
}
