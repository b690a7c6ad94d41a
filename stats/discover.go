package stats

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

// isRunDir reports whether dir directly contains both the info marker and
// a statistics log.
func isRunDir(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, InfoFileName)); err != nil {
		return false
	}
	if _, err := os.Stat(filepath.Join(dir, StatsFileName)); err != nil {
		return false
	}
	return true
}

// DiscoverRuns resolves the given root paths to run directories. A root
// that is itself a run directory is taken as-is; otherwise the tree below
// it is traversed and every run directory found is collected, in sorted
// order per root. Returns ErrNoRuns when nothing matches.
func DiscoverRuns(roots []string) ([]string, error) {
	var dirs []string
	for _, root := range roots {
		if isRunDir(root) {
			dirs = append(dirs, root)
			continue
		}
		var found []string
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logrus.Debugf("skipping %s: %v", path, err)
				return nil
			}
			if !d.IsDir() || !isRunDir(path) {
				return nil
			}
			found = append(found, path)
			return fs.SkipDir
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		dirs = append(dirs, found...)
	}
	if len(dirs) == 0 {
		return nil, ErrNoRuns
	}
	logrus.Infof("discovered %d run directories", len(dirs))
	return dirs, nil
}

// LoadRuns discovers and loads all runs under the given roots, preserving
// discovery order.
func LoadRuns(roots []string) ([]*Run, error) {
	dirs, err := DiscoverRuns(roots)
	if err != nil {
		return nil, err
	}
	runs := make([]*Run, 0, len(dirs))
	for _, dir := range dirs {
		run, err := LoadRun(dir)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}
