package stats

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// InfoFileName marks a directory as a run directory.
	InfoFileName = "info"
	// StatsFileName is the statistics log inside a run directory.
	StatsFileName = "run.stats"
)

// RunInfo is the optional YAML metadata carried by a run's info file.
// Engines that write freeform text into info still work: an unparseable
// info file is treated as an opaque marker and every field stays empty.
type RunInfo struct {
	Label   string `yaml:"label"`
	Engine  string `yaml:"engine"`
	Started string `yaml:"started"`
}

// Run pairs one engine execution's directory with the lazily-decoded
// sequence of its snapshot records. Created once per input directory and
// never mutated afterwards, except for the store's internal memoization.
type Run struct {
	Dir     string
	Info    RunInfo
	Records *RecordStore
}

// Label returns the display name for the run: the info metadata label when
// present, the directory path otherwise.
func (r *Run) Label() string {
	if r.Info.Label != "" {
		return r.Info.Label
	}
	return r.Dir
}

// LoadRun reads a run directory's statistics log, validates its version
// header, and parses optional YAML metadata from the info file. Record
// lines are held raw; decoding is deferred to first access.
func LoadRun(dir string) (*Run, error) {
	statsPath := filepath.Join(dir, StatsFileName)
	f, err := os.Open(statsPath)
	if err != nil {
		return nil, fmt.Errorf("open statistics log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", statsPath, err)
		}
		return nil, fmt.Errorf("%s: empty log, missing version header", statsPath)
	}
	if err := ValidateHeader(scanner.Text()); err != nil {
		return nil, fmt.Errorf("%s: %w", statsPath, err)
	}

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", statsPath, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: log has no records", statsPath)
	}

	run := &Run{Dir: dir, Records: NewRecordStore(statsPath, lines)}
	run.Info = loadRunInfo(filepath.Join(dir, InfoFileName))
	logrus.Debugf("loaded run %s: %d records", run.Label(), run.Records.Len())
	return run, nil
}

// loadRunInfo parses the info file as YAML metadata. Freeform info files
// (or read errors) degrade to empty metadata rather than failing the run.
func loadRunInfo(path string) RunInfo {
	var info RunInfo
	data, err := os.ReadFile(path)
	if err != nil {
		return info
	}
	if err := yaml.Unmarshal(data, &info); err != nil {
		logrus.Debugf("info file %s is not YAML metadata, using directory path as label", path)
		return RunInfo{}
	}
	return info
}
