package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// Log format: the first line of a statistics log is a version header,
// e.g. "sestats 1". Every following line carries exactly NumFields
// comma-separated numeric values in wire order. The header is validated
// and discarded; record lines are decoded lazily by the RecordStore.
const (
	formatName    = "sestats"
	formatVersion = 1
)

// ValidateHeader checks the version header line of a statistics log.
func ValidateHeader(header string) error {
	parts := strings.Fields(strings.TrimSpace(header))
	if len(parts) != 2 || parts[0] != formatName {
		return fmt.Errorf("bad header %q: want %q followed by a version", header, formatName)
	}
	version, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("bad header %q: version is not an integer", header)
	}
	if version != formatVersion {
		return fmt.Errorf("unsupported format version %d (supported: %d)", version, formatVersion)
	}
	return nil
}

// DecodeLine parses one record line into a Record. Integer positions must
// parse as base-10 integers; time positions as floats. All fields must be
// non-negative.
func DecodeLine(line string) (Record, error) {
	var rec Record
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != NumFields {
		return rec, fmt.Errorf("got %d fields, want %d", len(parts), NumFields)
	}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		var v float64
		if floatFields[i] {
			f, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return rec, fmt.Errorf("field %s: %q is not a float", Field(i), part)
			}
			v = f
		} else {
			n, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return rec, fmt.Errorf("field %s: %q is not an integer", Field(i), part)
			}
			v = float64(n)
		}
		if v < 0 {
			return rec, fmt.Errorf("field %s: negative value %s", Field(i), part)
		}
		rec[i] = v
	}
	return rec, nil
}
