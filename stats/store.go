package stats

// RecordStore gives indexed, length-queryable access to the record lines of
// one statistics log. Lines are decoded on first access and the decoded
// Record is memoized in place, so repeated reads of the same index never
// re-decode. The store is not safe for concurrent use; each Run owns its
// store privately and the reference behavior is strictly sequential.
type RecordStore struct {
	path    string // log file path, for error reporting
	lines   []string
	records []Record
	decoded []bool
}

// NewRecordStore wraps the raw record lines of a log (version header
// already stripped). No decoding happens until At is called.
func NewRecordStore(path string, lines []string) *RecordStore {
	return &RecordStore{
		path:    path,
		lines:   lines,
		records: make([]Record, len(lines)),
		decoded: make([]bool, len(lines)),
	}
}

// Len returns the number of records in the log.
func (s *RecordStore) Len() int {
	return len(s.lines)
}

// At returns the record at index i, decoding and memoizing it on first
// access. A malformed line yields a MalformedRecordError; the error is
// stable across repeated reads of the same index.
func (s *RecordStore) At(i int) (Record, error) {
	if s.decoded[i] {
		return s.records[i], nil
	}
	rec, err := DecodeLine(s.lines[i])
	if err != nil {
		// +2: one for 1-based numbering, one for the header line.
		return Record{}, &MalformedRecordError{Path: s.path, Line: i + 2, Reason: err.Error()}
	}
	s.records[i] = rec
	s.decoded[i] = true
	return rec, nil
}

// Prefix decodes and returns records [0, end]. The inclusive bound matches
// how alignment points are consumed: the matched record belongs to its own
// prefix.
func (s *RecordStore) Prefix(end int) ([]Record, error) {
	out := make([]Record, 0, end+1)
	for i := 0; i <= end; i++ {
		rec, err := s.At(i)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
