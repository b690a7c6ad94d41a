package stats

// AlignmentIndex binary-searches the store for the smallest index i such
// that column(record[i]) > target, clamped to the last index when no record
// exceeds the target. The column accessor must be monotonically
// non-decreasing over the sequence (the progress columns are); behavior is
// undefined otherwise. O(log n) decodes.
func AlignmentIndex(store *RecordStore, column func(Record) int64, target int64) (int, error) {
	lo, hi := 0, store.Len()-1
	for lo < hi {
		mid := (lo + hi) / 2
		rec, err := store.At(mid)
		if err != nil {
			return 0, err
		}
		if column(rec) <= target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, nil
}
