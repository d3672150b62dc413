package seq

import "fmt"

// OutOfRangeError reports an index or slice range outside the valid
// bounds of a sequence. It is the only error condition the sequence
// operations produce; a failed Position search is NotFound, not an
// error.
type OutOfRangeError struct {
	Op    string // "first", "rest", "nth" or "slice"
	Start int
	End   int // only meaningful for slice
	Len   int
}

func (e *OutOfRangeError) Error() string {
	if e.Op == "slice" {
		return fmt.Sprintf("%s: bounds out of range: [%d:%d] length=%d", e.Op, e.Start, e.End, e.Len)
	}
	return fmt.Sprintf("%s: index %d out of range: length=%d", e.Op, e.Start, e.Len)
}

func errIndex(op string, i, length int) *OutOfRangeError {
	return &OutOfRangeError{Op: op, Start: i, Len: length}
}

func errBounds(op string, start, end, length int) *OutOfRangeError {
	return &OutOfRangeError{Op: op, Start: start, End: end, Len: length}
}

// checkBounds validates a half-open [start, end) range against length.
func checkBounds(op string, start, end, length int) error {
	if start < 0 || end > length || start > end {
		return errBounds(op, start, end, length)
	}
	return nil
}
