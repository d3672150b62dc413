package bind

import "fmt"

// ShapeError reports an invalid ParameterShape set: duplicate fixed
// arities, more than one rest-capture variant, a rest-capture variant
// that is not the maximum-arity variant, or a name declared twice
// inside one shape.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "invalid parameter shape: " + e.Reason
}

func shapeErrorf(format string, a ...interface{}) *ShapeError {
	return &ShapeError{Reason: fmt.Sprintf(format, a...)}
}

// ArityMismatchError reports that no shape variant fits the actual
// positional count: no fixed count equals Got and no rest-capture
// variant has a fixed count <= Got.
type ArityMismatchError struct {
	Got   int
	Fixed []int // declared fixed counts, ascending
	Rest  int   // fixed count of the rest-capture variant, or -1
}

func (e *ArityMismatchError) Error() string {
	if e.Rest >= 0 {
		return fmt.Sprintf("wrong number of arguments: got %d, variants take %v or %d+", e.Got, e.Fixed, e.Rest)
	}
	return fmt.Sprintf("wrong number of arguments: got %d, variants take %v", e.Got, e.Fixed)
}

// MalformedKeywordArgsError reports a broken keyword region: an odd
// trailing element, a key that is not a string, or (in strict mode)
// a key the shape does not recognize.
type MalformedKeywordArgsError struct {
	Odd      bool
	Trailing interface{} // the dangling element when Odd
	Key      string      // the offending key otherwise
	BadKey   interface{} // set when the key is not a string
}

func (e *MalformedKeywordArgsError) Error() string {
	switch {
	case e.Odd:
		return fmt.Sprintf("keyword arguments must come in pairs, dangling element %v", e.Trailing)
	case e.BadKey != nil:
		return fmt.Sprintf("keyword name must be a string, got %v", e.BadKey)
	default:
		return fmt.Sprintf("unrecognized keyword argument %q", e.Key)
	}
}

// PatternMismatchError reports a destructuring failure: the pattern
// expects more elements than the value provides, or a nested pattern
// met a value that is not a sequence.
type PatternMismatchError struct {
	Wanted int
	Got    int
	Value  interface{} // the non-sequence value, when that is the cause
	NonSeq bool
}

func (e *PatternMismatchError) Error() string {
	if e.NonSeq {
		return fmt.Sprintf("cannot destructure non-sequence value %v", e.Value)
	}
	return fmt.Sprintf("pattern needs at least %d elements but value has %d", e.Wanted, e.Got)
}
