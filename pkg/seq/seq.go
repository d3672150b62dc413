// Package seq provides a uniform read-only view over two ordered
// collection variants: a cons-cell linked sequence and a persistent
// vector backed indexed sequence. Both variants answer the same
// operation set with identical results for in-bounds access; they
// differ only in complexity and in the rest-of-empty policy (see
// Linked.Rest).
package seq

// NotFound is returned by Position when no element satisfies the
// predicate. A failed search is a normal result, not an error.
const NotFound = -1

// Seq is the operation set shared by both variants. Sequences are
// immutable after construction and safe for concurrent use.
type Seq interface {
	// Len returns the element count. O(1) for Indexed; Linked caches
	// its length in each cell, so it is O(1) there too.
	Len() int

	// IsEmpty reports whether Len is 0. An empty sequence is a real
	// value, never a nil marker.
	IsEmpty() bool

	// First returns the element at index 0, or *OutOfRangeError if
	// the sequence is empty.
	First() (interface{}, error)

	// Rest returns a same-variant sequence of everything after index
	// 0. Linked returns the canonical empty Linked when called on an
	// empty sequence; Indexed returns *OutOfRangeError.
	Rest() (Seq, error)

	// Nth returns the element at index i, or *OutOfRangeError if i is
	// outside [0, Len).
	Nth(i int) (interface{}, error)

	// Slice returns the half-open range [start, end) as a
	// same-variant sequence. *OutOfRangeError if start or end lies
	// outside [0, Len] or start > end.
	Slice(start, end int) (Seq, error)

	// SliceFrom is Slice(start, Len()).
	SliceFrom(start int) (Seq, error)

	// Position returns the index of the first element satisfying pred,
	// or NotFound.
	Position(pred func(interface{}) bool) int

	// Append returns the concatenation of the receiver and other.
	// Neither input is mutated. The result is vector-backed.
	Append(other Seq) Seq

	// ToSlice returns a fresh slice of the elements in order.
	ToSlice() []interface{}
}

// FromSlice builds an Indexed sequence from a slice of elements.
func FromSlice(elements []interface{}) *Indexed {
	return NewIndexed(elements...)
}

// appendSeqs is the shared concatenation path: copy both sides into
// one vector-backed sequence.
func appendSeqs(a, b Seq) Seq {
	if a.IsEmpty() && b.IsEmpty() {
		return EmptyIndexed()
	}
	result := make([]interface{}, 0, a.Len()+b.Len())
	result = append(result, a.ToSlice()...)
	result = append(result, b.ToSlice()...)
	return NewIndexed(result...)
}

// Equal reports whether a and b hold equal elements in the same
// order, using eq for element comparison. Variants are not required
// to match.
func Equal(a, b Seq, eq func(x, y interface{}) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	as, bs := a.ToSlice(), b.ToSlice()
	for i := range as {
		if !eq(as[i], bs[i]) {
			return false
		}
	}
	return true
}
