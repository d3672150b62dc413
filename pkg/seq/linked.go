package seq

// Linked is the cons-cell variant. Each cell holds a head element and
// a tail; the chain always terminates in the canonical empty cell, so
// a tail is never nil. Prepend is O(1), random access is O(n).
type Linked struct {
	head   interface{}
	tail   *Linked
	length int
}

// The zero Linked is the empty sequence; every chain bottoms out here.
var emptyLinked = &Linked{}

// EmptyLinked returns the canonical empty Linked sequence.
func EmptyLinked() *Linked {
	return emptyLinked
}

// NewLinked builds a Linked sequence holding the given elements.
func NewLinked(elements ...interface{}) *Linked {
	l := emptyLinked
	for i := len(elements) - 1; i >= 0; i-- {
		l = l.Prepend(elements[i])
	}
	return l
}

// Prepend returns a new Linked with val in front. The receiver is
// shared as the tail, not copied.
func (l *Linked) Prepend(val interface{}) *Linked {
	return &Linked{head: val, tail: l, length: l.length + 1}
}

func (l *Linked) Len() int { return l.length }

func (l *Linked) IsEmpty() bool { return l.length == 0 }

func (l *Linked) First() (interface{}, error) {
	if l.length == 0 {
		return nil, errIndex("first", 0, 0)
	}
	return l.head, nil
}

// Rest of an empty Linked is the empty Linked, never an error and
// never nil. "No more elements" is an empty sequence here, not an
// absent value.
func (l *Linked) Rest() (Seq, error) {
	if l.length == 0 {
		return emptyLinked, nil
	}
	return l.tail, nil
}

func (l *Linked) Nth(i int) (interface{}, error) {
	if i < 0 || i >= l.length {
		return nil, errIndex("nth", i, l.length)
	}
	curr := l
	for ; i > 0; i-- {
		curr = curr.tail
	}
	return curr.head, nil
}

func (l *Linked) Slice(start, end int) (Seq, error) {
	if err := checkBounds("slice", start, end, l.length); err != nil {
		return nil, err
	}
	// Tail slicing shares structure instead of copying.
	if end == l.length {
		curr := l
		for i := 0; i < start; i++ {
			curr = curr.tail
		}
		return curr, nil
	}
	elements := make([]interface{}, 0, end-start)
	curr := l
	for i := 0; i < end; i++ {
		if i >= start {
			elements = append(elements, curr.head)
		}
		curr = curr.tail
	}
	return NewLinked(elements...), nil
}

func (l *Linked) SliceFrom(start int) (Seq, error) {
	return l.Slice(start, l.length)
}

func (l *Linked) Position(pred func(interface{}) bool) int {
	i := 0
	for curr := l; curr.length > 0; curr = curr.tail {
		if pred(curr.head) {
			return i
		}
		i++
	}
	return NotFound
}

func (l *Linked) Append(other Seq) Seq {
	return appendSeqs(l, other)
}

func (l *Linked) ToSlice() []interface{} {
	result := make([]interface{}, 0, l.length)
	for curr := l; curr.length > 0; curr = curr.tail {
		result = append(result, curr.head)
	}
	return result
}
