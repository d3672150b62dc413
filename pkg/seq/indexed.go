package seq

import "github.com/benbjohnson/immutable"

// Indexed is the random-access variant, backed by a persistent
// vector. Len, Nth and Slice are O(1) (Slice shares structure);
// construction from n elements is O(n).
type Indexed struct {
	list *immutable.List
}

var emptyIndexed = &Indexed{list: immutable.NewList()}

// EmptyIndexed returns the canonical empty Indexed sequence.
func EmptyIndexed() *Indexed {
	return emptyIndexed
}

// NewIndexed builds an Indexed sequence holding the given elements.
func NewIndexed(elements ...interface{}) *Indexed {
	if len(elements) == 0 {
		return emptyIndexed
	}
	b := immutable.NewListBuilder(immutable.NewList())
	for _, v := range elements {
		b.Append(v)
	}
	return &Indexed{list: b.List()}
}

func (s *Indexed) Len() int { return s.list.Len() }

func (s *Indexed) IsEmpty() bool { return s.list.Len() == 0 }

func (s *Indexed) First() (interface{}, error) {
	if s.list.Len() == 0 {
		return nil, errIndex("first", 0, 0)
	}
	return s.list.Get(0), nil
}

// Rest of an empty Indexed is an error; only the Linked variant
// defines rest-of-empty as empty.
func (s *Indexed) Rest() (Seq, error) {
	n := s.list.Len()
	if n == 0 {
		return nil, errIndex("rest", 0, 0)
	}
	return &Indexed{list: s.list.Slice(1, n)}, nil
}

func (s *Indexed) Nth(i int) (interface{}, error) {
	if i < 0 || i >= s.list.Len() {
		return nil, errIndex("nth", i, s.list.Len())
	}
	return s.list.Get(i), nil
}

func (s *Indexed) Slice(start, end int) (Seq, error) {
	if err := checkBounds("slice", start, end, s.list.Len()); err != nil {
		return nil, err
	}
	if start == end {
		return emptyIndexed, nil
	}
	return &Indexed{list: s.list.Slice(start, end)}, nil
}

func (s *Indexed) SliceFrom(start int) (Seq, error) {
	return s.Slice(start, s.list.Len())
}

func (s *Indexed) Position(pred func(interface{}) bool) int {
	itr := s.list.Iterator()
	for !itr.Done() {
		i, v := itr.Next()
		if pred(v) {
			return i
		}
	}
	return NotFound
}

func (s *Indexed) Append(other Seq) Seq {
	// Fast path when both sides are vectors: extend a builder seeded
	// with the receiver's vector.
	if o, ok := other.(*Indexed); ok {
		if s.list.Len() == 0 && o.list.Len() == 0 {
			return emptyIndexed
		}
		b := immutable.NewListBuilder(s.list)
		itr := o.list.Iterator()
		for !itr.Done() {
			_, v := itr.Next()
			b.Append(v)
		}
		return &Indexed{list: b.List()}
	}
	return appendSeqs(s, other)
}

func (s *Indexed) ToSlice() []interface{} {
	result := make([]interface{}, 0, s.list.Len())
	itr := s.list.Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		result = append(result, v)
	}
	return result
}
