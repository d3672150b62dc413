package bind

import (
	"sort"

	"github.com/hashicorp/go-set/v3"
)

// KeywordSpec declares one recognized keyword parameter. Default is a
// thunk evaluated per call when the keyword is not supplied; a nil
// Default means the parameter binds Absent instead.
type KeywordSpec struct {
	Name    string
	Default func() interface{}
}

// ParameterShape declares one arity variant of a callable: required
// positional names, an optional rest-capture name absorbing trailing
// positionals, and recognized keywords.
type ParameterShape struct {
	Positional []string
	Rest       string // "" means no rest-capture
	Keywords   []KeywordSpec
}

func (s ParameterShape) fixed() int { return len(s.Positional) }

func (s ParameterShape) hasRest() bool { return s.Rest != "" }

// validate checks that no name is declared twice within the shape.
func (s ParameterShape) validate() error {
	names := set.New[string](len(s.Positional) + len(s.Keywords) + 1)
	for _, n := range s.Positional {
		if !names.Insert(n) {
			return shapeErrorf("name %q declared twice", n)
		}
	}
	if s.hasRest() && !names.Insert(s.Rest) {
		return shapeErrorf("name %q declared twice", s.Rest)
	}
	for _, kw := range s.Keywords {
		if !names.Insert(kw.Name) {
			return shapeErrorf("name %q declared twice", kw.Name)
		}
	}
	return nil
}

// ShapeSet holds the arity variants of one callable, validated once
// at construction so dispatch never has to re-check them.
type ShapeSet struct {
	variants []ParameterShape
	byFixed  map[int]int // fixed count -> index into variants
	restIdx  int         // index of the rest-capture variant, or -1
}

// NewShapeSet validates and indexes a variant list. At most one
// variant may declare a rest-capture, and that variant must carry the
// maximum fixed count (it stands for "this arity or more").
func NewShapeSet(variants ...ParameterShape) (*ShapeSet, error) {
	if len(variants) == 0 {
		return nil, shapeErrorf("a callable needs at least one variant")
	}
	ss := &ShapeSet{
		variants: variants,
		byFixed:  make(map[int]int, len(variants)),
		restIdx:  -1,
	}
	maxFixed := 0
	for i, v := range variants {
		if err := v.validate(); err != nil {
			return nil, err
		}
		if _, dup := ss.byFixed[v.fixed()]; dup {
			return nil, shapeErrorf("two variants take %d positionals", v.fixed())
		}
		ss.byFixed[v.fixed()] = i
		if v.fixed() > maxFixed {
			maxFixed = v.fixed()
		}
		if v.hasRest() {
			if ss.restIdx >= 0 {
				return nil, shapeErrorf("more than one variant declares a rest-capture")
			}
			ss.restIdx = i
		}
	}
	if ss.restIdx >= 0 && variants[ss.restIdx].fixed() < maxFixed {
		return nil, shapeErrorf("the rest-capture variant must be the maximum-arity variant")
	}
	return ss, nil
}

// MustShapeSet is NewShapeSet that panics on an invalid set. Meant
// for variant lists written as literals.
func MustShapeSet(variants ...ParameterShape) *ShapeSet {
	ss, err := NewShapeSet(variants...)
	if err != nil {
		panic(err)
	}
	return ss
}

// Variants returns the declared variants in declaration order.
func (ss *ShapeSet) Variants() []ParameterShape {
	out := make([]ParameterShape, len(ss.variants))
	copy(out, ss.variants)
	return out
}

// selectVariant picks the shape for an actual positional count k:
// exact fixed match first, then the rest-capture variant if its fixed
// count is <= k.
func (ss *ShapeSet) selectVariant(k int) (ParameterShape, error) {
	if i, ok := ss.byFixed[k]; ok {
		return ss.variants[i], nil
	}
	if ss.restIdx >= 0 && ss.variants[ss.restIdx].fixed() <= k {
		return ss.variants[ss.restIdx], nil
	}
	return ParameterShape{}, ss.arityError(k)
}

func (ss *ShapeSet) arityError(k int) *ArityMismatchError {
	counts := make([]int, 0, len(ss.byFixed))
	for c := range ss.byFixed {
		counts = append(counts, c)
	}
	sort.Ints(counts)
	rest := -1
	if ss.restIdx >= 0 {
		rest = ss.variants[ss.restIdx].fixed()
	}
	return &ArityMismatchError{Got: k, Fixed: counts, Rest: rest}
}
