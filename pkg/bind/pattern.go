package bind

import "github.com/funvibe/funseq/pkg/seq"

// Pattern is a node in a destructuring tree. Concrete nodes are Name,
// Wildcard and *SeqPattern.
type Pattern interface {
	isPattern()
}

// Name binds one positional element to Name. An Optional node may be
// reached past the end of the value: it then binds Default() if a
// default thunk is declared, Absent otherwise.
type Name struct {
	Name     string
	Optional bool
	Default  func() interface{}
}

func (Name) isPattern() {}

// Wildcard consumes one positional element without binding anything.
type Wildcard struct{}

func (Wildcard) isPattern() {}

// SeqPattern destructures a sequence value: Elements consume
// positional elements left to right, Rest (if set) binds the
// remaining tail as a sequence, and Whole (if set) binds the entire
// original input of this pattern regardless of what the other
// children consumed.
type SeqPattern struct {
	Elements []Pattern
	Rest     string
	Whole    string
}

func (*SeqPattern) isPattern() {}

// Bindings maps pattern names to the values they captured.
type Bindings map[string]interface{}

// Destructure walks pattern against value depth-first, left to right,
// advancing via First/Rest. It returns the captured bindings or
// *PatternMismatchError when a non-optional node is reached but the
// tail is already empty.
func Destructure(pattern *SeqPattern, value seq.Seq) (Bindings, error) {
	into := make(Bindings)
	if err := bindSeqPattern(pattern, value, into); err != nil {
		return nil, err
	}
	return into, nil
}

func bindSeqPattern(p *SeqPattern, value seq.Seq, into Bindings) error {
	if p.Whole != "" {
		into[p.Whole] = value
	}

	tail := value
	for _, elem := range p.Elements {
		if tail.IsEmpty() {
			n, ok := elem.(Name)
			if !ok || !n.Optional {
				return &PatternMismatchError{Wanted: minElements(p), Got: value.Len()}
			}
			if n.Default != nil {
				into[n.Name] = n.Default()
			} else {
				into[n.Name] = Absent
			}
			continue
		}

		head, err := tail.First()
		if err != nil {
			return err
		}
		switch node := elem.(type) {
		case Name:
			into[node.Name] = head
		case Wildcard:
			// consumed, not bound
		case *SeqPattern:
			inner, ok := head.(seq.Seq)
			if !ok {
				return &PatternMismatchError{NonSeq: true, Value: head}
			}
			if err := bindSeqPattern(node, inner, into); err != nil {
				return err
			}
		}

		next, err := tail.Rest()
		if err != nil {
			return err
		}
		tail = next
	}

	if p.Rest != "" {
		into[p.Rest] = tail
	}
	return nil
}

// minElements counts the non-optional positional nodes a pattern
// needs before it can match.
func minElements(p *SeqPattern) int {
	n := 0
	for _, elem := range p.Elements {
		if name, ok := elem.(Name); ok && name.Optional {
			continue
		}
		n++
	}
	return n
}
