// Package bind resolves a call's actual arguments against declared
// parameter shapes (fixed positionals, rest-capture, keywords with
// defaults) and destructures sequence values against binding
// patterns. It leans on pkg/seq for the positional and rest slicing
// semantics.
package bind

import (
	"github.com/funvibe/funseq/pkg/seq"
	"github.com/hashicorp/go-set/v3"
)

// absentMarker is the value bound to a keyword parameter that was
// neither supplied nor given a default. It is a legal binding,
// observably distinct from a supplied nil.
type absentMarker struct{}

func (absentMarker) String() string { return "absent" }

// Absent marks an unbound keyword parameter in ResolvedArgs and an
// unfilled optional binding in destructuring results.
var Absent interface{} = absentMarker{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v interface{}) bool {
	_, ok := v.(absentMarker)
	return ok
}

// Options configures a single BindCall invocation.
type Options struct {
	// StrictKeywords rejects keyword names the shape does not
	// recognize instead of ignoring them.
	StrictKeywords bool
}

// ResolvedArgs maps declared parameter names to bound values. Each
// call produces a fresh map owned by the caller.
type ResolvedArgs map[string]interface{}

// Get returns the value bound to name.
func (r ResolvedArgs) Get(name string) (interface{}, bool) {
	v, ok := r[name]
	return v, ok
}

// Bound reports whether name carries a real value, i.e. it is present
// and not the Absent marker.
func (r ResolvedArgs) Bound(name string) bool {
	v, ok := r[name]
	return ok && !IsAbsent(v)
}

// BindCall resolves a call against a shape set. positionals is the
// positional argument list used for arity selection; remainder is the
// trailing keyword region, read as alternating name/value pairs.
//
// The selected variant's fixed positionals bind by position. A
// rest-capture absorbs the trailing positionals into a Linked
// sequence. Keywords bind supplied value first, then default thunk,
// then Absent.
func BindCall(shapes *ShapeSet, positionals []interface{}, remainder []interface{}, opts Options) (ResolvedArgs, error) {
	shape, err := shapes.selectVariant(len(positionals))
	if err != nil {
		return nil, err
	}

	args := make(ResolvedArgs, len(shape.Positional)+len(shape.Keywords)+1)
	for i, name := range shape.Positional {
		args[name] = positionals[i]
	}
	if shape.hasRest() {
		args[shape.Rest] = seq.NewLinked(positionals[shape.fixed():]...)
	}

	if err := resolveKeywords(shape, remainder, opts, args); err != nil {
		return nil, err
	}
	return args, nil
}

// resolveKeywords reads remainder as name/value pairs and fills the
// shape's keyword parameters into args. The first occurrence of a
// duplicated key wins. Unrecognized keys are skipped unless
// opts.StrictKeywords is set.
func resolveKeywords(shape ParameterShape, remainder []interface{}, opts Options, args ResolvedArgs) error {
	if len(remainder)%2 != 0 {
		return &MalformedKeywordArgsError{Odd: true, Trailing: remainder[len(remainder)-1]}
	}

	recognized := set.New[string](len(shape.Keywords))
	for _, kw := range shape.Keywords {
		recognized.Insert(kw.Name)
	}

	supplied := make(map[string]interface{}, len(remainder)/2)
	for i := 0; i < len(remainder); i += 2 {
		key, ok := remainder[i].(string)
		if !ok {
			return &MalformedKeywordArgsError{BadKey: remainder[i]}
		}
		if !recognized.Contains(key) {
			if opts.StrictKeywords {
				return &MalformedKeywordArgsError{Key: key}
			}
			continue
		}
		if _, dup := supplied[key]; !dup {
			supplied[key] = remainder[i+1]
		}
	}

	for _, kw := range shape.Keywords {
		if v, ok := supplied[kw.Name]; ok {
			args[kw.Name] = v
		} else if kw.Default != nil {
			args[kw.Name] = kw.Default()
		} else {
			args[kw.Name] = Absent
		}
	}
	return nil
}
