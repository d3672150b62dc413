// Package schema loads callable parameter shapes and record schemas
// from YAML documents, so a host can declare its binding contracts in
// data instead of code.
//
//	callables:
//	  greet:
//	    variants:
//	      - positional: [name]
//	        keywords:
//	          greeting: {default: "hello"}
//	      - positional: [name, greeting]
//	  sum:
//	    variants:
//	      - positional: [first]
//	        rest: others
//	records:
//	  person:
//	    fields: [name, position, weight]
//	    defaults: {position: employee}
//	    required: [name]
package schema

import (
	"io"
	"sort"

	"github.com/funvibe/funseq/pkg/bind"
	"github.com/funvibe/funseq/pkg/record"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// file mirrors the YAML document layout.
type file struct {
	Callables map[string]callable   `yaml:"callables"`
	Records   map[string]recordType `yaml:"records"`
}

type callable struct {
	Variants []variant `yaml:"variants"`
}

type variant struct {
	Positional []string           `yaml:"positional"`
	Rest       string             `yaml:"rest"`
	Keywords   map[string]keyword `yaml:"keywords"`
}

type keyword struct {
	// Default is kept as a raw node so "no default" and "default:
	// null" stay distinguishable: an absent key leaves the zero node
	// (Kind 0), an explicit null decodes to a !!null scalar node.
	Default yaml.Node `yaml:"default"`
}

type recordType struct {
	Fields   []string               `yaml:"fields"`
	Defaults map[string]interface{} `yaml:"defaults"`
	Required []string               `yaml:"required"`
}

// Library holds the shape sets and record schemas declared by one
// document.
type Library struct {
	callables map[string]*bind.ShapeSet
	records   map[string]*record.Schema
}

// Load reads and parses a YAML declaration document.
func Load(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "schema: read")
	}
	return Parse(data)
}

// Parse builds a Library from YAML bytes, validating every declared
// shape set up front.
func Parse(data []byte) (*Library, error) {
	var doc file
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "schema: decode")
	}

	lib := &Library{
		callables: make(map[string]*bind.ShapeSet, len(doc.Callables)),
		records:   make(map[string]*record.Schema, len(doc.Records)),
	}

	for name, c := range doc.Callables {
		variants := make([]bind.ParameterShape, 0, len(c.Variants))
		for _, v := range c.Variants {
			shape, err := v.toShape()
			if err != nil {
				return nil, errors.Wrapf(err, "schema: callable %q", name)
			}
			variants = append(variants, shape)
		}
		ss, err := bind.NewShapeSet(variants...)
		if err != nil {
			return nil, errors.Wrapf(err, "schema: callable %q", name)
		}
		lib.callables[name] = ss
	}

	for name, r := range doc.Records {
		lib.records[name] = &record.Schema{
			Fields:   r.Fields,
			Defaults: r.Defaults,
			Required: r.Required,
		}
	}
	return lib, nil
}

// toShape converts one YAML variant into a ParameterShape. Constant
// YAML defaults become thunks returning the decoded value.
func (v variant) toShape() (bind.ParameterShape, error) {
	shape := bind.ParameterShape{
		Positional: v.Positional,
		Rest:       v.Rest,
	}

	// Sort keyword names so shape contents are deterministic.
	names := make([]string, 0, len(v.Keywords))
	for name := range v.Keywords {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		kw := bind.KeywordSpec{Name: name}
		if node := v.Keywords[name].Default; node.Kind != 0 {
			var value interface{}
			if err := node.Decode(&value); err != nil {
				return bind.ParameterShape{}, errors.Wrapf(err, "keyword %q default", name)
			}
			kw.Default = func() interface{} { return value }
		}
		shape.Keywords = append(shape.Keywords, kw)
	}
	return shape, nil
}

// Callable returns the shape set declared under name.
func (l *Library) Callable(name string) (*bind.ShapeSet, bool) {
	ss, ok := l.callables[name]
	return ss, ok
}

// Record returns the record schema declared under name.
func (l *Library) Record(name string) (*record.Schema, bool) {
	s, ok := l.records[name]
	return s, ok
}

// Callables returns the declared callable names, sorted.
func (l *Library) Callables() []string {
	names := make([]string, 0, len(l.callables))
	for name := range l.callables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns the declared record type names, sorted.
func (l *Library) Records() []string {
	names := make([]string, 0, len(l.records))
	for name := range l.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
