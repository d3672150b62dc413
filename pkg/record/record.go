// Package record builds immutable fixed-field records from a partial
// field map plus declared defaults, with required-field enforcement.
// The filling rule is the same supplied-beats-default precedence the
// call binder applies to keyword parameters.
package record

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// unsetMarker is the value of a declared field that was neither
// supplied nor defaulted and is not required.
type unsetMarker struct{}

func (unsetMarker) String() string { return "unset" }

// Unset marks a declared but unfilled field.
var Unset interface{} = unsetMarker{}

// IsUnset reports whether v is the Unset marker.
func IsUnset(v interface{}) bool {
	_, ok := v.(unsetMarker)
	return ok
}

// MissingRequiredFieldError reports construction with a required
// field that no supplied value or default resolves.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// UnknownFieldError reports access to, or construction with, a field
// name the schema does not declare.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// Schema declares a record type: its field names, per-field defaults
// and the subset that must resolve at construction. Fields listed
// only in Defaults or Required are declared implicitly.
type Schema struct {
	Fields   []string
	Defaults map[string]interface{}
	Required []string
}

// declared returns the full declared field set.
func (s *Schema) declared() *set.Set[string] {
	names := set.From(s.Fields)
	for name := range s.Defaults {
		names.Insert(name)
	}
	names.InsertSlice(s.Required)
	return names
}

// Construct fills every declared field by precedence: value from
// partial, else declared default, else *MissingRequiredFieldError for
// required fields, else the Unset marker. Supplying an undeclared
// field is *UnknownFieldError.
func (s *Schema) Construct(partial map[string]interface{}) (*Record, error) {
	declared := s.declared()
	for name := range partial {
		if !declared.Contains(name) {
			return nil, &UnknownFieldError{Field: name}
		}
	}

	required := set.From(s.Required)
	fields := make([]field, 0, declared.Size())
	for _, name := range declared.Slice() {
		if v, ok := partial[name]; ok {
			fields = append(fields, field{key: name, value: v})
			continue
		}
		if v, ok := s.Defaults[name]; ok {
			fields = append(fields, field{key: name, value: v})
			continue
		}
		if required.Contains(name) {
			return nil, &MissingRequiredFieldError{Field: name}
		}
		fields = append(fields, field{key: name, value: Unset})
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].key < fields[j].key })
	return &Record{fields: fields}, nil
}

// Construct is the free-standing form: the declared field set is the
// union of partial keys, default keys and required names.
func Construct(partial, defaults map[string]interface{}, required []string) (*Record, error) {
	fields := make([]string, 0, len(partial))
	for name := range partial {
		fields = append(fields, name)
	}
	s := &Schema{Fields: fields, Defaults: defaults, Required: required}
	return s.Construct(partial)
}

type field struct {
	key   string
	value interface{}
}

// Record is an immutable fixed-field value. Fields are held sorted by
// key so lookup is a binary search.
type Record struct {
	fields []field
}

// Get returns the value of a declared field. Access to a declared
// field never fails; an undeclared name is *UnknownFieldError.
func (r *Record) Get(name string) (interface{}, error) {
	i := sort.Search(len(r.fields), func(i int) bool { return r.fields[i].key >= name })
	if i < len(r.fields) && r.fields[i].key == name {
		return r.fields[i].value, nil
	}
	return nil, &UnknownFieldError{Field: name}
}

// Has reports whether name is a declared field.
func (r *Record) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

// Len returns the number of declared fields.
func (r *Record) Len() int { return len(r.fields) }

// Names returns the declared field names in sorted order.
func (r *Record) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.key
	}
	return names
}

// ToMap returns a fresh map of all fields, Unset markers included.
func (r *Record) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(r.fields))
	for _, f := range r.fields {
		out[f.key] = f.value
	}
	return out
}

// String renders the record in field order, for diagnostics.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, f := range r.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", f.key, f.value)
	}
	b.WriteString("}")
	return b.String()
}
