package schema

import (
	"fmt"
	"slices"
)

// Schema is an ordered, immutable collection of field descriptors. A Schema
// may be shared by any number of goroutines.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// Build creates a schema from fields in declaration order. It fails with
// ErrDuplicateField when two fields share a name; no partial schema is
// returned.
func Build(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: slices.Clone(fields),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range s.fields {
		// The zero Field has no name and was not created by Describe.
		if f.name == "" {
			return nil, fmt.Errorf("%w: field %d was not created with Describe", ErrInvalidDescriptor, i)
		}
		if _, exists := s.index[f.name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.name)
		}
		s.index[f.name] = i
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(name string, fields ...Field) *Schema {
	s, err := Build(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string { return s.name }
func (s *Schema) Len() int     { return len(s.fields) }

// Fields returns the descriptors in declaration order. The returned slice is
// a copy.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// FieldAt returns the i-th declared field.
func (s *Schema) FieldAt(i int) Field {
	return s.fields[i]
}

// Field looks up a descriptor by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Index returns the declaration position of the named field, or -1.
func (s *Schema) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}
