package schemafile

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/modelkit/pkg/sanitizer"
	"github.com/dmitrymomot/modelkit/pkg/schema"
	"github.com/dmitrymomot/modelkit/pkg/validator"
)

// Definition is a schema built from a document together with the hooks its
// transforms produce.
type Definition struct {
	Schema *schema.Schema
	// Schemas holds the named schemas declared under "schemas".
	Schemas map[string]*schema.Schema
	Hooks   validator.Hooks
	Nested  map[*schema.Schema]validator.Hooks
	// Transforms lists the transform references per schema and field.
	Transforms map[*schema.Schema]map[string][]string
}

// Validator creates a validator with the document hooks registered.
func (d *Definition) Validator(opts ...validator.Option) (*validator.Validator, error) {
	all := make([]validator.Option, 0, len(d.Nested)+len(opts)+1)
	all = append(all, validator.WithHooks(d.Hooks))
	for s, hooks := range d.Nested {
		all = append(all, validator.WithNestedHooks(s, hooks))
	}
	return validator.New(d.Schema, append(all, opts...)...)
}

// Load reads and builds the document at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToRead, err)
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON document and builds it.
func Parse(data []byte) (*Definition, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	return Build(doc)
}

// Build turns a decoded document into schemas. Named schemas may only
// reference schemas declared before them.
func Build(doc Document) (*Definition, error) {
	if strings.TrimSpace(doc.Name) == "" {
		return nil, fmt.Errorf("%w: missing schema name", ErrInvalidDocument)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("%w: schema %q declares no fields", ErrInvalidDocument, doc.Name)
	}

	def := &Definition{
		Schemas:    make(map[string]*schema.Schema, len(doc.Schemas)),
		Nested:     make(map[*schema.Schema]validator.Hooks),
		Transforms: make(map[*schema.Schema]map[string][]string),
	}

	for _, sd := range doc.Schemas {
		if strings.TrimSpace(sd.Name) == "" {
			return nil, fmt.Errorf("%w: nested schema without a name", ErrInvalidDocument)
		}
		if _, exists := def.Schemas[sd.Name]; exists || sd.Name == doc.Name {
			return nil, fmt.Errorf("%w: schema %q declared twice", ErrInvalidDocument, sd.Name)
		}
		s, hooks, err := def.build(sd.Name, sd.Fields)
		if err != nil {
			return nil, err
		}
		def.Schemas[sd.Name] = s
		if len(hooks) > 0 {
			def.Nested[s] = hooks
		}
	}

	s, hooks, err := def.build(doc.Name, doc.Fields)
	if err != nil {
		return nil, err
	}
	def.Schema = s
	def.Hooks = hooks
	return def, nil
}

func (d *Definition) build(name string, docs []FieldDoc) (*schema.Schema, validator.Hooks, error) {
	fields := make([]schema.Field, 0, len(docs))
	hooks := make(validator.Hooks)
	transforms := make(map[string][]string)

	for _, fd := range docs {
		f, fieldHooks, err := d.field(fd)
		if err != nil {
			return nil, nil, fmt.Errorf("schema %q: %w", name, err)
		}
		fields = append(fields, f)
		if len(fieldHooks) > 0 {
			hooks[fd.Name] = fieldHooks
			transforms[fd.Name] = fd.Transforms
		}
	}

	s, err := schema.Build(name, fields...)
	if err != nil {
		return nil, nil, fmt.Errorf("schema %q: %w", name, err)
	}
	if len(transforms) > 0 {
		d.Transforms[s] = transforms
	}
	return s, hooks, nil
}

func (d *Definition) field(fd FieldDoc) (schema.Field, []validator.Hook, error) {
	typ, err := ParseType(fd.Type, d.Schemas)
	if err != nil {
		return schema.Field{}, nil, fmt.Errorf("field %q: %w", fd.Name, err)
	}

	opts := []schema.FieldOption{schema.Description(fd.Description)}
	if fd.Required {
		opts = append(opts, schema.Required())
	}
	if fd.HasDefault() {
		opt, err := defaultOption(typ, &fd.Default)
		if err != nil {
			return schema.Field{}, nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		opts = append(opts, opt)
	}
	for i := range fd.Constraints {
		c, err := parseConstraint(&fd.Constraints[i])
		if err != nil {
			return schema.Field{}, nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		opts = append(opts, schema.Constraints(c))
	}

	f, err := schema.Describe(fd.Name, typ, opts...)
	if err != nil {
		return schema.Field{}, nil, err
	}

	hooks, err := transformHooks(typ, fd.Transforms)
	if err != nil {
		return schema.Field{}, nil, fmt.Errorf("field %q: %w", fd.Name, err)
	}
	return f, hooks, nil
}

func defaultOption(typ schema.Type, n *yaml.Node) (schema.FieldOption, error) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return schema.Default(nil), nil
	}

	switch typ.Base().Kind() {
	case schema.KindTimestamp:
		if n.Value == "now" {
			return schema.DefaultFunc(func() any { return time.Now().UTC() }), nil
		}
		ts, err := time.Parse(time.RFC3339Nano, n.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: timestamp default %q is not RFC 3339 or \"now\"", ErrInvalidDocument, n.Value)
		}
		return schema.Default(ts), nil
	case schema.KindObject:
		return nil, fmt.Errorf("%w: object fields cannot have a default", ErrInvalidDocument)
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	return schema.Default(v), nil
}

// transformHooks turns transform references into hooks, checking that each
// transform fits the field type.
func transformHooks(typ schema.Type, refs []string) ([]validator.Hook, error) {
	base := typ.Base().Kind()
	hooks := make([]validator.Hook, 0, len(refs))
	for _, ref := range refs {
		tr, err := sanitizer.Lookup(ref)
		if err != nil {
			return nil, err
		}
		switch {
		case tr.String != nil && base == schema.KindString:
			hooks = append(hooks, validator.TransformString(tr.String))
		case tr.Float != nil && base == schema.KindFloat:
			hooks = append(hooks, validator.TransformFloat(tr.Float))
		default:
			return nil, fmt.Errorf("%w: transform %q does not apply to type %s", ErrInvalidDocument, ref, typ)
		}
	}
	return hooks, nil
}
