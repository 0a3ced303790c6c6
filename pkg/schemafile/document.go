package schemafile

import "gopkg.in/yaml.v3"

// Document is the decoded form of a schema document. JSON documents are
// read with the same YAML decoder.
type Document struct {
	Name    string      `yaml:"name"`
	Schemas []SchemaDoc `yaml:"schemas"`
	Fields  []FieldDoc  `yaml:"fields"`
}

// SchemaDoc declares a named schema usable as object:<name>.
type SchemaDoc struct {
	Name   string     `yaml:"name"`
	Fields []FieldDoc `yaml:"fields"`
}

// FieldDoc declares one field.
//
// Default is kept as a raw node because its meaning depends on the field type:
// a timestamp default of "now" becomes a factory, and an explicit null is
// different from no default.
type FieldDoc struct {
	Name        string      `yaml:"name"`
	Type        string      `yaml:"type"`
	Required    bool        `yaml:"required"`
	Default     yaml.Node   `yaml:"default"`
	Description string      `yaml:"description"`
	Constraints []yaml.Node `yaml:"constraints"`
	Transforms  []string    `yaml:"transforms"`
}

// HasDefault reports whether the document sets a default, including null.
func (f FieldDoc) HasDefault() bool {
	return f.Default.Kind != 0
}
