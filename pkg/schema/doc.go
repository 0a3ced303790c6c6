// Package schema declares the shape of records validated by package validator.
//
// A Schema is an ordered list of Field descriptors. Each descriptor names an
// attribute, its Type, whether it is required, an optional trusted default and
// an ordered list of Constraint predicates. Everything in this package is
// immutable once constructed, so a Schema built at process start can be used by
// any number of goroutines without locking.
//
// # Types
//
// Scalar types are Int, Float, String, Bool and Timestamp. Composite types are
// List, Map (string or int keys), Optional, Union and Object, the latter
// nesting another Schema. Validated values use a canonical Go representation:
//
//	int        int64
//	float      float64
//	string     string
//	bool       bool
//	timestamp  time.Time
//	list       []any
//	map        map[string]any
//	optional   nil when absent
//
// # Usage
//
//	user, err := schema.Build("user",
//	    schema.MustDescribe("id", schema.Int(), schema.Required()),
//	    schema.MustDescribe("name", schema.String(),
//	        schema.Required(),
//	        schema.Constraints(schema.MinLen(2), schema.MaxLen(100)),
//	    ),
//	    schema.MustDescribe("age", schema.Optional(schema.Int()), schema.Default(nil)),
//	)
//
// # Error Handling
//
// Describe returns ErrInvalidDescriptor for malformed declarations and Build
// returns ErrDuplicateField when two fields share a name. Both are wrapped with
// context and can be matched with errors.Is.
package schema
