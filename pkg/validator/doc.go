// Package validator validates untyped decoded input against a schema.Schema
// and produces immutable Records or a Report listing every failure.
//
// Fields are processed in declaration order. For each field the engine looks
// up the raw value, applies the trusted default when it is absent, coerces it
// to the declared type, evaluates the field constraints (stopping at the first
// failure) and finally runs the custom Hooks registered for the field. Hooks
// see a read-only View of the fields declared earlier, so declaration order
// is also the dependency order between fields.
//
// Validation never stops at the first failing field: the returned Report
// contains one entry per failing field path, and a Record is only returned
// when the Report is empty.
//
// # Usage
//
//	v, err := validator.New(userSchema,
//	    validator.WithHooks(validator.Hooks{
//	        "name": {validator.TransformString(strings.TrimSpace)},
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//
//	rec, err := v.Validate(map[string]any{"id": 1, "name": " Ana "})
//	if report := validator.ExtractReport(err); report != nil {
//	    for _, issue := range report {
//	        fmt.Println(issue.Field, issue.Kind, issue.Message)
//	    }
//	}
//
// # Coercion
//
// CoerceStandard (the default) converts only unambiguous values, such as the
// string "42" for an int field. CoerceStrict disables string to number
// conversion and CoerceLax converts broadly between scalars.
//
// # Error Handling
//
// Report implements error and matches ErrValidationFailed through errors.Is.
// ExtractReport and IsReport unwrap it from wrapped errors. Each Issue carries
// a translation key and values for rendering in other languages.
//
// # Concurrency
//
// A Validator and the schemas it references are read-only after New and may
// be shared between goroutines. Records are owned by the caller.
package validator
