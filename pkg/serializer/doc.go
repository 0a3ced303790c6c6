// Package serializer converts validated records to ordered plain trees and
// JSON, and parses plain trees and JSON back into records.
//
// ToPlain walks a record in field declaration order and returns an
// *orderedmap.OrderedMap, so the JSON produced by JSON and JSONIndent lists
// fields in the order the schema declares them. Absent optional fields are
// written as explicit nulls and timestamps as RFC 3339 strings with
// nanoseconds.
//
// FromJSON decodes numbers as json.Number so large integers keep their exact
// value until the validator coerces them.
//
//	rec, err := serializer.FromJSON(v, []byte(`{"id": 1, "name": "Ana"}`))
//	if err != nil {
//	    return err
//	}
//	data, _ := serializer.JSON(rec)
//	// {"id":1,"name":"Ana","age":null}
//
// JSONSchema exports a schema as a JSON Schema (draft 2020-12) document with
// nested object schemas placed under $defs.
package serializer
