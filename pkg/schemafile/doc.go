// Package schemafile builds schemas from declarative YAML or JSON documents.
//
// A document names the schema, optionally declares nested schemas under
// "schemas", and lists the fields in declaration order:
//
//	name: orden
//	schemas:
//	  - name: item_orden
//	    fields:
//	      - {name: producto_id, type: int, required: true}
//	      - {name: cantidad, type: int, required: true, constraints: [{gt: 0}]}
//	fields:
//	  - name: items
//	    type: list<object:item_orden>
//	    required: true
//	  - name: fecha_creacion
//	    type: timestamp
//	    default: now
//	  - name: estado
//	    type: string
//	    default: pendiente
//	    constraints:
//	      - one_of: [pendiente, confirmada, enviada, entregada, cancelada]
//	    transforms: [trim, lower]
//
// Types are written as int, float, string, bool, timestamp, list<T>,
// map<K,V>, optional<T>, union<A|B> and object:<name>. Constraints are either
// bare names (email, url, uuid, unique_items) or single-key mappings (min_len,
// max_len, min, max, gt, lt, one_of, pattern, decimal_places, after, before).
// Transforms name functions of package sanitizer and run as hooks after the
// constraints, in the listed order.
//
//	def, err := schemafile.Load("orden.yaml")
//	if err != nil {
//	    return err
//	}
//	v, err := def.Validator(validator.WithCoercion(validator.CoerceStrict))
package schemafile
