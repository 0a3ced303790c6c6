package schema

// CloneValue returns a deep copy of the []any and map[string]any containers
// in a canonical value. Scalars and other values are returned as is.
func CloneValue(v any) any {
	switch x := v.(type) {
	case []any:
		if x == nil {
			return x
		}
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = CloneValue(item)
		}
		return out
	case map[string]any:
		if x == nil {
			return x
		}
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = CloneValue(item)
		}
		return out
	}
	return v
}
