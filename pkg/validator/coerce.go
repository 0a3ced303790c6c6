package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// Coercion selects how raw values are converted to declared scalar types.
type Coercion uint8

const (
	// CoerceStandard accepts everything CoerceStrict does plus unambiguous
	// numeric string literals for int and float fields.
	CoerceStandard Coercion = iota
	// CoerceStrict accepts values already of the declared kind. Integral
	// floats are accepted as integers and integers as floats, since decoded
	// JSON does not distinguish them. Timestamps accept RFC 3339 strings.
	CoerceStrict
	// CoerceLax converts broadly between scalars ("true" to bool, 1 to "1").
	CoerceLax
)

func (c Coercion) String() string {
	switch c {
	case CoerceStrict:
		return "strict"
	case CoerceLax:
		return "lax"
	}
	return "standard"
}

// ParseCoercion parses "strict", "standard" or "lax".
func ParseCoercion(s string) (Coercion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return CoerceStrict, nil
	case "standard", "":
		return CoerceStandard, nil
	case "lax":
		return CoerceLax, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCoercion, s)
}

var (
	errNotNumber   = errors.New("not a number")
	errNotIntegral = errors.New("not an integral number")
	errOverflow    = errors.New("out of int64 range")
)

// floatLiteral matches plain decimal literals; strconv.ParseFloat alone would
// also accept "NaN", "Inf" and hex floats.
var floatLiteral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

func coerceScalar(kind schema.Kind, raw any, policy Coercion) (any, error) {
	switch kind {
	case schema.KindInt:
		return toInt(raw, policy)
	case schema.KindFloat:
		return toFloat(raw, policy)
	case schema.KindString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		if policy == CoerceLax {
			return cast.ToStringE(raw)
		}
	case schema.KindBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
		if policy == CoerceLax {
			return cast.ToBoolE(raw)
		}
	case schema.KindTimestamp:
		switch v := raw.(type) {
		case time.Time:
			return v, nil
		case string:
			return time.Parse(time.RFC3339Nano, v)
		}
		if policy == CoerceLax {
			return cast.ToTimeE(raw)
		}
	}
	return nil, fmt.Errorf("cannot convert %T to %s", raw, kind)
}

func toInt(raw any, policy Coercion) (any, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case float64:
		if policy == CoerceLax {
			return cast.ToInt64E(v)
		}
		return integral(v)
	case float32:
		return integral(float64(v))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, errNotNumber
		}
		return integral(f)
	case string:
		switch policy {
		case CoerceStandard:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, errNotNumber
			}
			return n, nil
		case CoerceLax:
			return cast.ToInt64E(strings.TrimSpace(v))
		}
		return nil, fmt.Errorf("cannot convert string to int")
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt64 {
			return nil, errOverflow
		}
		return int64(rv.Uint()), nil
	}
	if policy == CoerceLax {
		return cast.ToInt64E(raw)
	}
	return nil, fmt.Errorf("cannot convert %T to int", raw)
}

func integral(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, errNotIntegral
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, errOverflow
	}
	return int64(f), nil
}

func toFloat(raw any, policy Coercion) (any, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, errNotNumber
		}
		return f, nil
	case string:
		switch policy {
		case CoerceStandard:
			if !floatLiteral.MatchString(v) {
				return nil, errNotNumber
			}
			return strconv.ParseFloat(v, 64)
		case CoerceLax:
			return cast.ToFloat64E(strings.TrimSpace(v))
		}
		return nil, fmt.Errorf("cannot convert string to float")
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	}
	if policy == CoerceLax {
		return cast.ToFloat64E(raw)
	}
	return nil, fmt.Errorf("cannot convert %T to float", raw)
}

// describeRaw renders a raw input value for error messages.
func describeRaw(raw any) string {
	switch v := raw.(type) {
	case nil:
		return "null"
	case string:
		return "string " + strconv.Quote(v)
	case json.Number:
		return "number " + v.String()
	case bool:
		return fmt.Sprintf("bool %t", v)
	case map[string]any:
		return "object"
	case []any:
		return "list"
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf("number %v", raw)
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "list"
	}
	return fmt.Sprintf("%T %v", raw, raw)
}
