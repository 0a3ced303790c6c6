package validator

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// Validator validates raw input against one schema. It is immutable after New
// and safe for concurrent use.
type Validator struct {
	schema   *schema.Schema
	hooks    Hooks
	nested   map[*schema.Schema]Hooks
	children map[*schema.Schema]*Validator
	coercion Coercion
	mutable  bool
	logger   *slog.Logger
}

// New creates a validator for s. It fails with ErrUnknownHookField when a
// hook is registered for a field the schema does not declare.
func New(s *schema.Schema, opts ...Option) (*Validator, error) {
	if s == nil {
		return nil, ErrNilSchema
	}

	v := &Validator{
		schema: s,
		hooks:  make(Hooks),
		nested: make(map[*schema.Schema]Hooks),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}

	if err := checkHooks(s, v.hooks); err != nil {
		return nil, err
	}

	v.children = make(map[*schema.Schema]*Validator)
	for _, f := range s.Fields() {
		if err := v.register(f.Type()); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Validate is a shortcut for New followed by Validator.Validate.
func Validate(s *schema.Schema, raw map[string]any, hooks Hooks, opts ...Option) (*Record, error) {
	v, err := New(s, append(opts, WithHooks(hooks))...)
	if err != nil {
		return nil, err
	}
	return v.Validate(raw)
}

func (v *Validator) Schema() *schema.Schema { return v.schema }
func (v *Validator) Coercion() Coercion     { return v.coercion }

// Validate checks every field of raw in declaration order. It returns a
// Record when nothing failed, otherwise a Report listing every failure.
func (v *Validator) Validate(raw map[string]any) (*Record, error) {
	rec, report := v.validate(raw)
	if len(report) > 0 {
		v.logger.Debug("validation failed",
			slog.String("schema", v.schema.Name()),
			slog.Int("issues", len(report)),
		)
		return nil, report
	}
	v.logger.Debug("validated",
		slog.String("schema", v.schema.Name()),
		slog.Int("fields", v.schema.Len()),
	)
	return rec, nil
}

func checkHooks(s *schema.Schema, hooks Hooks) error {
	for name := range hooks {
		if s.Index(name) < 0 {
			return fmt.Errorf("%w: %q in schema %q", ErrUnknownHookField, name, s.Name())
		}
	}
	return nil
}

// register creates child validators for every object schema reachable from t.
// All validators of one tree share the children map.
func (v *Validator) register(t schema.Type) error {
	switch t.Kind() {
	case schema.KindList, schema.KindOptional:
		elem, _ := t.Elem()
		return v.register(elem)
	case schema.KindMap:
		elem, _ := t.Elem()
		return v.register(elem)
	case schema.KindUnion:
		for _, m := range t.Members() {
			if err := v.register(m); err != nil {
				return err
			}
		}
	case schema.KindObject:
		s := t.Schema()
		if _, ok := v.children[s]; ok {
			return nil
		}
		hooks := v.nested[s]
		if err := checkHooks(s, hooks); err != nil {
			return err
		}
		child := &Validator{
			schema:   s,
			hooks:    hooks,
			nested:   v.nested,
			children: v.children,
			coercion: v.coercion,
			mutable:  v.mutable,
			logger:   v.logger,
		}
		v.children[s] = child
		for _, f := range s.Fields() {
			if err := child.register(f.Type()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Validator) validate(raw map[string]any) (*Record, Report) {
	n := v.schema.Len()
	values := make([]any, n)
	valid := make([]bool, n)
	var report Report

	for i := range n {
		f := v.schema.FieldAt(i)
		rv, present := raw[f.Name()]
		if !present {
			switch {
			case f.HasDefault():
				def, err := f.ResolveDefault()
				if err != nil {
					report.Add(Issue{
						Field:             f.Name(),
						Kind:              TypeMismatch,
						Message:           err.Error(),
						TranslationKey:    "validation.default_mismatch",
						TranslationValues: map[string]any{"field": f.Name(), "expected": f.Type().String()},
					})
					continue
				}
				values[i] = def
				valid[i] = true
			case f.Required():
				report.Add(Issue{
					Field:             f.Name(),
					Kind:              MissingField,
					Message:           "field is required",
					TranslationKey:    "validation.required",
					TranslationValues: map[string]any{"field": f.Name()},
				})
			default:
				valid[i] = true
			}
			continue
		}

		view := View{schema: v.schema, values: values, valid: valid, limit: i}
		val, issues := v.field(f, rv, view)
		if len(issues) > 0 {
			report = append(report, issues...)
			continue
		}
		values[i] = val
		valid[i] = true
	}

	if len(report) > 0 {
		return nil, report
	}
	return &Record{schema: v.schema, values: values, validator: v}, nil
}

// field runs the coercion, constraint and hook chain of one present field.
func (v *Validator) field(f schema.Field, raw any, view View) (any, Report) {
	path := f.Name()
	val, issues := v.resolve(f.Type(), raw, path)
	if len(issues) > 0 {
		return nil, issues
	}

	for _, c := range f.Constraints() {
		if !c.Check(val) {
			return nil, Report{constraintIssue(path, c)}
		}
	}

	for _, h := range v.hooks[f.Name()] {
		out, err := h(val, view)
		if err != nil {
			return nil, Report{ruleIssue(path, err)}
		}
		if !conforms(f.Type(), out) {
			return nil, Report{hookResultIssue(path, f.Type(), out)}
		}
		val = out
	}
	return val, nil
}

// resolve converts raw into the canonical value of t, applying the type level
// constraints. Nested failures are reported below path.
func (v *Validator) resolve(t schema.Type, raw any, path string) (any, Report) {
	switch t.Kind() {
	case schema.KindOptional:
		if raw == nil {
			return nil, nil
		}
		elem, _ := t.Elem()
		val, issues := v.resolve(elem, raw, path)
		if len(issues) > 0 {
			return nil, issues
		}
		return typeConstraints(t, val, path)
	case schema.KindUnion:
		return v.union(t, raw, path)
	}

	if raw == nil {
		return nil, Report{mismatch(path, t, raw)}
	}

	var (
		val    any
		issues Report
	)
	switch t.Kind() {
	case schema.KindObject:
		val, issues = v.object(t, raw, path)
	case schema.KindList:
		val, issues = v.list(t, raw, path)
	case schema.KindMap:
		val, issues = v.mapping(t, raw, path)
	default:
		out, err := coerceScalar(t.Kind(), raw, v.coercion)
		if err != nil {
			return nil, Report{mismatch(path, t, raw)}
		}
		val = out
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return typeConstraints(t, val, path)
}

// union picks the first member type that accepts raw.
func (v *Validator) union(t schema.Type, raw any, path string) (any, Report) {
	members := t.Members()
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.String()
		if val, issues := v.resolve(m, raw, path); len(issues) == 0 {
			return typeConstraints(t, val, path)
		}
	}
	return nil, Report{{
		Field:          path,
		Kind:           TypeMismatch,
		Message:        fmt.Sprintf("%s matches none of %s", describeRaw(raw), strings.Join(names, ", ")),
		TranslationKey: "validation.union_mismatch",
		TranslationValues: map[string]any{
			"field": path,
			"types": strings.Join(names, ", "),
			"value": describeRaw(raw),
		},
	}}
}

func (v *Validator) object(t schema.Type, raw any, path string) (any, Report) {
	s := t.Schema()
	if rec, ok := raw.(*Record); ok {
		if rec.schema == s {
			return rec, nil
		}
		return nil, Report{mismatch(path, t, raw)}
	}

	m, ok := asMap(raw)
	if !ok {
		return nil, Report{mismatch(path, t, raw)}
	}
	child := v.children[s]
	rec, report := child.validate(m)
	if len(report) > 0 {
		return nil, report.prefixed(path)
	}
	return rec, nil
}

func (v *Validator) list(t schema.Type, raw any, path string) (any, Report) {
	items, ok := asList(raw)
	if !ok {
		return nil, Report{mismatch(path, t, raw)}
	}
	elem, _ := t.Elem()
	out := make([]any, len(items))
	var report Report
	for i, item := range items {
		val, issues := v.resolve(elem, item, path+"["+strconv.Itoa(i)+"]")
		if len(issues) > 0 {
			report = append(report, issues...)
			continue
		}
		out[i] = val
	}
	if len(report) > 0 {
		return nil, report
	}
	return out, nil
}

func (v *Validator) mapping(t schema.Type, raw any, path string) (any, Report) {
	m, ok := asMap(raw)
	if !ok {
		return nil, Report{mismatch(path, t, raw)}
	}
	keyType, _ := t.Key()
	elem, _ := t.Elem()

	out := make(map[string]any, len(m))
	var report Report
	for _, k := range slices.Sorted(maps.Keys(m)) {
		itemPath := path + "[" + k + "]"
		key := k
		if keyType.Kind() == schema.KindInt {
			n, err := strconv.ParseInt(k, 10, 64)
			if err != nil {
				report.Add(mismatch(itemPath, keyType, k))
				continue
			}
			key = strconv.FormatInt(n, 10)
		}
		if _, dup := out[key]; dup {
			report.Add(Issue{
				Field:             itemPath,
				Kind:              TypeMismatch,
				Message:           fmt.Sprintf("key %q duplicates %q", k, key),
				TranslationKey:    "validation.duplicate_key",
				TranslationValues: map[string]any{"field": itemPath, "key": key},
			})
			continue
		}
		val, issues := v.resolve(elem, m[k], itemPath)
		if len(issues) > 0 {
			report = append(report, issues...)
			continue
		}
		out[key] = val
	}
	if len(report) > 0 {
		return nil, report
	}
	return out, nil
}

func typeConstraints(t schema.Type, val any, path string) (any, Report) {
	for _, c := range t.Constraints() {
		if !c.Check(val) {
			return nil, Report{constraintIssue(path, c)}
		}
	}
	return val, nil
}

func mismatch(path string, t schema.Type, raw any) Issue {
	return Issue{
		Field:          path,
		Kind:           TypeMismatch,
		Message:        fmt.Sprintf("expected %s, got %s", t, describeRaw(raw)),
		TranslationKey: "validation.type_mismatch",
		TranslationValues: map[string]any{
			"field":    path,
			"expected": t.String(),
			"value":    describeRaw(raw),
		},
	}
}

func constraintIssue(path string, c schema.Constraint) Issue {
	values := c.Params()
	if values == nil {
		values = make(map[string]any, 1)
	}
	values["field"] = path
	return Issue{
		Field:             path,
		Kind:              ConstraintViolation,
		Message:           c.Message(),
		TranslationKey:    c.TranslationKey(),
		TranslationValues: values,
	}
}

func asMap(raw any) (map[string]any, bool) {
	if m, ok := raw.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func asList(raw any) ([]any, bool) {
	if items, ok := raw.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
