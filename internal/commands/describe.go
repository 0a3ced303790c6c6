package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/modelkit/pkg/schema"
	"github.com/dmitrymomot/modelkit/pkg/schemafile"
)

func newDescribeCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the fields of a schema file",
		Long: `Print every schema of a schema file as a table of fields with their
types, defaults, constraints and transforms. Nested schemas follow the
schema that first references them.`,
		Example: `  modelkit describe --schema orden.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := schemafile.Load(schemaPath)
			if err != nil {
				return err
			}
			return describe(cmd.OutOrStdout(), def)
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func describe(w io.Writer, def *schemafile.Definition) error {
	for i, s := range collectSchemas(def.Schema) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "schema %s\n", s.Name())

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FIELD\tTYPE\tREQUIRED\tDEFAULT\tCONSTRAINTS\tTRANSFORMS")
		for _, f := range s.Fields() {
			fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\t%s\n",
				f.Name(),
				f.Type(),
				f.Required(),
				defaultText(f),
				constraintsText(f.Constraints()),
				orDash(strings.Join(def.Transforms[s][f.Name()], ",")),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// collectSchemas returns s followed by the object schemas it references,
// depth first in field order.
func collectSchemas(s *schema.Schema) []*schema.Schema {
	var out []*schema.Schema
	seen := make(map[*schema.Schema]bool)

	var visitType func(t schema.Type)
	var visit func(s *schema.Schema)
	visit = func(s *schema.Schema) {
		if s == nil || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
		for _, f := range s.Fields() {
			visitType(f.Type())
		}
	}
	visitType = func(t schema.Type) {
		switch t.Kind() {
		case schema.KindObject:
			visit(t.Schema())
		case schema.KindList, schema.KindMap, schema.KindOptional:
			if elem, ok := t.Elem(); ok {
				visitType(elem)
			}
		case schema.KindUnion:
			for _, m := range t.Members() {
				visitType(m)
			}
		}
	}
	visit(s)
	return out
}

func defaultText(f schema.Field) string {
	switch {
	case f.HasDefaultFunc():
		return "<generated>"
	case f.HasDefault():
		if f.Default() == nil {
			return "null"
		}
		return fmt.Sprint(f.Default())
	}
	return "-"
}

func constraintsText(cs []schema.Constraint) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		params := c.Params()
		if len(params) == 0 {
			parts = append(parts, c.Name())
			continue
		}
		values := make([]string, 0, len(params))
		for _, k := range slices.Sorted(maps.Keys(params)) {
			values = append(values, paramText(params[k]))
		}
		parts = append(parts, c.Name()+"="+strings.Join(values, "|"))
	}
	return orDash(strings.Join(parts, ","))
}

func paramText(v any) string {
	list, ok := v.([]any)
	if !ok {
		return fmt.Sprint(v)
	}
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, "|")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
