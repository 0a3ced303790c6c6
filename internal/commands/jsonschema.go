package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/modelkit/pkg/schemafile"
	"github.com/dmitrymomot/modelkit/pkg/serializer"
)

func newJSONSchemaCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:     "jsonschema",
		Short:   "Export a schema file as JSON Schema",
		Example: `  modelkit jsonschema --schema orden.yaml > orden.schema.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := schemafile.Load(schemaPath)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(serializer.JSONSchema(def.Schema), "", "  ")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			return err
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
