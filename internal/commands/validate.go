package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/modelkit/pkg/logger"
	"github.com/dmitrymomot/modelkit/pkg/schemafile"
	"github.com/dmitrymomot/modelkit/pkg/serializer"
	"github.com/dmitrymomot/modelkit/pkg/validator"
)

type validateOptions struct {
	schemaPath string
	inputPath  string
	indent     bool
}

func newValidateCmd(app *App, flags *globalFlags) *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a document against a schema file",
		Long: `Validate a JSON or YAML document against a schema file.

On success the canonical record is written to stdout as JSON. On failure
every issue is written as one JSON object per line and the command exits
with status 2.`,
		Example: `  # Validate an order read from a file
  modelkit validate --schema orden.yaml --input pedido.json

  # Validate stdin with Spanish messages
  cat pedido.yaml | modelkit validate -s orden.yaml --lang es`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, app, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.schemaPath, "schema", "s", "", "schema file (YAML or JSON)")
	cmd.Flags().StringVarP(&opts.inputPath, "input", "i", "-", "input document, - for stdin")
	cmd.Flags().BoolVar(&opts.indent, "indent", false, "indent the output record")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runValidate(cmd *cobra.Command, app *App, flags *globalFlags, opts *validateOptions) error {
	ctx := cmd.Context()
	start := time.Now()

	policy, err := validator.ParseCoercion(flags.coercion)
	if err != nil {
		return err
	}

	def, err := schemafile.Load(opts.schemaPath)
	if err != nil {
		return err
	}
	v, err := def.Validator(validator.WithCoercion(policy), validator.WithLogger(app.Logger))
	if err != nil {
		return err
	}

	raw, err := readInput(cmd.InOrStdin(), opts.inputPath, app.Config.MaxInputBytes)
	if err != nil {
		return err
	}

	rec, err := v.Validate(raw)
	if err != nil {
		report := validator.ExtractReport(err)
		if report == nil {
			return err
		}
		if app.Translator != nil {
			report = app.Translator.LocalizeContext(ctx, report)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		for _, issue := range report {
			if err := enc.Encode(issue); err != nil {
				return err
			}
		}
		app.Logger.WarnContext(ctx, "input rejected",
			logger.Schema(def.Schema.Name()),
			logger.Issues(len(report)),
			logger.Duration(time.Since(start)),
		)
		return &ExitError{Code: ExitCodeInvalid, Err: report}
	}

	var out []byte
	if opts.indent {
		out, err = serializer.JSONIndent(rec, "  ")
	} else {
		out, err = serializer.JSON(rec)
	}
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(append(out, '\n')); err != nil {
		return err
	}

	app.Logger.InfoContext(ctx, "input validated",
		logger.Schema(def.Schema.Name()),
		logger.Duration(time.Since(start)),
	)
	return nil
}
