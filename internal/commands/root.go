// Package commands contains the modelkit CLI command definitions.
package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/modelkit/pkg/config"
	"github.com/dmitrymomot/modelkit/pkg/environment"
	"github.com/dmitrymomot/modelkit/pkg/i18n"
	"github.com/dmitrymomot/modelkit/pkg/logger"
)

// App carries the dependencies shared by every command.
type App struct {
	Config     config.Config
	Logger     *slog.Logger
	Translator *i18n.Translator
}

// globalFlags are bound to the root command and inherited by subcommands.
type globalFlags struct {
	lang     string
	coercion string
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(app *App) *cobra.Command {
	if app.Logger == nil {
		app.Logger = logger.Discard()
	}

	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           "modelkit",
		Short:         "Validate and serialize data against declarative schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = environment.WithContext(ctx, app.Config.Environment())
			ctx = WithRunID(ctx, uuid.NewString())
			ctx = i18n.SetLocale(ctx, flags.lang)
			cmd.SetContext(ctx)

			app.Logger.DebugContext(ctx, "command started", logger.Component(cmd.Name()))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.lang, "lang", app.Config.Lang, "language of validation messages")
	rootCmd.PersistentFlags().StringVar(&flags.coercion, "coercion", app.Config.Coercion, "coercion policy: strict, standard or lax")

	rootCmd.AddCommand(
		newValidateCmd(app, flags),
		newDescribeCmd(),
		newJSONSchemaCmd(),
	)
	return rootCmd
}
