// Package app wires configuration, logging and translations into the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrymomot/modelkit/internal/commands"
	"github.com/dmitrymomot/modelkit/pkg/config"
	"github.com/dmitrymomot/modelkit/pkg/i18n"
	"github.com/dmitrymomot/modelkit/pkg/logger"
)

// Run executes the CLI with args and returns the process exit code. The
// process environment and an optional .env file provide the configuration.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return Execute(ctx, cfg, args, stdin, stdout, stderr)
}

// Execute runs the commands with an already parsed configuration.
func Execute(ctx context.Context, cfg config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	log := logger.New(append(cfg.LoggerOptions("modelkit"),
		logger.WithOutput(stderr),
		logger.WithContextExtractors(commands.RunIDExtractor()),
	)...)

	translator, err := i18n.NewBuiltin(ctx, i18n.WithLogger(log))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	rootCmd := commands.NewRootCmd(&commands.App{
		Config:     cfg,
		Logger:     log,
		Translator: translator,
	})
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		log.ErrorContext(ctx, "command failed", logger.Error(err))
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
