// Package main is the entry point for the modelkit CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/dmitrymomot/modelkit/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := app.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
