// Package logger builds *slog.Logger values from functional options and
// injects attributes taken from context.Context on every record.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler from the configured
// Format and wraps it in LogHandlerDecorator, which runs each registered
// ContextExtractor before delegating:
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "modelkit"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "input validated", logger.Schema("orden"), logger.Issues(0))
//
// ParseFormat and ParseLevel turn configuration strings into options. The
// attribute helpers in attr.go keep key names consistent; Error and Errors
// return an empty attribute for nil errors so callers can skip the nil check.
package logger
