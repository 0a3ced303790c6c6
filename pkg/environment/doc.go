// Package environment names the deployment environments (development,
// staging, production) and carries the current one through context.Context.
//
//	env, err := environment.Parse(os.Getenv("MODELKIT_ENV"))
//	ctx = environment.WithContext(ctx, env)
//
// LoggerExtractor plugs into logger.WithContextExtractors so every log record
// written with that context carries an "env" attribute.
package environment
