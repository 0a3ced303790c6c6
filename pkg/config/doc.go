// Package config loads the modelkit tool settings from the environment.
//
// Variables carry the MODELKIT_ prefix and are parsed with
// github.com/caarlos0/env/v11; LoadEnv reads optional .env files through
// github.com/joho/godotenv first. Parsed values are then checked against a
// modelkit schema, so an out-of-range setting fails with ErrInvalidConfig
// joined with a validator.Report naming every bad variable:
//
//	if err := config.LoadEnv(); err != nil {
//	    return err
//	}
//	cfg, err := config.Parse()
//	if err != nil {
//	    return err
//	}
//	log := logger.New(cfg.LoggerOptions("modelkit")...)
//
// Load caches the first result for the life of the process. ParseFrom reads
// from an explicit map and is meant for tests.
package config
