package config

import "errors"

var (
	// ErrParsingConfig is returned when the environment cannot be parsed into Config.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned, joined with a validator.Report, when parsed values are out of range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrLoadingEnvFile is returned when an existing .env file cannot be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")
)
