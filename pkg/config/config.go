package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/modelkit/pkg/environment"
	"github.com/dmitrymomot/modelkit/pkg/logger"
	"github.com/dmitrymomot/modelkit/pkg/sanitizer"
	"github.com/dmitrymomot/modelkit/pkg/schema"
	"github.com/dmitrymomot/modelkit/pkg/validator"
)

// Prefix is prepended to every variable name read by Parse.
const Prefix = "MODELKIT_"

// Config holds the process settings of the modelkit tool.
type Config struct {
	Env           string `env:"ENV" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"text"`
	Lang          string `env:"LANG" envDefault:"en"`
	Coercion      string `env:"COERCION" envDefault:"standard"`
	MaxInputBytes int64  `env:"MAX_INPUT_BYTES" envDefault:"1048576"`
}

var settings = schema.MustBuild("config",
	schema.MustDescribe("env", schema.String(), schema.Required(),
		schema.Constraints(schema.OneOf("development", "dev", "staging", "stage", "production", "prod"))),
	schema.MustDescribe("log_level", schema.String(), schema.Required(),
		schema.Constraints(schema.OneOf("debug", "info", "warn", "error"))),
	schema.MustDescribe("log_format", schema.String(), schema.Required(),
		schema.Constraints(schema.OneOf(string(logger.FormatJSON), string(logger.FormatText)))),
	schema.MustDescribe("lang", schema.String(), schema.Required(),
		schema.Constraints(schema.MinLen(2), schema.MaxLen(35))),
	schema.MustDescribe("coercion", schema.String(), schema.Required(),
		schema.Constraints(schema.OneOf(
			validator.CoerceStandard.String(),
			validator.CoerceStrict.String(),
			validator.CoerceLax.String(),
		))),
	schema.MustDescribe("max_input_bytes", schema.Int(), schema.Required(),
		schema.Constraints(schema.Min(1), schema.Max(1<<30))),
)

var settingsHooks = validator.Hooks{
	"lang": {validator.Check(func(tag string, _ validator.View) bool {
		_, err := language.Parse(tag)
		return err == nil
	}, "must be a BCP 47 language tag")},
}

var normalize = sanitizer.Compose(sanitizer.Trim, sanitizer.ToLower)

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are skipped.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}
	return nil
}

// Parse reads Config from the process environment and validates it.
func Parse() (Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// ParseFrom reads Config from vars, keyed by full variable name, instead of
// the process environment.
func ParseFrom(vars map[string]string) (Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Prefix: Prefix, Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	cfg.Env = normalize(cfg.Env)
	cfg.LogLevel = normalize(cfg.LogLevel)
	cfg.LogFormat = normalize(cfg.LogFormat)
	cfg.Coercion = normalize(cfg.Coercion)
	cfg.Lang = sanitizer.Trim(cfg.Lang)

	if _, err := validator.Validate(settings, map[string]any{
		"env":             cfg.Env,
		"log_level":       cfg.LogLevel,
		"log_format":      cfg.LogFormat,
		"lang":            cfg.Lang,
		"coercion":        cfg.Coercion,
		"max_input_bytes": cfg.MaxInputBytes,
	}, settingsHooks, validator.WithCoercion(validator.CoerceStrict)); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

var (
	loadOnce sync.Once
	loaded   Config
	loadErr  error
)

// Load loads the default .env file and parses the environment once per
// process; later calls return the cached result.
func Load() (Config, error) {
	loadOnce.Do(func() {
		if loadErr = LoadEnv(); loadErr != nil {
			return
		}
		loaded, loadErr = Parse()
	})
	return loaded, loadErr
}

// MustLoad works like Load but panics on failure.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic("failed to load required configuration: " + err.Error())
	}
	return cfg
}

// The accessors below assume a Config returned by Parse, whose values have
// already been validated.

func (c Config) Environment() environment.Environment {
	e, _ := environment.Parse(c.Env)
	return e
}

func (c Config) Level() slog.Level {
	l, _ := logger.ParseLevel(c.LogLevel)
	return l
}

func (c Config) Format() logger.Format {
	f, _ := logger.ParseFormat(c.LogFormat)
	return f
}

func (c Config) CoercionPolicy() validator.Coercion {
	p, _ := validator.ParseCoercion(c.Coercion)
	return p
}

// LoggerOptions returns the logger options matching the configuration.
func (c Config) LoggerOptions(tool string) []logger.Option {
	return []logger.Option{
		logger.WithEnvironment(c.Environment(), tool),
		logger.WithLevel(c.Level()),
		logger.WithFormat(c.Format()),
		logger.WithContextExtractors(environment.LoggerExtractor()),
	}
}

func (c Config) String() string {
	var b strings.Builder
	b.WriteString("env=" + c.Env)
	b.WriteString(" log_level=" + c.LogLevel)
	b.WriteString(" log_format=" + c.LogFormat)
	b.WriteString(" lang=" + c.Lang)
	b.WriteString(" coercion=" + c.Coercion)
	return b.String()
}
