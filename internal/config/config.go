package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentTest        Environment = "test"
	EnvironmentProduction  Environment = "production"
)

type DatabaseClient string

const (
	DatabaseClientSQLite   DatabaseClient = "sqlite"
	DatabaseClientPostgres DatabaseClient = "pg"
)

const (
	keyAppEnv         = "APP_ENV"
	keyDatabaseClient = "DATABASE_CLIENT"
	keyDatabaseURL    = "DATABASE_URL"
	keyPort           = "PORT"
	keyLogLevel       = "LOG_LEVEL"
	keyConfigFile     = "CONFIG_FILE"
)

var knownKeys = map[string]bool{
	keyAppEnv:         true,
	keyDatabaseClient: true,
	keyDatabaseURL:    true,
	keyPort:           true,
	keyLogLevel:       true,
	keyConfigFile:     true,
}

type Config struct {
	Environment    Environment
	DatabaseClient DatabaseClient
	// DatabaseURL is a file path for sqlite and a connection URL for pg.
	DatabaseURL string
	Port        int
	LogLevel    logrus.Level
}

// FieldError describes a single invalid configuration value.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError collects every invalid field found while loading.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, format string, args ...interface{}) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ProcessEnvironmentVariables loads defaults, the optional CONFIG_FILE yaml
// and the process environment, in that order of precedence.
func ProcessEnvironmentVariables() (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		keyAppEnv:   string(EnvironmentProduction),
		keyPort:     "3333",
		keyLogLevel: "info",
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	envProvider := env.Provider("", ".", func(s string) string {
		if !knownKeys[s] {
			return ""
		}
		return s
	})

	// CONFIG_FILE itself can only come from the environment.
	envOnly := koanf.New(".")
	if err := envOnly.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}
	if path := envOnly.String(keyConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := k.Merge(envOnly); err != nil {
		return nil, fmt.Errorf("config merge: %w", err)
	}

	return parse(k)
}

func parse(k *koanf.Koanf) (*Config, error) {
	verr := &ValidationError{}
	cfg := &Config{}

	switch e := Environment(strings.TrimSpace(k.String(keyAppEnv))); e {
	case EnvironmentDevelopment, EnvironmentTest, EnvironmentProduction:
		cfg.Environment = e
	default:
		verr.add(keyAppEnv, "must be one of development, test, production, got %q", e)
	}

	switch c := DatabaseClient(strings.TrimSpace(k.String(keyDatabaseClient))); c {
	case DatabaseClientSQLite, DatabaseClientPostgres:
		cfg.DatabaseClient = c
	case "":
		verr.add(keyDatabaseClient, "is required")
	default:
		verr.add(keyDatabaseClient, "must be one of sqlite, pg, got %q", c)
	}

	cfg.DatabaseURL = strings.TrimSpace(k.String(keyDatabaseURL))
	if cfg.DatabaseURL == "" {
		verr.add(keyDatabaseURL, "is required")
	}

	port, err := strconv.Atoi(strings.TrimSpace(k.String(keyPort)))
	if err != nil {
		verr.add(keyPort, "must be a number, got %q", k.String(keyPort))
	} else if port < 1 || port > 65535 {
		verr.add(keyPort, "must be between 1 and 65535, got %d", port)
	}
	cfg.Port = port

	level, err := logrus.ParseLevel(k.String(keyLogLevel))
	if err != nil {
		verr.add(keyLogLevel, "%v", err)
	}
	cfg.LogLevel = level

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return cfg, nil
}
