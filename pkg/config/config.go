// Package config loads CLI settings through viper: defaults, then the
// config file, then SAMPLEFIXTURE_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/mod/semver"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix is prepended to environment variable names, e.g.
// SAMPLEFIXTURE_NEO4J_URI for neo4j.uri.
const EnvPrefix = "SAMPLEFIXTURE"

// DefaultModule is the import path recorded in symbols of the fixture.
const DefaultModule = "github.com/context-maximiser/sample-fixture/pkg/sample"

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Neo4j   Neo4jConfig   `mapstructure:"neo4j"`
	Fixture FixtureConfig `mapstructure:"fixture"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Neo4jConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

type FixtureConfig struct {
	Module  string `mapstructure:"module"`
	Version string `mapstructure:"version"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("neo4j.uri", "bolt://localhost:7687")
	v.SetDefault("neo4j.username", "neo4j")
	v.SetDefault("neo4j.password", "password123")
	v.SetDefault("neo4j.database", "neo4j")
	v.SetDefault("fixture.module", DefaultModule)
	v.SetDefault("fixture.version", "v1.0.0")
}

// BindEnv enables SAMPLEFIXTURE_* overrides for nested keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := oneOf(c.Log.Level, []string{"debug", "info", "warn", "error"}, "log level"); err != nil {
		return err
	}
	if err := oneOf(c.Log.Format, []string{"console", "json"}, "log format"); err != nil {
		return err
	}

	u, err := url.Parse(c.Neo4j.URI)
	if err != nil {
		return fmt.Errorf("%w: neo4j uri: %v", ErrInvalidConfig, err)
	}
	switch u.Scheme {
	case "bolt", "bolt+s", "bolt+ssc", "neo4j", "neo4j+s", "neo4j+ssc":
	default:
		return fmt.Errorf("%w: neo4j uri must use a bolt or neo4j scheme, got: %s", ErrInvalidConfig, c.Neo4j.URI)
	}
	if c.Neo4j.Database == "" {
		return fmt.Errorf("%w: neo4j database is required", ErrInvalidConfig)
	}

	if c.Fixture.Module == "" || strings.ContainsAny(c.Fixture.Module, " \t") {
		return fmt.Errorf("%w: fixture module must be a non-empty path without spaces", ErrInvalidConfig)
	}
	if !semver.IsValid(c.Fixture.Version) {
		return fmt.Errorf("%w: fixture version must be semver (vX.Y.Z), got: %s", ErrInvalidConfig, c.Fixture.Version)
	}

	return nil
}

func oneOf(value string, allowed []string, field string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be one of %v, got: %s", ErrInvalidConfig, field, allowed, value)
}
