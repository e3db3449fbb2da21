package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/gcbaptista/payload-distance/internal/scoring"
)

// EnvPrefix is the prefix of every environment variable read by LoadServerConfig.
const EnvPrefix = "PAYLOAD_DISTANCE"

// ServerConfig holds process-wide settings, read from the environment.
// Strategy is the deployment's choice for the "payload_distance_score" script.
type ServerConfig struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DataDir      string `envconfig:"DATA_DIR" default:"./search_data"`
	Strategy     string `envconfig:"STRATEGY" default:"ratio"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LOG_FORMAT" default:"json"`
	MaxBodyBytes int64  `envconfig:"MAX_BODY_BYTES" default:"10485760"`
}

// LoadServerConfig loads the optional dotenv files, then processes the
// PAYLOAD_DISTANCE_* environment variables. Variables already set in the
// environment win over values from the files.
func LoadServerConfig(envFiles ...string) (*ServerConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}

	var cfg ServerConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// DefaultStrategy returns the parsed deployment strategy.
func (c *ServerConfig) DefaultStrategy() scoring.Strategy {
	strategy, err := scoring.ParseStrategy(c.Strategy)
	if err != nil {
		return scoring.StrategyRatio
	}
	return strategy
}

// Validate checks the server configuration for invalid values.
func (c *ServerConfig) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data dir cannot be empty")
	}
	if _, err := scoring.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}
