package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the Fly Machines API endpoint.
const DefaultBaseURL = "https://api.machines.dev/v1"

// Environment variables recognized by FromEnv. The token is the only
// required credential; it is resolved here, once, so the client and
// reconciler never touch the process environment.
const (
	EnvAPIToken = "FLY_API_TOKEN"
	EnvBaseURL  = "FLY_API_BASE_URL"
)

// Config carries everything the bindings need. It is assembled by the
// caller's bootstrap code and passed down explicitly.
type Config struct {
	// APIToken is the Fly bearer token. Required.
	APIToken string `yaml:"api_token" validate:"required"`

	// BaseURL overrides the Machines API endpoint. Defaults to DefaultBaseURL.
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`

	// DataDir is where caller-side bookkeeping state lives.
	DataDir string `yaml:"data_dir"`

	// DockerBinary is the container CLI to shell out to. Defaults to "docker".
	DockerBinary string `yaml:"docker_binary"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// LogJSON switches log output from console to JSON.
	LogJSON bool `yaml:"log_json"`
}

// Default returns a Config with defaults applied and no credential set.
func Default() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		DataDir:      defaultDataDir(),
		DockerBinary: "docker",
		LogLevel:     "info",
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".flyio-activity"
	}
	return home + "/.flyio-activity"
}

// LoadFile reads a YAML config file over cfg. Missing file is not an error;
// the file is optional and env/flags take precedence.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// FromEnv overlays environment variables onto cfg.
func (c *Config) FromEnv() {
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
}

// Validate checks the assembled configuration. A missing token fails here,
// before any network call is attempted.
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return fmt.Errorf("cannot obtain `%s`: api token is not configured", EnvAPIToken)
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
