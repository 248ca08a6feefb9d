// Package config loads draftctl settings: built-in defaults, then the YAML
// file, then FESTDRAFT_* environment variables. Command-line flags are
// applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"festdraft/pkg/listquery"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

type Config struct {
	Server       string        `yaml:"server"`
	Profile      string        `yaml:"profile"`
	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
	Output       string        `yaml:"output"`
	PageSize     int           `yaml:"page_size"`
	LogLevel     string        `yaml:"log_level"`
}

// Dir is ~/.festdraft, or .festdraft when there is no home directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".festdraft"
	}
	return filepath.Join(home, ".festdraft")
}

func DefaultPath() string { return filepath.Join(Dir(), "config.yaml") }

func Default() *Config {
	return &Config{
		Server:       "http://localhost:8080",
		Profile:      filepath.Join(Dir(), "profile.db"),
		Timeout:      15 * time.Second,
		PollInterval: time.Second,
		Output:       OutputTable,
		PageSize:     listquery.DefaultPageSize,
		LogLevel:     "warn",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FESTDRAFT_SERVER"); v != "" {
		c.Server = v
	}
	if v := os.Getenv("FESTDRAFT_PROFILE"); v != "" {
		c.Profile = v
	}
	if v := os.Getenv("FESTDRAFT_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("FESTDRAFT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Save writes c as YAML, creating the directory when needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Server)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server must be an absolute URL, got %q", c.Server)
	}
	if c.Profile == "" {
		return errors.New("profile path is required")
	}
	if c.Output != OutputTable && c.Output != OutputJSON {
		return fmt.Errorf("output must be %q or %q", OutputTable, OutputJSON)
	}
	if c.PageSize < 1 || c.PageSize > listquery.MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d", listquery.MaxPageSize)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll_interval must be positive")
	}
	return nil
}
