// Package config provides YAML-based configuration loading for devbench.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level devbench configuration, loaded from devbench.yaml.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Admin    AdminConfig    `yaml:"admin"`
	GitHub   GitHubConfig   `yaml:"github"`
	Sweep    SweepConfig    `yaml:"sweep"`
}

// DatabaseConfig selects the storage backend. Driver is "sqlite" (Path)
// or "mysql" (Host/Port/User/Database).
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Database string `yaml:"database"`
}

// AdminConfig names the initial account seeded at db init.
type AdminConfig struct {
	Username string `yaml:"username"`
}

// GitHubConfig controls project imports. TokenEnv names the environment
// variable holding the access token; unauthenticated requests are used
// when it is unset or empty.
type GitHubConfig struct {
	TokenEnv string `yaml:"token_env"`
}

// SweepConfig controls the stale-execution janitor.
type SweepConfig struct {
	Schedule string `yaml:"schedule"` // 5-field cron expression
	MaxAge   string `yaml:"max_age"`  // e.g. "24h"
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MaxAge returns the sweep cutoff as a duration. The value is checked
// during validation, so parse errors cannot occur on a loaded Config.
func (c *Config) MaxAge() time.Duration {
	d, err := time.ParseDuration(c.Sweep.MaxAge)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GitHubToken resolves the configured token environment variable.
func (c *Config) GitHubToken() string {
	return os.Getenv(c.GitHub.TokenEnv)
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		c.Database.Path = "devbench.db"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.User == "" {
		c.Database.User = "root"
	}
	if c.Admin.Username == "" {
		c.Admin.Username = "admin"
	}
	if c.GitHub.TokenEnv == "" {
		c.GitHub.TokenEnv = "GITHUB_TOKEN"
	}
	if c.Sweep.Schedule == "" {
		c.Sweep.Schedule = "*/10 * * * *"
	}
	if c.Sweep.MaxAge == "" {
		c.Sweep.MaxAge = "24h"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Database.Driver {
	case "sqlite":
	case "mysql":
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required for mysql")
		}
		if c.Database.Database == "" {
			errs = append(errs, "database.database is required for mysql")
		}
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (sqlite, mysql)", c.Database.Driver))
	}
	if _, err := time.ParseDuration(c.Sweep.MaxAge); err != nil {
		errs = append(errs, fmt.Sprintf("sweep.max_age %q is not a duration", c.Sweep.MaxAge))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
