package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	// DSN starting with postgres:// opens Postgres, anything else is a
	// SQLite file path.
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	AccessTTLMinutes int    `yaml:"access_ttl_minutes"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

// SchedulingConfig carries the studio-defaults fallbacks used when a studio
// has no defaults row yet, and the trailing window for the recently-finished
// bucket of the schedule view.
type SchedulingConfig struct {
	DefaultSessionHours  int `yaml:"default_session_hours"`
	DefaultBufferMinutes int `yaml:"default_buffer_minutes"`
	RecentWindowDays     int `yaml:"recent_window_days"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Load reads the YAML file at configPath, expanding ${VAR} references from
// the environment first. A .env file in the working directory is picked up
// when present.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expanded, &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth jwt_secret is required")
	}
	if c.Scheduling.DefaultSessionHours < 1 {
		return fmt.Errorf("scheduling default_session_hours must be >= 1, got %d", c.Scheduling.DefaultSessionHours)
	}
	if c.Scheduling.DefaultBufferMinutes < 0 {
		return fmt.Errorf("scheduling default_buffer_minutes must be >= 0, got %d", c.Scheduling.DefaultBufferMinutes)
	}
	if c.Scheduling.RecentWindowDays < 1 {
		return fmt.Errorf("scheduling recent_window_days must be >= 1, got %d", c.Scheduling.RecentWindowDays)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "recstudio"
	}
	if c.App.Environment == "" {
		c.App.Environment = "dev"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Auth.AccessTTLMinutes == 0 {
		c.Auth.AccessTTLMinutes = 24 * 60
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	// Scheduling fallbacks: two-hour sessions, no buffer, two-week
	// recently-finished window.
	if c.Scheduling.DefaultSessionHours == 0 {
		c.Scheduling.DefaultSessionHours = 2
	}
	if c.Scheduling.RecentWindowDays == 0 {
		c.Scheduling.RecentWindowDays = 14
	}

	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 20
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 40
	}
}
