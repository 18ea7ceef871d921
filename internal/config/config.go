package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tiers     TiersConfig     `yaml:"tiers"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	// JWTSecret signs access tokens (HMAC-SHA256). Minimum 32 characters.
	JWTSecret            string `yaml:"jwt_secret"`
	TokenLifetimeMinutes int    `yaml:"token_lifetime_minutes"`
}

// TiersConfig sets the per-tier daily request quotas.
type TiersConfig struct {
	FreeDailyLimit       int `yaml:"free_daily_limit"`
	ProDailyLimit        int `yaml:"pro_daily_limit"`
	EnterpriseDailyLimit int `yaml:"enterprise_daily_limit"`
}

// RateLimitConfig sets the per-client burst limiter at the router level.
// Separate from the daily tier quotas: this guards against bursts, the
// quotas meter total daily usage.
type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// TokenLifetime returns the access token lifetime as a duration.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenLifetimeMinutes) * time.Minute
}

// Window returns the burst limiter window as a duration.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix VOLUMEOPT_ and underscore-separated
// paths:
//
//	VOLUMEOPT_SERVER_HOST, VOLUMEOPT_SERVER_PORT,
//	VOLUMEOPT_DB_HOST, VOLUMEOPT_DB_PORT, VOLUMEOPT_DB_NAME,
//	VOLUMEOPT_DB_USER, VOLUMEOPT_DB_PASSWORD, VOLUMEOPT_DB_SSLMODE,
//	VOLUMEOPT_AUTH_JWT_SECRET
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VOLUMEOPT_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("VOLUMEOPT_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("VOLUMEOPT_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("VOLUMEOPT_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("VOLUMEOPT_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("VOLUMEOPT_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("VOLUMEOPT_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("VOLUMEOPT_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("VOLUMEOPT_AUTH_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Auth.TokenLifetimeMinutes == 0 {
		cfg.Auth.TokenLifetimeMinutes = 30
	}
	if cfg.Tiers.FreeDailyLimit == 0 {
		cfg.Tiers.FreeDailyLimit = 100
	}
	if cfg.Tiers.ProDailyLimit == 0 {
		cfg.Tiers.ProDailyLimit = 10000
	}
	if cfg.Tiers.EnterpriseDailyLimit == 0 {
		cfg.Tiers.EnterpriseDailyLimit = 1000000
	}
	if cfg.RateLimit.Requests == 0 {
		cfg.RateLimit.Requests = 60
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
