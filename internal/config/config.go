package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Mock modes select how outbound login calls are served.
const (
	MockModeTransport = "transport"
	MockModeServer    = "server"
	MockModeOff       = "off"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	Env                   string        `mapstructure:"app_env"`
	LogLevel              string        `mapstructure:"log_level"`
	BaseURL               string        `mapstructure:"base_url"`
	ScenariosFile         string        `mapstructure:"scenarios_file"`
	MockMode              string        `mapstructure:"mock_mode"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and configs/.env.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "login-apitest")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "https://xxx.com")
	v.SetDefault("scenarios_file", "./configs/scenarios.yaml")
	v.SetDefault("mock_mode", MockModeTransport)
	v.SetDefault("request_timeout_seconds", 10)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base_url %q (must be an absolute URL)", cfg.BaseURL)
	}

	cfg.MockMode = strings.ToLower(strings.TrimSpace(cfg.MockMode))
	switch cfg.MockMode {
	case MockModeTransport, MockModeServer, MockModeOff:
	default:
		return nil, fmt.Errorf("invalid mock_mode %q", cfg.MockMode)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	return &cfg, nil
}
