package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "https://xxx.com" {
		t.Fatalf("unexpected base_url: %s", cfg.BaseURL)
	}
	if cfg.MockMode != MockModeTransport {
		t.Fatalf("unexpected mock_mode: %s", cfg.MockMode)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.RequestTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BASE_URL", "http://127.0.0.1:9000/")
	t.Setenv("MOCK_MODE", "OFF")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:9000/" {
		t.Fatalf("unexpected base_url: %s", cfg.BaseURL)
	}
	if cfg.MockMode != MockModeOff {
		t.Fatalf("expected mock mode to be normalized, got %s", cfg.MockMode)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.RequestTimeout)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"relative base url": {"BASE_URL": "/api"},
		"unknown mock mode": {"MOCK_MODE": "record"},
		"zero timeout":      {"REQUEST_TIMEOUT_SECONDS": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := load(viper.New()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
