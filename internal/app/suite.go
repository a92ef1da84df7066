package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/Adda-Baaj/login-apitest/internal/config"
	"github.com/Adda-Baaj/login-apitest/internal/logger"
	"github.com/Adda-Baaj/login-apitest/pkg/httpclient"
	"github.com/Adda-Baaj/login-apitest/pkg/loginmock"
	"github.com/Adda-Baaj/login-apitest/pkg/scenarios"
)

// Suite wires config, client, mock and scenarios for one run.
type Suite struct {
	cfg       *config.Config
	client    *httpclient.APIClient
	scenarios []scenarios.Scenario
	server    *httptest.Server
	log       logger.Logger
}

// NewSuite builds a suite from config. Close must be called to release
// the local mock server in server mode.
func NewSuite(cfg *config.Config, log logger.Logger) (*Suite, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	list, err := loadScenarios(cfg.ScenariosFile)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no scenarios enabled")
	}

	s := &Suite{cfg: cfg, scenarios: list, log: log}

	baseURL := cfg.BaseURL
	var transport http.RoundTripper
	switch cfg.MockMode {
	case config.MockModeTransport:
		tr, err := loginmock.NewTransport(baseURL)
		if err != nil {
			return nil, fmt.Errorf("build mock transport: %w", err)
		}
		transport = tr
	case config.MockModeServer:
		s.server = httptest.NewServer(loginmock.NewRouter())
		baseURL = s.server.URL
	}

	client, err := httpclient.NewAPIClient(baseURL, httpclient.Options{
		Timeout:   cfg.RequestTimeout,
		Transport: transport,
		Logger:    log,
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("build api client: %w", err)
	}
	s.client = client

	log.InfoObj("suite initialized", "suite", map[string]any{
		"base_url":        client.BaseURL(),
		"mock_mode":       cfg.MockMode,
		"scenarios_count": len(list),
	})
	return s, nil
}

func loadScenarios(path string) ([]scenarios.Scenario, error) {
	if path == "" {
		return scenarios.Defaults(), nil
	}
	reg, err := scenarios.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	return reg.Enabled(), nil
}

// Run executes every scenario and returns the joined failures.
func (s *Suite) Run(ctx context.Context) (scenarios.Summary, error) {
	if s == nil || s.client == nil {
		return scenarios.Summary{}, fmt.Errorf("suite is not initialized")
	}

	sum := scenarios.NewRunner(s.client, s.log).Run(ctx, s.scenarios)
	s.log.InfoObj("suite finished", "summary", map[string]any{
		"total":  sum.Total,
		"passed": sum.Passed,
		"failed": sum.Failed,
	})
	if err := ctx.Err(); err != nil {
		return sum, fmt.Errorf("suite interrupted: %w", err)
	}
	return sum, sum.Err()
}

// Close stops the local mock server, if any.
func (s *Suite) Close() {
	if s != nil && s.server != nil {
		s.server.Close()
		s.server = nil
	}
}
