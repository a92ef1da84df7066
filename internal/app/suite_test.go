package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Adda-Baaj/login-apitest/internal/config"
)

func testConfig(mode, scenariosFile string) *config.Config {
	return &config.Config{
		BaseURL:        "https://xxx.com",
		MockMode:       mode,
		ScenariosFile:  scenariosFile,
		RequestTimeout: 2 * time.Second,
	}
}

func TestSuiteTransportModeDefaults(t *testing.T) {
	s, err := NewSuite(testConfig(config.MockModeTransport, ""), nil)
	if err != nil {
		t.Fatalf("NewSuite: %v", err)
	}
	defer s.Close()

	sum, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Passed != 3 {
		t.Fatalf("expected 3 passing scenarios, got %+v", sum)
	}
}

func TestSuiteServerModeRunsShippedFile(t *testing.T) {
	path := filepath.Join("..", "..", "configs", "scenarios.yaml")
	s, err := NewSuite(testConfig(config.MockModeServer, path), nil)
	if err != nil {
		t.Fatalf("NewSuite: %v", err)
	}
	defer s.Close()

	sum, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Total != 4 || sum.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestSuiteOffModeReportsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testConfig(config.MockModeOff, "")
	cfg.BaseURL = srv.URL
	s, err := NewSuite(cfg, nil)
	if err != nil {
		t.Fatalf("NewSuite: %v", err)
	}

	sum, err := s.Run(context.Background())
	if err == nil {
		t.Fatalf("expected failures against a real endpoint returning 503")
	}
	if sum.Failed != 3 {
		t.Fatalf("expected 3 failures, got %+v", sum)
	}
}

func TestNewSuiteErrors(t *testing.T) {
	if _, err := NewSuite(nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := NewSuite(testConfig(config.MockModeTransport, filepath.Join(t.TempDir(), "missing.yaml")), nil); err == nil {
		t.Fatalf("expected error for missing scenarios file")
	}

	path := filepath.Join(t.TempDir(), "off.yaml")
	content := "scenarios:\n  - {id: a, enabled: false, endpoint: /x, expect: {status: 200}}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewSuite(testConfig(config.MockModeTransport, path), nil); err == nil {
		t.Fatalf("expected error when every scenario is disabled")
	}
}
