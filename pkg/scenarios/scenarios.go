package scenarios

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is one request plus the expectations on its response.
type Scenario struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name" yaml:"name"`
	Enabled  *bool          `json:"enabled" yaml:"enabled"`
	Endpoint string         `json:"endpoint" yaml:"endpoint"`
	Payload  map[string]any `json:"payload" yaml:"payload"`
	RawBody  string         `json:"raw_body" yaml:"raw_body"`
	Expect   Expect         `json:"expect" yaml:"expect"`
}

// Expect lists assertions over status code and body.
type Expect struct {
	Status       int               `json:"status" yaml:"status"`
	BodyContains []string          `json:"body_contains" yaml:"body_contains"`
	JSONEquals   map[string]string `json:"json_equals" yaml:"json_equals"`
	JSONNonEmpty []string          `json:"json_non_empty" yaml:"json_non_empty"`
}

// Body is what gets posted: RawBody verbatim when set, Payload otherwise.
func (s Scenario) Body() any {
	if s.RawBody != "" {
		return s.RawBody
	}
	if s.Payload == nil {
		return nil
	}
	return s.Payload
}

// IsEnabled treats a missing flag as enabled.
func (s Scenario) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

type configFile struct {
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios"`
}

// Registry is a validated, id-indexed scenario set.
type Registry struct {
	scenarios []Scenario
	idx       map[string]Scenario
}

// LoadFile loads scenarios from a YAML or JSON file.
func LoadFile(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("scenarios file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenarios file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read scenarios file: %w", err)
	}

	cf, err := parseScenarioFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(cf.Scenarios) == 0 {
		return nil, errors.New("scenarios file contains no scenarios entries")
	}
	return NewRegistry(cf.Scenarios)
}

// NewRegistry sanitizes and validates list.
func NewRegistry(list []Scenario) (*Registry, error) {
	reg := &Registry{
		scenarios: make([]Scenario, len(list)),
		idx:       make(map[string]Scenario, len(list)),
	}
	for i := range list {
		s := sanitizeScenario(list[i])
		if err := validateScenario(s); err != nil {
			return nil, fmt.Errorf("scenarios[%d]: %w", i, err)
		}
		if _, exists := reg.idx[s.ID]; exists {
			return nil, fmt.Errorf("duplicate scenario id %q", s.ID)
		}
		reg.scenarios[i] = s
		reg.idx[s.ID] = s
	}
	return reg, nil
}

// All returns every scenario in file order.
func (r *Registry) All() []Scenario {
	if r == nil || len(r.scenarios) == 0 {
		return nil
	}
	out := make([]Scenario, len(r.scenarios))
	copy(out, r.scenarios)
	return out
}

// Enabled returns scenarios not switched off.
func (r *Registry) Enabled() []Scenario {
	var out []Scenario
	for _, s := range r.All() {
		if s.IsEnabled() {
			out = append(out, s)
		}
	}
	return out
}

// ByID looks up a scenario.
func (r *Registry) ByID(id string) (Scenario, bool) {
	if r == nil {
		return Scenario{}, false
	}
	s, ok := r.idx[strings.TrimSpace(id)]
	return s, ok
}

func parseScenarioFile(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var cf configFile
		if err := d.fn(data, &cf); err == nil {
			return cf, nil
		}
	}

	return configFile{}, errors.New("scenarios file format not recognized (expected YAML or JSON)")
}

// sanitizeScenario trims identifiers. Payload values are left alone since
// empty strings are meaningful there.
func sanitizeScenario(s Scenario) Scenario {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Endpoint = strings.TrimSpace(s.Endpoint)
	if s.Name == "" {
		s.Name = s.ID
	}

	var keys []string
	for _, k := range s.Expect.JSONNonEmpty {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	s.Expect.JSONNonEmpty = keys
	return s
}

func validateScenario(s Scenario) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.Endpoint == "" {
		return fmt.Errorf("endpoint is required for scenario %q", s.ID)
	}
	if s.Expect.Status < 100 || s.Expect.Status > 599 {
		return fmt.Errorf("scenario %q has invalid expected status %d", s.ID, s.Expect.Status)
	}
	if s.RawBody != "" && s.Payload != nil {
		return fmt.Errorf("scenario %q sets both payload and raw_body", s.ID)
	}
	return nil
}
