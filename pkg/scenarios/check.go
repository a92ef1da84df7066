package scenarios

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Adda-Baaj/login-apitest/pkg/httpclient"
)

// Check returns one message per failed expectation; nil means pass.
func Check(s Scenario, resp *httpclient.Response) []string {
	if resp == nil {
		return []string{"no response"}
	}

	var failures []string
	if resp.StatusCode != s.Expect.Status {
		failures = append(failures, fmt.Sprintf("status: want %d, got %d", s.Expect.Status, resp.StatusCode))
	}

	text := resp.Text()
	for _, sub := range s.Expect.BodyContains {
		if !strings.Contains(text, sub) {
			failures = append(failures, fmt.Sprintf("body: missing %q", sub))
		}
	}

	if len(s.Expect.JSONNonEmpty) == 0 && len(s.Expect.JSONEquals) == 0 {
		return failures
	}
	if !resp.IsJSON() {
		return append(failures, "body: expected json")
	}

	for _, key := range s.Expect.JSONNonEmpty {
		if v, ok := resp.Field(key); !ok || v == "" {
			failures = append(failures, fmt.Sprintf("json: %q is empty or missing", key))
		}
	}

	keys := make([]string, 0, len(s.Expect.JSONEquals))
	for k := range s.Expect.JSONEquals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		want := s.Expect.JSONEquals[key]
		if got, ok := resp.Field(key); !ok || got != want {
			failures = append(failures, fmt.Sprintf("json: %q want %q, got %q", key, want, got))
		}
	}
	return failures
}
