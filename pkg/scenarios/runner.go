package scenarios

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/login-apitest/internal/logger"
	"github.com/Adda-Baaj/login-apitest/pkg/httpclient"
)

// Result is the outcome of one scenario.
type Result struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	StatusCode int           `json:"status_code,omitempty"`
	Failures   []string      `json:"failures,omitempty"`
	Err        error         `json:"-"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Passed reports whether the scenario met every expectation.
func (r Result) Passed() bool { return r.Err == nil && len(r.Failures) == 0 }

// Summary aggregates a run.
type Summary struct {
	Total   int      `json:"total"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

// Err joins the failures of every failed scenario.
func (s Summary) Err() error {
	var errs []error
	for _, r := range s.Results {
		switch {
		case r.Err != nil:
			errs = append(errs, fmt.Errorf("scenario[%s]: %w", r.ID, r.Err))
		case len(r.Failures) > 0:
			errs = append(errs, fmt.Errorf("scenario[%s]: %s", r.ID, strings.Join(r.Failures, "; ")))
		}
	}
	return errors.Join(errs...)
}

// Runner executes scenarios one at a time against a Poster.
type Runner struct {
	client httpclient.Poster
	log    logger.Logger
}

// NewRunner builds a runner.
func NewRunner(client httpclient.Poster, log logger.Logger) *Runner {
	return &Runner{client: client, log: logger.Ensure(log)}
}

// Run executes each scenario sequentially. Transport errors fail the
// scenario and the run continues.
func (r *Runner) Run(ctx context.Context, list []Scenario) Summary {
	sum := Summary{Results: make([]Result, 0, len(list))}
	for _, s := range list {
		if ctx.Err() != nil {
			break
		}
		res := r.runOne(ctx, s)
		sum.Total++
		if res.Passed() {
			sum.Passed++
			r.log.InfoObj("scenario passed", "scenario", res)
		} else {
			sum.Failed++
			r.log.WarnObj("scenario failed", "scenario", map[string]any{
				"id":       res.ID,
				"failures": res.Failures,
				"error":    errString(res.Err),
			})
		}
		sum.Results = append(sum.Results, res)
	}
	return sum
}

func (r *Runner) runOne(ctx context.Context, s Scenario) Result {
	start := time.Now()
	res := Result{ID: s.ID, Name: s.Name}

	resp, err := r.client.Post(ctx, s.Endpoint, s.Body())
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	res.StatusCode = resp.StatusCode
	res.Failures = Check(s, resp)
	return res
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
