package loginmock

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// NoMatchError is returned for requests with no registered route.
type NoMatchError struct {
	Method string
	URL    string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no mock registered for %s %s", e.Method, e.URL)
}

// Call records one intercepted request.
type Call struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Transport is an http.RoundTripper that answers registered routes
// in-process. It is safe for concurrent use.
type Transport struct {
	mu     sync.RWMutex
	routes map[string]http.Handler
	calls  []Call
}

// NewTransport returns a Transport with POST baseURL+LoginPath registered.
func NewTransport(baseURL string) (*Transport, error) {
	t := &Transport{routes: make(map[string]http.Handler)}
	if err := t.Register(http.MethodPost, strings.TrimRight(baseURL, "/")+LoginPath, Handler()); err != nil {
		return nil, err
	}
	return t, nil
}

// Register routes method+rawURL to h. Query strings are ignored when matching.
func (t *Transport) Register(method, rawURL string, h http.Handler) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse mock url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("mock url %q must be absolute", rawURL)
	}
	if h == nil {
		return fmt.Errorf("mock handler for %s %s is nil", method, rawURL)
	}

	t.mu.Lock()
	if t.routes == nil {
		t.routes = make(map[string]http.Handler)
	}
	t.routes[routeKey(method, u)] = h
	t.mu.Unlock()
	return nil
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
	}

	t.mu.Lock()
	t.calls = append(t.calls, Call{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   body,
	})
	h := t.routes[routeKey(req.Method, req.URL)]
	t.mu.Unlock()

	if h == nil {
		return nil, &NoMatchError{Method: req.Method, URL: req.URL.String()}
	}

	inner := req.Clone(req.Context())
	inner.Body = io.NopCloser(strings.NewReader(string(body)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, inner)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

// Calls returns a copy of the recorded requests.
func (t *Transport) Calls() []Call {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Call, len(t.calls))
	copy(out, t.calls)
	return out
}

// Reset drops recorded calls.
func (t *Transport) Reset() {
	t.mu.Lock()
	t.calls = nil
	t.mu.Unlock()
}

func routeKey(method string, u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return strings.ToUpper(method) + " " + strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + path
}
