package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	errors []string
}

func (r *recordingLogger) InfoObj(string, string, interface{})  {}
func (r *recordingLogger) DebugObj(string, string, interface{}) {}
func (r *recordingLogger) WarnObj(string, string, interface{})  {}
func (r *recordingLogger) ErrorObj(msg, _ string, _ interface{}) {
	r.errors = append(r.errors, msg)
}
func (r *recordingLogger) Debugf(string, ...interface{}) {}
func (r *recordingLogger) Warnf(string, ...interface{})  {}
func (r *recordingLogger) Errorf(string, ...interface{}) {}

func TestNewAPIClientNormalizesBaseURL(t *testing.T) {
	c, err := NewAPIClient("https://xxx.com///", Options{})
	require.NoError(t, err)
	assert.Equal(t, "https://xxx.com", c.BaseURL())

	for _, ep := range []string{"api/user/login", "/api/user/login", "/api/user/login/", "//api/user/login"} {
		assert.Equal(t, "https://xxx.com/api/user/login", c.URL(ep), "endpoint %q", ep)
	}

	_, err = NewAPIClient("  ", Options{})
	assert.Error(t, err)
}

func TestPostSendsJSONAndReturnsRawResponse(t *testing.T) {
	var gotBody map[string]string
	var gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotReqID = r.Header.Get(RequestIDHeader)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	c, err := NewAPIClient(srv.URL+"/", Options{Timeout: 2 * time.Second})
	require.NoError(t, err)

	resp, err := c.Post(context.Background(), "/api/user/login", map[string]string{"username": "u", "password": "p"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, BodyText, resp.Kind)
	assert.Equal(t, "teapot", strings.TrimSpace(resp.Text()))
	assert.Equal(t, map[string]string{"username": "u", "password": "p"}, gotBody)
	_, err = uuid.Parse(gotReqID)
	assert.NoError(t, err)
}

func TestPostNilBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		assert.Empty(t, raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":"yes"}`))
	}))
	defer srv.Close()

	c, err := NewAPIClient(srv.URL, Options{})
	require.NoError(t, err)

	resp, err := c.Post(context.Background(), "ping", nil)
	require.NoError(t, err)
	v, ok := resp.Field("ok")
	assert.True(t, ok)
	assert.Equal(t, "yes", v)
}

func TestPostTransportFailureIsLoggedAndReturned(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	log := &recordingLogger{}
	c, err := NewAPIClient(addr, Options{Timeout: time.Second, Logger: log})
	require.NoError(t, err)

	resp, err := c.Post(context.Background(), "/api/user/login", map[string]string{"username": "x"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), addr+"/api/user/login")
	assert.Equal(t, []string{"request failed"}, log.errors)
}

func TestPostHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewAPIClient(srv.URL, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Post(ctx, "/", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
