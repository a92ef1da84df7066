package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// BodyKind tells whether a response body was decoded as JSON.
type BodyKind int

const (
	BodyText BodyKind = iota
	BodyJSON
)

func (k BodyKind) String() string {
	if k == BodyJSON {
		return "json"
	}
	return "text"
}

// Response is the result of a call. Kind is fixed at construction: JSON
// when the server declared a JSON media type and the body decoded, text
// otherwise.
type Response struct {
	StatusCode int
	Header     http.Header
	Raw        []byte
	Kind       BodyKind
	JSON       any
}

// ErrNotJSON is returned by Decode for text bodies.
var ErrNotJSON = errors.New("response body is not json")

func newResponse(status int, header http.Header, raw []byte) *Response {
	resp := &Response{
		StatusCode: status,
		Header:     header,
		Raw:        raw,
		Kind:       BodyText,
	}
	if !isJSONMediaType(header.Get("Content-Type")) {
		return resp
	}
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		resp.Kind = BodyJSON
		resp.JSON = v
	}
	return resp
}

func isJSONMediaType(ct string) bool {
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// IsJSON reports whether the body was decoded as JSON.
func (r *Response) IsJSON() bool { return r != nil && r.Kind == BodyJSON }

// Text returns the raw body as a string, regardless of kind.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Raw)
}

// Field returns a top-level string field of a JSON object body.
func (r *Response) Field(key string) (string, bool) {
	if !r.IsJSON() {
		return "", false
	}
	obj, ok := r.JSON.(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := obj[key].(string)
	return s, ok
}

// Decode unmarshals a JSON body into v.
func (r *Response) Decode(v any) error {
	if !r.IsJSON() {
		return ErrNotJSON
	}
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
