package loginmock

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// LoginPath is the endpoint the mock answers.
const LoginPath = "/api/user/login"

// Canned credentials and replies.
const (
	ValidUsername = "test_user"
	ValidPassword = "123456"
	MockToken     = "mock-token-xyz"

	MsgInvalidJSON      = "Invalid JSON"
	MsgUsernameRequired = "用户名不能为空"
	MsgPasswordError    = "密码错误"
	MsgLoginSuccessful  = "Login successful"

	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json"
)

// Outcome is the branch of the decision table a request landed in.
type Outcome int

const (
	OutcomeInvalidJSON Outcome = iota
	OutcomeUsernameRequired
	OutcomeSuccess
	OutcomePasswordError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalidJSON:
		return "invalid_json"
	case OutcomeUsernameRequired:
		return "username_required"
	case OutcomeSuccess:
		return "success"
	case OutcomePasswordError:
		return "password_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// LoginRequest is the decoded login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the success body.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// ErrNotObject is reported for valid JSON that is not an object.
var ErrNotObject = errors.New("request body is not a json object")

// ParseResult is the explicit outcome of decoding a login body. Err is set
// when the body could not be read as a JSON object.
type ParseResult struct {
	Request         LoginRequest
	UsernamePresent bool
	Err             error
}

// ParseLoginRequest decodes raw. Non-string credentials decode to "" so they
// never match the canned values.
func ParseLoginRequest(raw []byte) ParseResult {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ParseResult{Err: fmt.Errorf("decode login body: %w", err)}
	}
	if fields == nil {
		return ParseResult{Err: ErrNotObject}
	}

	var res ParseResult
	if v, ok := fields["username"]; ok {
		res.Request.Username, res.UsernamePresent = stringValue(v)
	}
	if v, ok := fields["password"]; ok {
		res.Request.Password, _ = stringValue(v)
	}
	return res
}

// stringValue returns v when it is a JSON string, and whether v counts as
// set. JSON falsy values (null, false, 0, "", [], {}) are unset. Numbers are
// inspected as text so out-of-range values like 1e400 still count as set.
func stringValue(v json.RawMessage) (string, bool) {
	tok := bytes.TrimSpace(v)
	if len(tok) == 0 {
		return "", false
	}
	switch tok[0] {
	case '"':
		var s string
		if err := json.Unmarshal(tok, &s); err != nil {
			return "", false
		}
		return s, s != ""
	case 'n':
		return "", false
	case 't':
		return "", true
	case 'f':
		return "", false
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(tok, &items); err != nil {
			return "", false
		}
		return "", len(items) > 0
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(tok, &fields); err != nil {
			return "", false
		}
		return "", len(fields) > 0
	default:
		return "", !isZeroNumber(tok)
	}
}

// isZeroNumber reports whether a JSON number literal has an all-zero mantissa.
func isZeroNumber(num []byte) bool {
	num = bytes.TrimPrefix(num, []byte("-"))
	if i := bytes.IndexAny(num, "eE"); i >= 0 {
		num = num[:i]
	}
	for _, c := range num {
		if c != '0' && c != '.' {
			return false
		}
	}
	return true
}

// Reply is a synthesized response.
type Reply struct {
	Outcome     Outcome
	StatusCode  int
	ContentType string
	Body        []byte
}

// Classify maps a login body to its reply. First match wins:
// invalid JSON, missing username, valid credentials, anything else.
func Classify(raw []byte) Reply {
	parsed := ParseLoginRequest(raw)
	switch {
	case parsed.Err != nil:
		return textReply(OutcomeInvalidJSON, http.StatusBadRequest, MsgInvalidJSON)
	case !parsed.UsernamePresent:
		return textReply(OutcomeUsernameRequired, http.StatusBadRequest, MsgUsernameRequired)
	case parsed.Request.Username == ValidUsername && parsed.Request.Password == ValidPassword:
		body, _ := json.Marshal(LoginResponse{Token: MockToken, Message: MsgLoginSuccessful})
		return Reply{
			Outcome:     OutcomeSuccess,
			StatusCode:  http.StatusOK,
			ContentType: contentTypeJSON,
			Body:        body,
		}
	default:
		return textReply(OutcomePasswordError, http.StatusUnauthorized, MsgPasswordError)
	}
}

func textReply(o Outcome, status int, msg string) Reply {
	return Reply{
		Outcome:     o,
		StatusCode:  status,
		ContentType: contentTypeText,
		Body:        []byte(msg),
	}
}
