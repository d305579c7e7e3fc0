package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
)

// ErrNoTokenStore is returned by NewClient when no token store is supplied
var ErrNoTokenStore = errors.New("client: token store is required")

// messageKeys are the body fields that carry a human readable message, in priority order
var messageKeys = []string{"detail", "message", "error"}

// APIError is a non-2xx response from the backend. The backend guarantees no
// schema, so every accessor tolerates missing or oddly typed fields.
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	// Body is the parsed JSON object, or empty when the body was absent,
	// unparseable, or not an object
	Body map[string]any
	// Raw is the response body as received
	Raw []byte
}

func newAPIError(method, url string, resp *response) *APIError {
	e := &APIError{
		StatusCode: resp.status,
		Method:     method,
		URL:        url,
		Body:       map[string]any{},
		Raw:        resp.body,
	}
	var body map[string]any
	if err := json.Unmarshal(resp.body, &body); err == nil && body != nil {
		e.Body = body
	}
	return e
}

func (e *APIError) Error() string {
	msg := e.Message()
	if msg == "" {
		if field, text, ok := e.firstFieldError(); ok {
			msg = field + ": " + text
		}
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
}

// IsUnauthorized reports a 401 that survived the refresh cycle
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports a 404
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsServerError reports a 5xx
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// Message returns the first of detail, message or error that is a string
func (e *APIError) Message() string {
	for _, key := range messageKeys {
		if s, ok := e.Body[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// FieldErrors returns per-field validation messages, e.g. {"email": ["..."]}.
// Message fields are excluded.
func (e *APIError) FieldErrors() map[string][]string {
	out := make(map[string][]string)
	for key, value := range e.Body {
		if isMessageKey(key) {
			continue
		}
		if msgs := stringsOf(value); len(msgs) > 0 {
			out[key] = msgs
		}
	}
	return out
}

// FieldError returns the first message recorded against field
func (e *APIError) FieldError(field string) (string, bool) {
	msgs := stringsOf(e.Body[field])
	if len(msgs) == 0 {
		return "", false
	}
	return msgs[0], true
}

// DisplayMessage picks the text to show a user: the first message of the
// first field present, then Message, then fallback
func (e *APIError) DisplayMessage(fallback string, fields ...string) string {
	for _, field := range fields {
		if msg, ok := e.FieldError(field); ok {
			return msg
		}
	}
	if msg := e.Message(); msg != "" {
		return msg
	}
	return fallback
}

// firstFieldError returns a deterministic field error for Error()
func (e *APIError) firstFieldError() (string, string, bool) {
	fields := e.FieldErrors()
	if len(fields) == 0 {
		return "", "", false
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0], fields[keys[0]][0], true
}

func isMessageKey(key string) bool {
	for _, k := range messageKeys {
		if k == key {
			return true
		}
	}
	return false
}

// stringsOf flattens a string or a list of strings
func stringsOf(value any) []string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// NetworkError means the request never produced an HTTP response
// (DNS failure, refused connection, timeout, cancellation)
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend unavailable: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timeout
func (e *NetworkError) Timeout() bool {
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// IsNetworkError reports whether err is, or wraps, a *NetworkError
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// AsAPIError extracts an *APIError from err
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
