package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// AuthError reports a missing or rejected credential.
type AuthError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: authentication failed (status %d): %s", providerName(e.Provider), e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: authentication failed: %s", providerName(e.Provider), e.Message)
}

// ServiceError reports a transport failure, a timeout, a rate limit or any
// other non-success answer from the endpoint.
type ServiceError struct {
	Provider    string
	StatusCode  int
	Timeout     bool
	RateLimited bool
	Message     string
	Err         error
}

func (e *ServiceError) Error() string {
	var b strings.Builder
	b.WriteString(providerName(e.Provider))
	switch {
	case e.Timeout:
		b.WriteString(": request timed out")
	case e.RateLimited:
		b.WriteString(": rate limited")
	default:
		b.WriteString(": service error")
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *ServiceError) Unwrap() error { return e.Err }

func providerName(p string) string {
	if p == "" {
		return "llm"
	}
	return p
}

// apiError is the error envelope shared by Gemini and OpenAI-style APIs.
type apiError struct {
	Error *struct {
		Code    json.RawMessage `json:"code"`
		Message string          `json:"message"`
		Status  string          `json:"status"`
		Type    string          `json:"type"`
	} `json:"error"`
}

// IsRateLimitMessage reports whether an error text describes quota
// exhaustion.
func IsRateLimitMessage(s string) bool {
	s = strings.ToLower(s)
	for _, k := range []string{"quota", "rate limit", "rate_limit", "ratelimit", "exhausted", "too many requests"} {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// classifyStatus turns a non-2xx response into AuthError or ServiceError.
func classifyStatus(provider string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var env apiError
	if json.Unmarshal(body, &env) == nil && env.Error != nil {
		msg = env.Error.Message
		if env.Error.Status != "" {
			msg = env.Error.Status + ": " + msg
		}
	}
	if len(msg) > 300 {
		msg = msg[:300] + "..."
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Provider: provider, StatusCode: status, Message: msg}
	case status == http.StatusBadRequest && isInvalidKey(msg):
		return &AuthError{Provider: provider, StatusCode: status, Message: msg}
	case status == http.StatusTooManyRequests || IsRateLimitMessage(msg):
		return &ServiceError{Provider: provider, StatusCode: status, RateLimited: true, Message: msg}
	default:
		return &ServiceError{Provider: provider, StatusCode: status, Message: msg}
	}
}

func isInvalidKey(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "api key not valid") ||
		strings.Contains(m, "api_key_invalid") ||
		strings.Contains(m, "invalid api key")
}

// transportError wraps a failure to obtain any response.
func transportError(provider string, err error) error {
	se := &ServiceError{Provider: provider, Message: "request failed", Err: err}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		se.Timeout = true
		se.Message = ""
	}
	return se
}
