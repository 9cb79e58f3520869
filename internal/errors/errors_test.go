package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAuthError(t *testing.T) {
	err := NewAuthError("token rejected")

	expected := "authentication failed: token rejected"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrAuthFailed) {
		t.Error("Expected AuthError to match ErrAuthFailed")
	}

	if errors.Is(err, ErrConversationNotFound) {
		t.Error("Expected AuthError not to match ErrConversationNotFound")
	}
}

func TestAuthErrorEmptyMessage(t *testing.T) {
	err := NewAuthError("")
	expected := "authentication failed: server token may be missing or invalid"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(500, "/api/conversations", "internal server error")

	expected := "API error [500] at /api/conversations: internal server error"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

func TestAPIErrorSentinelMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		target     error
		want       bool
	}{
		{"404 is not found", 404, ErrConversationNotFound, true},
		{"401 is auth failure", 401, ErrAuthFailed, true},
		{"403 is auth failure", 403, ErrAuthFailed, true},
		{"500 is not auth failure", 500, ErrAuthFailed, false},
		{"500 is not not-found", 500, ErrConversationNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(tt.statusCode, "/api/conversations/x", "boom")
			if got := errors.Is(err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("health check", "/api", cause)

	expected := "network error during health check (/api): connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, cause) {
		t.Error("Expected NetworkError to unwrap to its cause")
	}

	wrapped := fmt.Errorf("request failed: %w", err)
	if !IsNetworkError(wrapped) {
		t.Error("Expected IsNetworkError to see through wrapping")
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("unexpected end of JSON input", `{"role":`)

	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("Expected ParseError to match ErrInvalidResponse")
	}
	if !IsParseError(err) {
		t.Error("Expected IsParseError to be true")
	}
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"api error", NewAPIError(429, "/api", "slow down"), 429},
		{"wrapped api error", fmt.Errorf("outer: %w", NewAPIError(404, "/api/conversations/x", "gone")), 404},
		{"network error", NewNetworkError("generate", "/api", errors.New("eof")), 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetHTTPStatus(tt.err); got != tt.want {
				t.Errorf("GetHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEndpoint(t *testing.T) {
	if got := GetEndpoint(NewAPIError(500, "/api/conversations", "x")); got != "/api/conversations" {
		t.Errorf("GetEndpoint() = %q", got)
	}
	if got := GetEndpoint(NewNetworkError("list", "/api/conversations", errors.New("x"))); got != "/api/conversations" {
		t.Errorf("GetEndpoint() = %q", got)
	}
	if got := GetEndpoint(errors.New("plain")); got != "" {
		t.Errorf("GetEndpoint() = %q, want empty", got)
	}
}

func TestGetResponseBody(t *testing.T) {
	err := NewAPIErrorWithBody(500, "/api", "boom", `{"error":"detail"}`)
	if got := GetResponseBody(err); got != `{"error":"detail"}` {
		t.Errorf("GetResponseBody() = %q", got)
	}
}

func TestIsTimeoutError(t *testing.T) {
	if !IsTimeoutError(NewTimeoutError("generation took too long")) {
		t.Error("Expected timeout error")
	}
	if IsTimeoutError(NewAuthError("x")) {
		t.Error("Expected non-timeout error")
	}
}
