package errors

import "errors"

// IsAuthError reports whether err is an authentication failure,
// including 401/403 API responses.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthFailed)
}

// IsNotFoundError reports whether err means the conversation does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrConversationNotFound)
}

// IsNetworkError reports whether err is a network-level failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsTimeoutError reports whether err is a request timeout.
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsParseError reports whether err is a response parsing failure.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// GetHTTPStatus extracts the HTTP status code from an error chain.
// Returns 0 when no APIError is present.
func GetHTTPStatus(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// GetEndpoint extracts the endpoint from an error chain, if recorded.
func GetEndpoint(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Endpoint
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Endpoint
	}
	return ""
}

// GetResponseBody extracts the truncated response body from an error
// chain, if recorded.
func GetResponseBody(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Body
	}
	return ""
}
