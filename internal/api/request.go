package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/gptmecli/internal/errors"
	"github.com/diogo/gptmecli/internal/models"
)

// maxErrorBodyBytes caps how much of an error response is kept for diagnostics
const maxErrorBodyBytes = 4096

// newRequest builds a request with default headers and auth applied
func (c *Client) newRequest(method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

// do executes a request, mapping transport failures to the error taxonomy.
// op names the operation for diagnostics, e.g. "list conversations".
func (c *Client) do(op, path string, req *http.Request) (*http.Response, error) {
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, apierrors.NewTimeoutError(op)
		}
		return nil, apierrors.NewNetworkError(op, path, err)
	}
	return resp, nil
}

// isTimeout reports whether a transport error was a timeout
func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}

// checkStatus converts non-success responses into APIErrors, consuming
// (a bounded amount of) the body for diagnostics.
func checkStatus(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	_ = resp.Body.Close()

	switch resp.StatusCode {
	case 401, 403:
		return apierrors.NewAuthError(fmt.Sprintf("server rejected request to %s", path))
	case 404:
		return apierrors.NewAPIErrorWithBody(resp.StatusCode, path, "not found", string(body))
	default:
		return apierrors.NewAPIErrorWithBody(resp.StatusCode, path,
			http.StatusText(resp.StatusCode), string(body))
	}
}

// doJSON executes a JSON request/response round trip. payload and out
// may each be nil.
func (c *Client) doJSON(op, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.do(op, path, req)
	if err != nil {
		return err
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if err := checkStatus(resp, path); err != nil {
		return err
	}

	if out == nil {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierrors.NewNetworkError(op, path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apierrors.NewParseError(err.Error(), truncatePayload(string(data)))
	}
	return nil
}

// truncatePayload bounds payload text carried inside errors and logs
func truncatePayload(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
