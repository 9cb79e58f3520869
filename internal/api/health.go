package api

import (
	"io"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/gptmecli/internal/errors"
	"github.com/diogo/gptmecli/internal/models"
)

// Health checks whether the server is up and returns its greeting.
// The root endpoint's schema is loose, so the body is probed rather
// than strictly decoded.
func (c *Client) Health() (*models.ServerStatus, error) {
	req, err := c.newRequest(http.MethodGet, models.PathRoot, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do("health check", models.PathRoot, req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if err := checkStatus(resp, models.PathRoot); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("health check", models.PathRoot, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, apierrors.NewParseError("health response is not valid JSON", truncatePayload(string(data)))
	}

	return &models.ServerStatus{
		Message: gjson.GetBytes(data, "message").String(),
	}, nil
}
