package api

import (
	"fmt"

	http "github.com/bogdanfinn/fhttp"

	"github.com/diogo/gptmecli/internal/models"
)

// GenerateOptions contains options for response generation
type GenerateOptions struct {
	// Model overrides the client default; empty lets the server choose.
	Model string
}

// resolveModel picks the model for a generate request, or nil for
// the server default.
func (c *Client) resolveModel(opts *GenerateOptions) *string {
	model := c.GetModel()
	if opts != nil && opts.Model != "" {
		model = opts.Model
	}
	if model == "" {
		return nil
	}
	return &model
}

// Generate asks the server to produce the next response in a
// conversation and waits for the complete result. The server may
// return several messages, e.g. an assistant reply followed by
// tool output.
func (c *Client) Generate(id string, opts *GenerateOptions) ([]models.Message, error) {
	if id == "" {
		return nil, fmt.Errorf("conversation id cannot be empty")
	}

	payload := models.GenerateRequest{
		Model:  c.resolveModel(opts),
		Stream: false,
	}

	var generated []models.Message
	if err := c.doJSON("generate response", http.MethodPost, models.GeneratePath(id), payload, &generated); err != nil {
		return nil, err
	}
	return generated, nil
}
