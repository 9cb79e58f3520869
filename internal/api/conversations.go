package api

import (
	"fmt"

	http "github.com/bogdanfinn/fhttp"

	"github.com/diogo/gptmecli/internal/models"
)

// DefaultListLimit is used when the caller does not bound the listing
const DefaultListLimit = 100

// ListConversations returns up to limit conversation summaries,
// most recently modified first. A non-positive limit uses the default.
func (c *Client) ListConversations(limit int) ([]models.ConversationSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	path := fmt.Sprintf("%s?limit=%d", models.PathConversations, limit)
	var summaries []models.ConversationSummary
	if err := c.doJSON("list conversations", http.MethodGet, path, nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// CreateConversation creates a conversation with optional seed messages.
// The server errors if the conversation already exists.
func (c *Client) CreateConversation(id string, messages []models.Message) error {
	if id == "" {
		return fmt.Errorf("conversation id cannot be empty")
	}

	payload := models.CreateConversationRequest{
		Logfile:  id,
		Messages: messages,
	}
	return c.doJSON("create conversation", http.MethodPut, models.ConversationPath(id), payload, nil)
}

// GetConversation fetches the full log of one conversation
func (c *Client) GetConversation(id string) (*models.Conversation, error) {
	if id == "" {
		return nil, fmt.Errorf("conversation id cannot be empty")
	}

	var conv models.Conversation
	if err := c.doJSON("get conversation", http.MethodGet, models.ConversationPath(id), nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// AddMessage appends a message to a conversation. An empty branch
// targets the main branch.
func (c *Client) AddMessage(id, role, content, branch string) error {
	if id == "" {
		return fmt.Errorf("conversation id cannot be empty")
	}
	if role == "" {
		return fmt.Errorf("message role cannot be empty")
	}
	if branch == "" {
		branch = models.DefaultBranch
	}

	payload := models.AddMessageRequest{
		Role:    role,
		Content: content,
		Branch:  branch,
	}
	return c.doJSON("add message", http.MethodPost, models.ConversationPath(id), payload, nil)
}
