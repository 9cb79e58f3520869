package models

import (
	"encoding/json"
	"time"
)

// Message is a single entry in a conversation log.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
	Branch    string `json:"branch,omitempty"`
}

// ConversationSummary is one entry from the conversation listing.
// The server's listing schema is loose; unknown fields are dropped.
type ConversationSummary struct {
	Name         string  `json:"name"`
	Path         string  `json:"path,omitempty"`
	Modified     float64 `json:"modified,omitempty"` // unix seconds, fractional
	MessageCount int     `json:"messages,omitempty"`
	Branches     int     `json:"branches,omitempty"`
}

// ModifiedTime converts the summary's modification stamp to a time.Time.
// Returns the zero time when the server omitted the field.
func (s ConversationSummary) ModifiedTime() time.Time {
	if s.Modified == 0 {
		return time.Time{}
	}
	sec := int64(s.Modified)
	nsec := int64((s.Modified - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// Conversation is the full detail view of one conversation.
type Conversation struct {
	Log       []Message            `json:"log"`
	Logfile   string               `json:"logfile,omitempty"`
	Workspace string               `json:"workspace,omitempty"`
	Branches  map[string][]Message `json:"branches,omitempty"`
}

// CreateConversationRequest is the body for creating a conversation.
type CreateConversationRequest struct {
	Logfile  string          `json:"logfile"`
	Messages []Message       `json:"messages,omitempty"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// AddMessageRequest is the body for appending a message to a conversation.
type AddMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
}

// GenerateRequest is the body for triggering generation.
// Model is a pointer so an unset model serializes as null and the
// server falls back to its configured default.
type GenerateRequest struct {
	Model  *string `json:"model"`
	Stream bool    `json:"stream"`
}

// ResponseChunk is one decoded unit of a streaming generation response.
// Stored reports whether the server persisted the fragment to the
// conversation log; it defaults to false when the payload omits it.
type ResponseChunk struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Stored  bool   `json:"stored"`
}

// ServerStatus is the health check response from the API root.
type ServerStatus struct {
	Message string `json:"message"`
}
