// Package models contains data types and constants for the gptme server API.
package models

import "fmt"

// DefaultBaseURL is the address a locally run server listens on.
const DefaultBaseURL = "http://localhost:11130"

// DefaultBranch is the conversation branch used when none is specified.
const DefaultBranch = "main"

// DefaultTimeoutSeconds is the upper bound on total request duration.
// Generation can be slow, so this mirrors the server's own generation budget.
const DefaultTimeoutSeconds = 120

// Message roles understood by the server. The set is open; the server
// may introduce others and the client passes them through untouched.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// API paths, relative to the configured base URL.
const (
	PathRoot          = "/api"
	PathConversations = "/api/conversations"
)

// ConversationPath returns the path for a single conversation.
func ConversationPath(id string) string {
	return fmt.Sprintf("%s/%s", PathConversations, id)
}

// GeneratePath returns the path for triggering generation in a conversation.
func GeneratePath(id string) string {
	return fmt.Sprintf("%s/%s/generate", PathConversations, id)
}

// StreamDataPrefix marks payload lines in a streaming generation response.
// Lines without it (keep-alives, blank separators) carry no payload.
const StreamDataPrefix = "data: "

// DefaultHeaders returns the headers sent with every request.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
		"User-Agent":   "gptmecli/" + Version,
	}
}

// Version is the client version reported to the server.
// Overridden at build time via -ldflags.
var Version = "0.1.0"
