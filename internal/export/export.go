// Package export converts server conversations into shareable documents.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format represents the format for exporting conversations
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat maps a user-supplied format name to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want markdown or json)", name)
	}
}

// Message is one transcript entry. It mirrors the server's log entry
// shape so the api package stays the only place that talks JSON wire
// types.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Transcript is an exportable view of a conversation
type Transcript struct {
	ID        string    `json:"id"`
	Workspace string    `json:"workspace,omitempty"`
	Exported  time.Time `json:"exported"`
	Messages  []Message `json:"messages"`
}

// Options configures how transcripts are exported
type Options struct {
	Format            Format
	IncludeTimestamps bool
}

// DefaultOptions returns sensible defaults for export
func DefaultOptions() Options {
	return Options{
		Format:            FormatMarkdown,
		IncludeTimestamps: false,
	}
}

// Render serializes the transcript in the requested format
func Render(tr Transcript, opts Options) (string, error) {
	switch opts.Format {
	case FormatMarkdown:
		return toMarkdown(tr, opts), nil
	case FormatJSON:
		return toJSON(tr)
	default:
		return "", fmt.Errorf("unknown export format %q", opts.Format)
	}
}

func toMarkdown(tr Transcript, opts Options) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(tr.ID)
	sb.WriteString("\n\n")

	if tr.Workspace != "" {
		sb.WriteString("**Workspace:** ")
		sb.WriteString(tr.Workspace)
		sb.WriteString("\n")
	}
	sb.WriteString("**Exported:** ")
	sb.WriteString(tr.Exported.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n\n---\n\n")

	for _, msg := range tr.Messages {
		switch msg.Role {
		case "user":
			sb.WriteString("## You\n\n")
		case "assistant":
			sb.WriteString("## Assistant\n\n")
		default:
			sb.WriteString("## ")
			sb.WriteString(capitalize(msg.Role))
			sb.WriteString("\n\n")
		}

		if opts.IncludeTimestamps && msg.Timestamp != "" {
			sb.WriteString("*")
			sb.WriteString(msg.Timestamp)
			sb.WriteString("*\n\n")
		}

		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func toJSON(tr Transcript) (string, error) {
	data, err := json.MarshalIndent(tr, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return string(data), nil
}
