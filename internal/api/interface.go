package api

import "github.com/diogo/gptmecli/internal/models"

// ClientInterface defines the client surface consumed by commands and
// the TUI, allowing a mock to stand in during tests.
type ClientInterface interface {
	Init() error
	Close()
	IsClosed() bool
	BaseURL() string
	GetModel() string
	SetModel(model string)
	ServerMessage() string

	Health() (*models.ServerStatus, error)
	ListConversations(limit int) ([]models.ConversationSummary, error)
	CreateConversation(id string, messages []models.Message) error
	GetConversation(id string) (*models.Conversation, error)
	AddMessage(id, role, content, branch string) error
	Generate(id string, opts *GenerateOptions) ([]models.Message, error)
	GenerateStream(id string, opts *GenerateOptions) (*ChunkStream, error)
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)
