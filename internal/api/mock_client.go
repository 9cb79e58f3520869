package api

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diogo/gptmecli/internal/models"
)

// MockClient is a mock implementation of ClientInterface for testing
type MockClient struct {
	// Mock return values
	InitErr          error
	IsClosedVal      bool
	BaseURLVal       string
	Model            string
	ServerMessageVal string
	HealthVal        *models.ServerStatus
	HealthErr        error
	ListVal          []models.ConversationSummary
	ListErr          error
	CreateErr        error
	ConversationVal  *models.Conversation
	ConversationErr  error
	AddMessageErr    error
	GenerateVal      []models.Message
	GenerateErr      error
	StreamBody       string // raw SSE text served by GenerateStream
	StreamErr        error

	// Call counters/recorders
	InitCalled       bool
	CloseCalled      bool
	CreateCalled     bool
	GenerateCalled   bool
	StreamCalled     bool
	LastConversation string
	LastRole         string
	LastContent      string
	LastBranch       string
	LastSeedMessages []models.Message
	LastGenerateOpts *GenerateOptions
	LastListLimit    int
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) Init() error {
	m.InitCalled = true
	return m.InitErr
}

func (m *MockClient) Close() {
	m.CloseCalled = true
}

func (m *MockClient) IsClosed() bool {
	return m.IsClosedVal
}

func (m *MockClient) BaseURL() string {
	if m.BaseURLVal == "" {
		return models.DefaultBaseURL
	}
	return m.BaseURLVal
}

func (m *MockClient) GetModel() string {
	return m.Model
}

func (m *MockClient) SetModel(model string) {
	m.Model = model
}

func (m *MockClient) ServerMessage() string {
	return m.ServerMessageVal
}

func (m *MockClient) Health() (*models.ServerStatus, error) {
	if m.HealthErr != nil {
		return nil, m.HealthErr
	}
	if m.HealthVal != nil {
		return m.HealthVal, nil
	}
	return &models.ServerStatus{Message: "mock server"}, nil
}

func (m *MockClient) ListConversations(limit int) ([]models.ConversationSummary, error) {
	m.LastListLimit = limit
	return m.ListVal, m.ListErr
}

func (m *MockClient) CreateConversation(id string, messages []models.Message) error {
	m.CreateCalled = true
	m.LastConversation = id
	m.LastSeedMessages = messages
	return m.CreateErr
}

func (m *MockClient) GetConversation(id string) (*models.Conversation, error) {
	m.LastConversation = id
	return m.ConversationVal, m.ConversationErr
}

func (m *MockClient) AddMessage(id, role, content, branch string) error {
	m.LastConversation = id
	m.LastRole = role
	m.LastContent = content
	m.LastBranch = branch
	return m.AddMessageErr
}

func (m *MockClient) Generate(id string, opts *GenerateOptions) ([]models.Message, error) {
	m.GenerateCalled = true
	m.LastConversation = id
	m.LastGenerateOpts = opts
	return m.GenerateVal, m.GenerateErr
}

func (m *MockClient) GenerateStream(id string, opts *GenerateOptions) (*ChunkStream, error) {
	m.StreamCalled = true
	m.LastConversation = id
	m.LastGenerateOpts = opts
	if m.StreamErr != nil {
		return nil, m.StreamErr
	}
	body := io.NopCloser(strings.NewReader(m.StreamBody))
	return newChunkStream(body, zerolog.Nop()), nil
}
