package commands

import (
	"strings"
	"testing"

	"github.com/diogo/gptmecli/internal/api"
	apierrors "github.com/diogo/gptmecli/internal/errors"
	"github.com/diogo/gptmecli/internal/models"
)

func TestEnsureConversation_Existing(t *testing.T) {
	mock := &api.MockClient{
		ConversationVal: &models.Conversation{},
	}

	id, err := ensureConversation(mock, "my-notes")
	if err != nil {
		t.Fatalf("ensureConversation: %v", err)
	}
	if id != "my-notes" {
		t.Errorf("id = %q", id)
	}
	if mock.CreateCalled {
		t.Error("existing conversation should not be recreated")
	}
}

func TestEnsureConversation_CreatesMissing(t *testing.T) {
	mock := &api.MockClient{
		ConversationErr: apierrors.ErrConversationNotFound,
	}

	id, err := ensureConversation(mock, "fresh")
	if err != nil {
		t.Fatalf("ensureConversation: %v", err)
	}
	if id != "fresh" {
		t.Errorf("id = %q", id)
	}
	if !mock.CreateCalled {
		t.Error("missing conversation should be created")
	}
}

func TestEnsureConversation_GeneratesID(t *testing.T) {
	mock := &api.MockClient{}

	id, err := ensureConversation(mock, "")
	if err != nil {
		t.Fatalf("ensureConversation: %v", err)
	}
	if !strings.HasPrefix(id, "chat-") {
		t.Errorf("generated id %q should have chat- prefix", id)
	}
	if len(id) != len("chat-")+8 {
		t.Errorf("generated id %q has unexpected length", id)
	}
	if !mock.CreateCalled {
		t.Error("generated conversation should be created on the server")
	}
}

func TestEnsureConversation_PropagatesErrors(t *testing.T) {
	mock := &api.MockClient{
		ConversationErr: apierrors.ErrAuthFailed,
	}

	if _, err := ensureConversation(mock, "anything"); err == nil {
		t.Error("non-404 errors should propagate, not trigger creation")
	}
	if mock.CreateCalled {
		t.Error("auth failure should not trigger creation")
	}
}

func TestStreamResponse_AssemblesChunks(t *testing.T) {
	mock := &api.MockClient{
		StreamBody: `data: {"role": "assistant", "content": "Hello"}
data: {"role": "assistant", "content": ", world"}
data: {"role": "assistant", "content": "Hello, world", "stored": true}
`,
	}

	got, err := streamResponse(mock, "test")
	if err != nil {
		t.Fatalf("streamResponse: %v", err)
	}
	if got != "Hello, world" {
		t.Errorf("assembled response = %q", got)
	}
	if mock.LastConversation != "test" {
		t.Errorf("conversation = %q", mock.LastConversation)
	}
}

func TestStreamResponse_StreamError(t *testing.T) {
	mock := &api.MockClient{
		StreamErr: apierrors.ErrConversationNotFound,
	}

	if _, err := streamResponse(mock, "missing"); !apierrors.IsNotFoundError(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestBlockingResponse_PicksLastAssistantMessage(t *testing.T) {
	mock := &api.MockClient{
		GenerateVal: []models.Message{
			{Role: models.RoleAssistant, Content: "first"},
			{Role: "tool", Content: "tool output"},
			{Role: models.RoleAssistant, Content: "final answer"},
		},
	}

	got, err := blockingResponse(mock, "test")
	if err != nil {
		t.Fatalf("blockingResponse: %v", err)
	}
	if got != "final answer" {
		t.Errorf("response = %q", got)
	}
}

func TestBlockingResponse_NoAssistantMessage(t *testing.T) {
	mock := &api.MockClient{
		GenerateVal: []models.Message{
			{Role: "tool", Content: "only tool output"},
		},
	}

	got, err := blockingResponse(mock, "test")
	if err != nil {
		t.Fatalf("blockingResponse: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty response, got %q", got)
	}
}

func TestRunQuery_EmptyPrompt(t *testing.T) {
	if err := runQuery(&Dependencies{Client: &api.MockClient{}}, "   \n"); err == nil {
		t.Error("expected error for empty prompt")
	}
}

func TestRunQuery_StreamingFlow(t *testing.T) {
	defer func() {
		conversationFlag = ""
		streamFlag = false
	}()
	conversationFlag = "existing"
	streamFlag = true

	mock := &api.MockClient{
		ConversationVal: &models.Conversation{},
		StreamBody:      `data: {"role": "assistant", "content": "hi there"}` + "\n",
	}

	if err := runQuery(&Dependencies{Client: mock}, "hello"); err != nil {
		t.Fatalf("runQuery: %v", err)
	}

	if mock.LastRole != models.RoleUser {
		t.Errorf("sent role = %q", mock.LastRole)
	}
	if mock.LastContent != "hello" {
		t.Errorf("sent content = %q", mock.LastContent)
	}
	if !mock.StreamCalled {
		t.Error("expected streaming generation")
	}
	if mock.CloseCalled {
		t.Error("injected clients must not be closed by the command")
	}
}

func TestRunQuery_BlockingFlow(t *testing.T) {
	defer func() {
		conversationFlag = ""
		noStreamFlag = false
	}()
	conversationFlag = "existing"
	noStreamFlag = true

	mock := &api.MockClient{
		ConversationVal: &models.Conversation{},
		GenerateVal: []models.Message{
			{Role: models.RoleAssistant, Content: "blocking answer"},
		},
	}

	if err := runQuery(&Dependencies{Client: mock}, "hello"); err != nil {
		t.Fatalf("runQuery: %v", err)
	}

	if !mock.GenerateCalled {
		t.Error("expected blocking generation")
	}
	if mock.StreamCalled {
		t.Error("--no-stream must not open a stream")
	}
}
