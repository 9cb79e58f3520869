package commands

import (
	"testing"

	"github.com/diogo/gptmecli/internal/api"
	"github.com/diogo/gptmecli/internal/models"
)

func TestListCommand(t *testing.T) {
	if listCmd.Use != "list" {
		t.Errorf("Expected use 'list', got %s", listCmd.Use)
	}

	flag := listCmd.Flags().Lookup("limit")
	if flag == nil {
		t.Fatal("limit flag not found")
	}
	if flag.Shorthand != "n" {
		t.Errorf("Expected shorthand 'n', got %q", flag.Shorthand)
	}
}

func TestRunList(t *testing.T) {
	mock := &api.MockClient{
		ListVal: []models.ConversationSummary{
			{Name: "tutorial", MessageCount: 4, Modified: 1756382400},
			{Name: "scratch", MessageCount: 1, Branches: 2},
		},
	}

	if err := runList(&Dependencies{Client: mock}); err != nil {
		t.Fatalf("runList: %v", err)
	}
}

func TestRunList_PassesLimit(t *testing.T) {
	defer func() { listLimitFlag = 0 }()
	listLimitFlag = 7

	mock := &api.MockClient{}
	if err := runList(&Dependencies{Client: mock}); err != nil {
		t.Fatalf("runList: %v", err)
	}
	if mock.LastListLimit != 7 {
		t.Errorf("limit = %d, want 7", mock.LastListLimit)
	}
}

func TestRunList_Empty(t *testing.T) {
	mock := &api.MockClient{}
	if err := runList(&Dependencies{Client: mock}); err != nil {
		t.Fatalf("runList with no conversations: %v", err)
	}
}
