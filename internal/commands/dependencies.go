package commands

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/diogo/gptmecli/internal/api"
	"github.com/diogo/gptmecli/internal/config"
	"github.com/diogo/gptmecli/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(client api.ClientInterface, conversationID string) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client is the server API client.
	Client api.ClientInterface

	// TUI is the terminal user interface.
	TUI TUIInterface
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(client api.ClientInterface, conversationID string) error {
	return tui.RunChat(client, conversationID)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI: &DefaultTUI{},
	}
}

// newClientFunc creates the production API client. Tests replace it.
var newClientFunc = func() (api.ClientInterface, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	opts := []api.ClientOption{}
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}
	if modelFlag != "" {
		cfg.DefaultModel = modelFlag
	}
	if cfg.Verbose || verboseFlag {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		opts = append(opts, api.WithLogger(logger))
	}

	return api.NewClientFromConfig(cfg, opts...)
}

// resolveClient returns the injected client when present, otherwise a
// fresh production client. The returned cleanup closes only clients
// this call created.
func resolveClient(deps *Dependencies) (api.ClientInterface, func(), error) {
	if deps != nil && deps.Client != nil {
		return deps.Client, func() {}, nil
	}
	client, err := newClientFunc()
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}
