package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [conversation]",
	Short: "Start an interactive chat session",
	Long: `Opens a terminal chat interface connected to the server. With a
conversation argument it resumes that conversation, otherwise a new
one is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		return runChat(NewDependencies(), id)
	},
}

func runChat(deps *Dependencies, id string) error {
	client, cleanup, err := resolveClient(deps)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to create client"))
		return err
	}
	defer cleanup()

	conversationID, err := ensureConversation(client, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to prepare conversation"))
		return err
	}

	if err := deps.TUI.RunChat(client, conversationID); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Chat session failed"))
		return err
	}
	return nil
}
