package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/gptmecli/internal/models"
)

var (
	sendRoleFlag   string
	sendBranchFlag string
	sendCreateFlag bool
)

var sendCmd = &cobra.Command{
	Use:   "send <conversation> <content>",
	Short: "Append a message to a conversation without generating",
	Long: `Appends a message to a conversation log. No response is generated;
use 'generate' afterwards, or use the root command for the combined flow.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(nil, args[0], args[1])
	},
}

func init() {
	sendCmd.Flags().StringVarP(&sendRoleFlag, "role", "r", models.RoleUser, "Message role (user, system, assistant)")
	sendCmd.Flags().StringVarP(&sendBranchFlag, "branch", "b", "", "Target branch (default main)")
	sendCmd.Flags().BoolVar(&sendCreateFlag, "create", false, "Create the conversation if it does not exist")
}

func runSend(deps *Dependencies, id, content string) error {
	client, cleanup, err := resolveClient(deps)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to create client"))
		return err
	}
	defer cleanup()

	if sendCreateFlag {
		if _, err := ensureConversation(client, id); err != nil {
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to prepare conversation"))
			return err
		}
	}

	if err := client.AddMessage(id, sendRoleFlag, content, sendBranchFlag); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to send message"))
		return err
	}

	fmt.Printf("%s Message added to %s\n", colorize("✓", colorSuccess), id)
	return nil
}
