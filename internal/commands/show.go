package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/gptmecli/internal/models"
	"github.com/diogo/gptmecli/internal/render"
)

var showBranchFlag string

var showCmd = &cobra.Command{
	Use:   "show <conversation>",
	Short: "Print a conversation's messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(nil, args[0])
	},
}

func init() {
	showCmd.Flags().StringVarP(&showBranchFlag, "branch", "b", "", "Branch to display (default main)")
	showCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print without markdown rendering")
}

func runShow(deps *Dependencies, id string) error {
	client, cleanup, err := resolveClient(deps)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to create client"))
		return err
	}
	defer cleanup()

	conv, err := client.GetConversation(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to fetch conversation"))
		return err
	}

	// The main log is the default branch; others come from the branches map
	log := conv.Log
	if showBranchFlag != "" && showBranchFlag != models.DefaultBranch {
		branch, ok := conv.Branches[showBranchFlag]
		if !ok {
			return fmt.Errorf("branch %q not found in conversation %s", showBranchFlag, id)
		}
		log = branch
	}

	fmt.Println(sectionStyle.Render(id))
	if conv.Workspace != "" {
		fmt.Println(dimStyle.Render("Workspace: " + conv.Workspace))
	}
	if len(conv.Branches) > 1 {
		branches := make([]string, 0, len(conv.Branches))
		for name := range conv.Branches {
			branches = append(branches, name)
		}
		fmt.Println(dimStyle.Render("Branches: " + strings.Join(branches, ", ")))
	}
	fmt.Println()

	for _, msg := range log {
		printMessage(msg)
	}
	return nil
}

// printMessage writes one log entry with a styled role header
func printMessage(msg models.Message) {
	label := msg.Role
	if msg.Role == models.RoleUser {
		label = "you"
	}
	fmt.Println(roleStyle.Render(label + ":"))

	content := msg.Content
	if !rawFlag && isStdoutTTY() && msg.Role == models.RoleAssistant {
		if rendered, err := render.MarkdownWithWidth(content, getTerminalWidth()); err == nil {
			content = strings.TrimRight(rendered, "\n")
		}
	}
	fmt.Println(content)
	fmt.Println()
}
