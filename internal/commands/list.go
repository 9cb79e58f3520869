package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listLimitFlag int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(nil)
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimitFlag, "limit", "n", 0, "Maximum number of conversations to show")
}

func runList(deps *Dependencies) error {
	client, cleanup, err := resolveClient(deps)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to create client"))
		return err
	}
	defer cleanup()

	summaries, err := client.ListConversations(listLimitFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to list conversations"))
		return err
	}

	if len(summaries) == 0 {
		fmt.Println(dimStyle.Render("No conversations yet. Start one with: gptmecli \"hello\""))
		return nil
	}

	fmt.Println(sectionStyle.Render(fmt.Sprintf("Conversations (%d)", len(summaries))))
	for _, s := range summaries {
		line := fmt.Sprintf("  %-30s %3d messages  %s",
			truncateValue(s.Name, 30),
			s.MessageCount,
			s.ModifiedTime().Format("2006-01-02 15:04"))
		if s.Branches > 1 {
			line += dimStyle.Render(fmt.Sprintf("  (%d branches)", s.Branches))
		}
		fmt.Println(line)
	}
	return nil
}
