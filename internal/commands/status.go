package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check server connectivity",
	Long:  `Checks that the configured gptme server is reachable and responding.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(nil)
	},
}

func runStatus(deps *Dependencies) error {
	client, cleanup, err := resolveClient(deps)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to create client"))
		return err
	}
	defer cleanup()

	status, err := client.Health()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Server unreachable"))
		return err
	}

	checkmark := colorize("✓", colorSuccess)
	fmt.Printf("%s Connected to %s\n", checkmark, client.BaseURL())
	if status.Message != "" {
		fmt.Println(dimStyle.Render("  " + status.Message))
	}
	if model := client.GetModel(); model != "" {
		fmt.Println(dimStyle.Render("  Model: " + model))
	}
	return nil
}
