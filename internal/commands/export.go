package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/gptmecli/internal/export"
)

var (
	exportFormatFlag     string
	exportOutputFlag     string
	exportTimestampsFlag bool
)

var exportCmd = &cobra.Command{
	Use:   "export <conversation>",
	Short: "Export a conversation as markdown or JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(nil, args[0])
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormatFlag, "format", "F", "markdown", "Output format (markdown, json)")
	exportCmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().BoolVar(&exportTimestampsFlag, "timestamps", false, "Include message timestamps")
}

func runExport(deps *Dependencies, id string) error {
	format, err := export.ParseFormat(exportFormatFlag)
	if err != nil {
		return err
	}

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

	transcript := export.Transcript{
		ID:        id,
		Workspace: conv.Workspace,
		Exported:  time.Now().UTC(),
	}
	for _, msg := range conv.Log {
		transcript.Messages = append(transcript.Messages, export.Message{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		})
	}

	out, err := export.Render(transcript, export.Options{
		Format:            format,
		IncludeTimestamps: exportTimestampsFlag,
	})
	if err != nil {
		return err
	}

	if exportOutputFlag != "" {
		if err := os.WriteFile(exportOutputFlag, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s Exported %s to %s\n", colorize("✓", colorSuccess), id, exportOutputFlag)
		return nil
	}

	fmt.Print(out)
	return nil
}
