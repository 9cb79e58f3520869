package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/gptmecli/internal/api"
)

var generateCmd = &cobra.Command{
	Use:   "generate <conversation>",
	Short: "Generate the next response in a conversation",
	Long: `Asks the server to generate a response from the conversation's
current state. Streams by default; pass --no-stream to wait for the
complete response instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(nil, args[0])
	},
}

func init() {
	generateCmd.Flags().BoolVar(&noStreamFlag, "no-stream", false, "Wait for the complete response")
	generateCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print without markdown rendering")
}

func runGenerate(deps *Dependencies, id string) error {
	client, cleanup, err := resolveClient(deps)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to create client"))
		return err
	}
	defer cleanup()

	opts := &api.GenerateOptions{Model: modelFlag}

	if noStreamFlag {
		response, err := blockingResponse(client, id)
		if err != nil {
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Generation failed"))
			return err
		}
		printResponse(response)
		return nil
	}

	stream, err := client.GenerateStream(id, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Generation failed"))
		return err
	}
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Chunk()
		if chunk.Stored {
			continue
		}
		fmt.Print(chunk.Content)
	}
	fmt.Println()

	if err := stream.Err(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Stream interrupted"))
		return err
	}
	if dropped := stream.Dropped(); dropped > 0 {
		fmt.Fprintln(os.Stderr, dimStyle.Render(fmt.Sprintf("Skipped %d malformed chunks", dropped)))
	}
	return nil
}
