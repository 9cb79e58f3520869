package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/diogo/gptmecli/internal/api"
	"github.com/diogo/gptmecli/internal/models"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through the server API end to end",
	Long: `Exercises every server operation in sequence: health check,
conversation creation, message append, blocking generation and
streaming generation. Useful for verifying a server setup.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(nil)
	},
}

func runDemo(deps *Dependencies) error {
	client, cleanup, err := resolveClient(deps)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to create client"))
		return err
	}
	defer cleanup()

	// 1. Health check
	section(1, "Checking server status")
	status, err := client.Health()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Server unreachable"))
		return err
	}
	fmt.Printf("Server says: %s\n", status.Message)

	// 2. List existing conversations
	section(2, "Listing conversations")
	summaries, err := client.ListConversations(5)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Listing failed"))
		return err
	}
	fmt.Printf("Found %d conversations\n", len(summaries))
	for _, s := range summaries {
		fmt.Println(dimStyle.Render("  - " + s.Name))
	}

	// 3. Create a conversation seeded with a system prompt
	conversationID := fmt.Sprintf("demo-%s", uuid.NewString()[:8])
	section(3, "Creating conversation "+conversationID)
	seed := []models.Message{
		{Role: models.RoleSystem, Content: "You are a helpful AI assistant."},
	}
	if err := client.CreateConversation(conversationID, seed); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Creation failed"))
		return err
	}
	fmt.Println("Created")

	// 4. Add a user message and read the log back
	section(4, "Adding a user message")
	prompt := "Hello! Can you respond with a short greeting?"
	if err := client.AddMessage(conversationID, models.RoleUser, prompt, ""); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Add message failed"))
		return err
	}
	conv, err := client.GetConversation(conversationID)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Fetch failed"))
		return err
	}
	fmt.Printf("Log now holds %d messages (workspace %s)\n", len(conv.Log), conv.Workspace)

	// 5. Blocking generation
	section(5, "Generating a response (blocking)")
	generated, err := client.Generate(conversationID, &api.GenerateOptions{Model: modelFlag})
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Generation failed"))
		return err
	}
	for _, msg := range generated {
		fmt.Printf("%s %s\n", roleStyle.Render(msg.Role+":"), truncateValue(msg.Content, 200))
	}

	// 6. Streaming generation
	section(6, "Generating a response (streaming)")
	if err := client.AddMessage(conversationID, models.RoleUser, "Now count from 1 to 5.", ""); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Add message failed"))
		return err
	}
	stream, err := client.GenerateStream(conversationID, &api.GenerateOptions{Model: modelFlag})
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Streaming failed"))
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

	fmt.Println()
	fmt.Printf("%s Demo complete\n", colorize("✓", colorSuccess))
	fmt.Println(dimStyle.Render("The conversation stays on the server; inspect it with: gptmecli show " + conversationID))
	return nil
}

func section(n int, title string) {
	fmt.Println()
	fmt.Println(sectionStyle.Render(fmt.Sprintf("[%d] %s", n, title)))
}
