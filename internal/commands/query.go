package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/diogo/gptmecli/internal/api"
	apierrors "github.com/diogo/gptmecli/internal/errors"
	"github.com/diogo/gptmecli/internal/models"
	"github.com/diogo/gptmecli/internal/render"
)

// runQuery executes a one-shot prompt: resolve a conversation, append
// the user message and print the generated response.
func runQuery(deps *Dependencies, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	client, cleanup, err := resolveClient(deps)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to create client"))
		return err
	}
	defer cleanup()

	conversationID, err := ensureConversation(client, conversationFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to prepare conversation"))
		return err
	}

	if err := client.AddMessage(conversationID, models.RoleUser, prompt, ""); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Failed to send message"))
		return err
	}

	streaming := useStreaming()

	var response string
	if streaming {
		response, err = streamResponse(client, conversationID)
	} else {
		response, err = blockingResponse(client, conversationID)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Generation failed"))
		return err
	}

	if response == "" {
		return apierrors.ErrNoContent
	}

	// Streaming already printed the response incrementally
	if !streaming {
		printResponse(response)
	}

	if copyFlag {
		if err := clipboard.WriteAll(response); err != nil {
			fmt.Fprintln(os.Stderr, dimStyle.Render("Warning: could not copy to clipboard"))
		} else {
			fmt.Fprintln(os.Stderr, dimStyle.Render("Copied to clipboard"))
		}
	}

	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(response+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintln(os.Stderr, dimStyle.Render("Saved to "+outputFlag))
	}

	if conversationFlag == "" {
		fmt.Fprintln(os.Stderr, dimStyle.Render("Conversation: "+conversationID))
	}

	return nil
}

// ensureConversation returns a usable conversation id, creating the
// conversation on the server when it does not exist yet. An empty id
// produces a fresh generated one.
func ensureConversation(client api.ClientInterface, id string) (string, error) {
	if id == "" {
		id = fmt.Sprintf("chat-%s", uuid.NewString()[:8])
		if err := client.CreateConversation(id, nil); err != nil {
			return "", err
		}
		return id, nil
	}

	_, err := client.GetConversation(id)
	if err == nil {
		return id, nil
	}
	if !apierrors.IsNotFoundError(err) {
		return "", err
	}
	if err := client.CreateConversation(id, nil); err != nil {
		return "", err
	}
	return id, nil
}

// streamResponse generates with streaming, printing chunks as they
// arrive, and returns the assembled assistant text.
func streamResponse(client api.ClientInterface, conversationID string) (string, error) {
	opts := &api.GenerateOptions{Model: modelFlag}
	stream, err := client.GenerateStream(conversationID, opts)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var sb strings.Builder
	for stream.Next() {
		chunk := stream.Chunk()
		if chunk.Stored {
			// Persisted message marker, already printed incrementally
			continue
		}
		fmt.Print(chunk.Content)
		sb.WriteString(chunk.Content)
	}
	fmt.Println()

	if err := stream.Err(); err != nil {
		return sb.String(), err
	}
	return sb.String(), nil
}

// blockingResponse generates without streaming and returns the last
// assistant message.
func blockingResponse(client api.ClientInterface, conversationID string) (string, error) {
	var spin *spinner
	if isStdoutTTY() {
		spin = newSpinner("Generating response")
		spin.start()
	}

	opts := &api.GenerateOptions{Model: modelFlag}
	generated, err := client.Generate(conversationID, opts)
	if spin != nil {
		if err != nil {
			spin.stopWithError()
		} else {
			spin.stopWithSuccess("Response ready")
		}
	}
	if err != nil {
		return "", err
	}

	for i := len(generated) - 1; i >= 0; i-- {
		if generated[i].Role == models.RoleAssistant {
			return generated[i].Content, nil
		}
	}
	return "", nil
}

// printResponse writes the response to stdout, rendered as markdown
// when attached to a terminal.
func printResponse(response string) {
	if rawFlag || !isStdoutTTY() {
		fmt.Println(response)
		return
	}

	rendered, err := render.MarkdownWithWidth(response, getTerminalWidth())
	if err != nil {
		fmt.Println(response)
		return
	}
	fmt.Println(strings.TrimRight(rendered, "\n"))
}
