// Package commands provides CLI commands for gptmecli.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/gptmecli/internal/config"
	"github.com/diogo/gptmecli/internal/models"
)

var (
	// Global flags
	serverFlag       string
	modelFlag        string
	verboseFlag      bool
	conversationFlag string
	outputFlag       string
	fileFlag         string
	streamFlag       bool
	noStreamFlag     bool
	copyFlag         bool
	rawFlag          bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gptmecli [prompt]",
	Short: "CLI for a gptme conversation server",
	Long: `gptmecli is a command-line interface for a gptme server. It talks to
the server's REST API to manage conversations and generate responses,
including incremental streaming output.

Examples:
  gptmecli status                       Check the server is up
  gptmecli "What is Go?"                Send a one-shot prompt
  gptmecli -c my-notes "Summarize"      Continue a named conversation
  gptmecli -f prompt.md                 Read prompt from file
  cat prompt.md | gptmecli              Read prompt from stdin
  gptmecli chat                         Start interactive chat
  gptmecli demo                         Walk through the API end to end`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check for version flag
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("gptmecli %s\n", models.Version)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		// Check for file input
		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(nil, string(data))
		}

		// Check for stdin
		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(nil, string(data))
		}

		// Check for positional argument
		if len(args) > 0 {
			return runQuery(nil, args[0])
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	config.LoadDotEnv()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Server URL (default from config or GPTME_SERVER_URL)")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (e.g. openai/gpt-4o); empty uses the server default")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "V", false, "Enable verbose diagnostics")
	rootCmd.Flags().StringVarP(&conversationFlag, "conversation", "c", "", "Conversation to use (created when missing)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().BoolVar(&streamFlag, "stream", false, "Force streaming generation")
	rootCmd.Flags().BoolVar(&noStreamFlag, "no-stream", false, "Force blocking generation")
	rootCmd.Flags().BoolVar(&copyFlag, "copy", false, "Copy response to clipboard")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print raw response without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(demoCmd)
}

// useStreaming decides whether a one-shot query streams, honoring the
// explicit flags over the configured default.
func useStreaming() bool {
	if noStreamFlag {
		return false
	}
	if streamFlag {
		return true
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return true
	}
	return cfg.Stream
}
