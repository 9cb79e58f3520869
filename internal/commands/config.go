package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/diogo/gptmecli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		fmt.Println(sectionStyle.Render("Configuration"))
		fmt.Printf("  server_url:      %s\n", cfg.ServerURL)
		fmt.Printf("  default_model:   %s\n", orUnset(cfg.DefaultModel))
		fmt.Printf("  stream:          %t\n", cfg.Stream)
		fmt.Printf("  timeout_seconds: %d\n", cfg.TimeoutSeconds)
		fmt.Printf("  verbose:         %t\n", cfg.Verbose)
		if cfg.Token != "" {
			fmt.Printf("  token:           %s\n", truncateValue(cfg.Token, 8))
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Sets one configuration value and saves the file.

Keys: server_url, default_model, stream, timeout_seconds, verbose`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(args[0], args[1])
	},
}

func runConfigSet(key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "server_url":
		cfg.ServerURL = value
	case "default_model":
		cfg.DefaultModel = value
	case "token":
		cfg.Token = value
	case "stream":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		cfg.Stream = b
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		cfg.Verbose = b
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid timeout %q", value)
		}
		cfg.TimeoutSeconds = n
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Printf("%s %s = %s\n", colorize("✓", colorSuccess), key, value)
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return dimStyle.Render("(server default)")
	}
	return s
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
}
