package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update yoga-admin configuration settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long:  "Display the current effective configuration including environment variable overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cmd.Printf("Server:\n")
		cmd.Printf("  URL: %s\n", cfg.Server.URL)
		cmd.Printf("  Timeout: %s\n", cfg.Server.Timeout)
		cmd.Printf("\n")
		cmd.Printf("Session:\n")
		cmd.Printf("  Backend: %s\n", cfg.Session.Backend)
		if cfg.Session.File != "" {
			cmd.Printf("  File: %s\n", cfg.Session.File)
		}
		cmd.Printf("\n")
		cmd.Printf("Auth:\n")
		cmd.Printf("  Refresh threshold: %s\n", cfg.Auth.RefreshThreshold)
		cmd.Printf("\n")
		cmd.Printf("Dashboard:\n")
		cmd.Printf("  Poll interval: %s\n", cfg.Dashboard.PollInterval)
		cmd.Printf("\n")
		cmd.Printf("Page:\n")
		cmd.Printf("  Size: %d\n", cfg.Page.Size)
		cmd.Printf("\n")
		cmd.Printf("Logging:\n")
		cmd.Printf("  Level: %s\n", cfg.Logging.Level)

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value>",
	Short:             "Update configuration value",
	Long:              "Update a configuration value in the config file. Example: yoga-admin config set server.url https://api.example.com",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: configKeyCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		parts := strings.Split(key, ".")
		if len(parts) != 2 {
			return fmt.Errorf("invalid key format. Expected format: section.field (e.g., server.url)")
		}

		section := parts[0]
		field := parts[1]

		switch section {
		case "server":
			switch field {
			case "url":
				cfg.Server.URL = value
			case "timeout":
				d, err := time.ParseDuration(value)
				if err != nil {
					return fmt.Errorf("invalid duration: %s", value)
				}
				cfg.Server.Timeout = d
			default:
				return fmt.Errorf("unknown server field: %s", field)
			}
		case "session":
			switch field {
			case "backend":
				cfg.Session.Backend = value
			case "file":
				cfg.Session.File = value
			default:
				return fmt.Errorf("unknown session field: %s", field)
			}
		case "auth":
			switch field {
			case "refresh_threshold":
				d, err := time.ParseDuration(value)
				if err != nil {
					return fmt.Errorf("invalid duration: %s", value)
				}
				cfg.Auth.RefreshThreshold = d
			default:
				return fmt.Errorf("unknown auth field: %s", field)
			}
		case "dashboard":
			switch field {
			case "poll_interval":
				d, err := time.ParseDuration(value)
				if err != nil {
					return fmt.Errorf("invalid duration: %s", value)
				}
				cfg.Dashboard.PollInterval = d
			default:
				return fmt.Errorf("unknown dashboard field: %s", field)
			}
		case "page":
			switch field {
			case "size":
				size, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid page size: %s", value)
				}
				cfg.Page.Size = size
			default:
				return fmt.Errorf("unknown page field: %s", field)
			}
		case "logging":
			switch field {
			case "level":
				cfg.Logging.Level = value
			default:
				return fmt.Errorf("unknown logging field: %s", field)
			}
		default:
			return fmt.Errorf("unknown config section: %s", section)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		cmd.Printf("Updated %s to: %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configKeyCompletion provides tab completion for config keys
func configKeyCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) >= 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	validKeys := []string{
		"server.url\tBackend base URL",
		"server.timeout\tHTTP request timeout",
		"session.backend\tSession storage backend (keyring, file)",
		"session.file\tSession file path for the file backend",
		"auth.refresh_threshold\tRefresh tokens expiring within this window",
		"dashboard.poll_interval\tDashboard polling interval",
		"page.size\tDefault list page size",
		"logging.level\tLogging level (trace, debug, info, warn, error)",
	}

	return validKeys, cobra.ShellCompDirectiveNoFileComp
}
