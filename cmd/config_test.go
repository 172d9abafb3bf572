package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cxndizz/yoga-admin-cli/internal/config"
)

func TestConfigShowCommand(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(config.EnvConfigPath, configPath)

	configYAML := `server:
  url: http://test:9090
session:
  backend: file
  file: /test/session.json
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cmd := &cobra.Command{Use: "yoga-admin"}
	cmd.AddCommand(configCmd)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SetArgs([]string{"config", "show"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show command failed: %v", err)
	}

	got := output.String()
	expectedParts := []string{
		"Server:",
		"URL: http://test:9090",
		"Session:",
		"Backend: file",
		"File: /test/session.json",
		"Logging:",
		"Level: debug",
	}
	for _, part := range expectedParts {
		if !strings.Contains(got, part) {
			t.Errorf("output missing expected part: %s\nGot:\n%s", part, got)
		}
	}
}

func TestConfigSetCommand(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(config.EnvConfigPath, configPath)

	cmd := &cobra.Command{Use: "yoga-admin"}
	cmd.AddCommand(configCmd)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SetArgs([]string{"config", "set", "server.url", "https://api.studio.test"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config set command failed: %v", err)
	}
	if !strings.Contains(output.String(), "Updated server.url") {
		t.Errorf("expected confirmation message, got: %s", output.String())
	}

	// Verify the file was written with the new value
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("failed to parse written config: %v", err)
	}
	if cfg.Server.URL != "https://api.studio.test" {
		t.Errorf("expected saved URL, got %q", cfg.Server.URL)
	}
}

func TestConfigSetCommand_RejectsInvalidValue(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(config.EnvConfigPath, configPath)

	cmd := &cobra.Command{Use: "yoga-admin"}
	cmd.AddCommand(configCmd)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SetArgs([]string{"config", "set", "session.backend", "cloud"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("expected no config file to be written for invalid value")
	}
}
