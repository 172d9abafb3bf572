package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cxndizz/yoga-admin-cli/internal/session"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the booking platform",
	Long:  "Login to the booking platform and store the session securely.",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (will prompt if not provided)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	// Prompt for email if not provided
	if loginEmail == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Email: ")
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &loginEmail); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}

	// Prompt for password if not provided
	if loginPassword == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout()) // newline after password
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		loginPassword = string(passwordBytes)
	}

	pair, err := e.client.Login(cmd.Context(), loginEmail, loginPassword)
	if err != nil {
		return err
	}

	if err := e.cache.Update(session.Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         pair.User,
	}); err != nil {
		return err
	}

	if pair.User != nil && pair.User.Email != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", pair.User.Email, pair.User.Role)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Login successful! Session stored securely.")
	}

	// Reset flags for reuse in tests
	loginEmail = ""
	loginPassword = ""

	return nil
}
