package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	Long:  "Logout from the booking platform by removing the stored tokens and cached profile.",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	if err := e.cache.Clear(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	e.client.ClearToken()

	fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully. Session removed.")

	return nil
}
