package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		// Any signed-in role may ask who it is.
		res, err := e.ensure(cmd, "/whoami", rolesRead)
		if err != nil {
			return err
		}

		u := res.User
		cmd.Printf("ID:          %d\n", u.ID)
		if u.Email != "" {
			cmd.Printf("Email:       %s\n", u.Email)
		}
		if u.Name != "" {
			cmd.Printf("Name:        %s\n", u.Name)
		}
		cmd.Printf("Role:        %s\n", u.Role)
		if len(u.Permissions) > 0 {
			cmd.Printf("Permissions: %s\n", strings.Join(u.Permissions, ", "))
		}
		if res.Degraded {
			fmt.Fprintln(cmd.OutOrStdout(), "(cached profile)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
