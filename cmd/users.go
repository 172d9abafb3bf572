package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
)

// Backoffice accounts are the most sensitive resource; every operation here
// is restricted to super admins, including reads.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage backoffice accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backoffice accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, "/users", rolesSuper,
			func(ctx context.Context, c *api.Client) ([]api.AdminUser, error) {
				return c.ListUsers(ctx)
			},
			[]string{"ID", "EMAIL", "NAME", "ROLE", "PERMISSIONS", "ACTIVE"},
			func(u api.AdminUser) []string {
				return []string{
					fmt.Sprint(u.ID), u.Email, u.Name, u.Role,
					strings.Join(u.Permissions, ","), yesNo(u.Active),
				}
			})
	},
}

var userFile string

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a backoffice account from a JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if _, err := e.ensure(cmd, "/users", rolesSuper); err != nil {
			return err
		}

		in, err := readJSONInput[api.AdminUser](cmd, userFile)
		if err != nil {
			return err
		}
		out, err := e.client.CreateUser(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("create failed: %w", err)
		}
		return renderJSON(cmd.OutOrStdout(), out)
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a backoffice account from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		e, err := newEnv()
		if err != nil {
			return err
		}
		if _, err := e.ensure(cmd, "/users", rolesSuper); err != nil {
			return err
		}

		in, err := readJSONInput[api.AdminUser](cmd, userFile)
		if err != nil {
			return err
		}
		out, err := e.client.UpdateUser(cmd.Context(), id, in)
		if err != nil {
			return fmt.Errorf("update failed: %w", err)
		}
		return renderJSON(cmd.OutOrStdout(), out)
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a backoffice account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, "/users", args[0], rolesSuper,
			func(ctx context.Context, c *api.Client, id int) error {
				return c.DeleteUser(ctx, id)
			})
	},
}

func init() {
	addListFlags(usersListCmd)
	usersCreateCmd.Flags().StringVar(&userFile, "file", "-", "JSON document ('-' for stdin)")
	usersUpdateCmd.Flags().StringVar(&userFile, "file", "-", "JSON document ('-' for stdin)")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
