package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Manage customers",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, "/customers", rolesRead,
			func(ctx context.Context, c *api.Client) ([]api.Customer, error) {
				return c.ListCustomers(ctx)
			},
			[]string{"ID", "NAME", "EMAIL", "PHONE", "ACTIVE"},
			func(c api.Customer) []string {
				return []string{fmt.Sprint(c.ID), c.Name, c.Email, c.Phone, yesNo(c.Active)}
			})
	},
}

var customerFile string

var customersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer from a JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, "/customers", customerFile,
			func(ctx context.Context, c *api.Client, in *api.Customer) (*api.Customer, error) {
				return c.CreateCustomer(ctx, in)
			})
	},
}

var customersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a customer from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, "/customers", args[0], customerFile,
			func(ctx context.Context, c *api.Client, id int, in *api.Customer) (*api.Customer, error) {
				return c.UpdateCustomer(ctx, id, in)
			})
	},
}

var customersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, "/customers", args[0], rolesWrite,
			func(ctx context.Context, c *api.Client, id int) error {
				return c.DeleteCustomer(ctx, id)
			})
	},
}

func init() {
	addListFlags(customersListCmd)
	customersCreateCmd.Flags().StringVar(&customerFile, "file", "-", "JSON document ('-' for stdin)")
	customersUpdateCmd.Flags().StringVar(&customerFile, "file", "-", "JSON document ('-' for stdin)")

	customersCmd.AddCommand(customersListCmd)
	customersCmd.AddCommand(customersCreateCmd)
	customersCmd.AddCommand(customersUpdateCmd)
	customersCmd.AddCommand(customersDeleteCmd)
	rootCmd.AddCommand(customersCmd)
}
