package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "Manage studio branches",
}

var branchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List branches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, "/branches", rolesRead,
			func(ctx context.Context, c *api.Client) ([]api.Branch, error) {
				return c.ListBranches(ctx)
			},
			[]string{"ID", "NAME", "ADDRESS", "PHONE", "ACTIVE"},
			func(b api.Branch) []string {
				return []string{fmt.Sprint(b.ID), b.Name, b.Address, b.Phone, yesNo(b.Active)}
			})
	},
}

var branchFile string

var branchesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a branch from a JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, "/branches", branchFile,
			func(ctx context.Context, c *api.Client, in *api.Branch) (*api.Branch, error) {
				return c.CreateBranch(ctx, in)
			})
	},
}

var branchesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a branch from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, "/branches", args[0], branchFile,
			func(ctx context.Context, c *api.Client, id int, in *api.Branch) (*api.Branch, error) {
				return c.UpdateBranch(ctx, id, in)
			})
	},
}

var branchesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a branch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, "/branches", args[0], rolesWrite,
			func(ctx context.Context, c *api.Client, id int) error {
				return c.DeleteBranch(ctx, id)
			})
	},
}

func init() {
	addListFlags(branchesListCmd)
	branchesCreateCmd.Flags().StringVar(&branchFile, "file", "-", "JSON document ('-' for stdin)")
	branchesUpdateCmd.Flags().StringVar(&branchFile, "file", "-", "JSON document ('-' for stdin)")

	branchesCmd.AddCommand(branchesListCmd)
	branchesCmd.AddCommand(branchesCreateCmd)
	branchesCmd.AddCommand(branchesUpdateCmd)
	branchesCmd.AddCommand(branchesDeleteCmd)
	rootCmd.AddCommand(branchesCmd)
}
