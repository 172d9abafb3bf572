package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
)

var instructorsCmd = &cobra.Command{
	Use:   "instructors",
	Short: "Manage instructors",
}

var instructorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List instructors",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, "/instructors", rolesRead,
			func(ctx context.Context, c *api.Client) ([]api.Instructor, error) {
				return c.ListInstructors(ctx)
			},
			[]string{"ID", "NAME", "EMAIL", "PHONE", "ACTIVE"},
			func(i api.Instructor) []string {
				return []string{fmt.Sprint(i.ID), i.Name, i.Email, i.Phone, yesNo(i.Active)}
			})
	},
}

var instructorFile string

var instructorsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an instructor from a JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, "/instructors", instructorFile,
			func(ctx context.Context, c *api.Client, in *api.Instructor) (*api.Instructor, error) {
				return c.CreateInstructor(ctx, in)
			})
	},
}

var instructorsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an instructor from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, "/instructors", args[0], instructorFile,
			func(ctx context.Context, c *api.Client, id int, in *api.Instructor) (*api.Instructor, error) {
				return c.UpdateInstructor(ctx, id, in)
			})
	},
}

var instructorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an instructor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, "/instructors", args[0], rolesWrite,
			func(ctx context.Context, c *api.Client, id int) error {
				return c.DeleteInstructor(ctx, id)
			})
	},
}

func init() {
	addListFlags(instructorsListCmd)
	instructorsCreateCmd.Flags().StringVar(&instructorFile, "file", "-", "JSON document ('-' for stdin)")
	instructorsUpdateCmd.Flags().StringVar(&instructorFile, "file", "-", "JSON document ('-' for stdin)")

	instructorsCmd.AddCommand(instructorsListCmd)
	instructorsCmd.AddCommand(instructorsCreateCmd)
	instructorsCmd.AddCommand(instructorsUpdateCmd)
	instructorsCmd.AddCommand(instructorsDeleteCmd)
	rootCmd.AddCommand(instructorsCmd)
}
