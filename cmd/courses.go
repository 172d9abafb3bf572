package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Manage the course catalog",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, "/courses", rolesRead,
			func(ctx context.Context, c *api.Client) ([]api.Course, error) {
				return c.ListCourses(ctx)
			},
			[]string{"ID", "NAME", "BRANCH", "INSTRUCTOR", "CAPACITY", "PRICE", "ACTIVE"},
			func(c api.Course) []string {
				return []string{
					fmt.Sprint(c.ID), c.Name, fmt.Sprint(c.BranchID),
					fmt.Sprint(c.InstructorID), fmt.Sprint(c.Capacity),
					fmt.Sprintf("%.2f", c.Price), yesNo(c.Active),
				}
			})
	},
}

var courseFile string

var coursesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a course from a JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, "/courses", courseFile,
			func(ctx context.Context, c *api.Client, in *api.Course) (*api.Course, error) {
				return c.CreateCourse(ctx, in)
			})
	},
}

var coursesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a course from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, "/courses", args[0], courseFile,
			func(ctx context.Context, c *api.Client, id int, in *api.Course) (*api.Course, error) {
				return c.UpdateCourse(ctx, id, in)
			})
	},
}

var coursesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, "/courses", args[0], rolesWrite,
			func(ctx context.Context, c *api.Client, id int) error {
				return c.DeleteCourse(ctx, id)
			})
	},
}

func init() {
	addListFlags(coursesListCmd)
	coursesCreateCmd.Flags().StringVar(&courseFile, "file", "-", "JSON document ('-' for stdin)")
	coursesUpdateCmd.Flags().StringVar(&courseFile, "file", "-", "JSON document ('-' for stdin)")

	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesCreateCmd)
	coursesCmd.AddCommand(coursesUpdateCmd)
	coursesCmd.AddCommand(coursesDeleteCmd)
	rootCmd.AddCommand(coursesCmd)
}
