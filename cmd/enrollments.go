package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
)

var enrollmentsCmd = &cobra.Command{
	Use:   "enrollments",
	Short: "Manage enrollments",
}

var enrollmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List enrollments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, "/enrollments", rolesRead,
			func(ctx context.Context, c *api.Client) ([]api.Enrollment, error) {
				return c.ListEnrollments(ctx)
			},
			[]string{"ID", "COURSE", "CUSTOMER", "STATUS", "REMAINING"},
			func(e api.Enrollment) []string {
				return []string{
					fmt.Sprint(e.ID), fmt.Sprint(e.CourseID), fmt.Sprint(e.CustomerID),
					e.Status, fmt.Sprint(e.Remaining),
				}
			})
	},
}

var enrollmentFile string

var enrollmentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an enrollment from a JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, "/enrollments", enrollmentFile,
			func(ctx context.Context, c *api.Client, in *api.Enrollment) (*api.Enrollment, error) {
				return c.CreateEnrollment(ctx, in)
			})
	},
}

var enrollmentsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an enrollment from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, "/enrollments", args[0], enrollmentFile,
			func(ctx context.Context, c *api.Client, id int, in *api.Enrollment) (*api.Enrollment, error) {
				return c.UpdateEnrollment(ctx, id, in)
			})
	},
}

var enrollmentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an enrollment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, "/enrollments", args[0], rolesWrite,
			func(ctx context.Context, c *api.Client, id int) error {
				return c.DeleteEnrollment(ctx, id)
			})
	},
}

func init() {
	addListFlags(enrollmentsListCmd)
	enrollmentsCreateCmd.Flags().StringVar(&enrollmentFile, "file", "-", "JSON document ('-' for stdin)")
	enrollmentsUpdateCmd.Flags().StringVar(&enrollmentFile, "file", "-", "JSON document ('-' for stdin)")

	enrollmentsCmd.AddCommand(enrollmentsListCmd)
	enrollmentsCmd.AddCommand(enrollmentsCreateCmd)
	enrollmentsCmd.AddCommand(enrollmentsUpdateCmd)
	enrollmentsCmd.AddCommand(enrollmentsDeleteCmd)
	rootCmd.AddCommand(enrollmentsCmd)
}
