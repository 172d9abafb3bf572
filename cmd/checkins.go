package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
)

var checkinsCmd = &cobra.Command{
	Use:   "checkins",
	Short: "Manage check-ins",
}

var checkinsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List check-ins",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, "/checkins", rolesRead,
			func(ctx context.Context, c *api.Client) ([]api.CheckIn, error) {
				return c.ListCheckIns(ctx)
			},
			[]string{"ID", "ENROLLMENT", "CUSTOMER", "COURSE", "BRANCH", "CHECKED IN"},
			func(ci api.CheckIn) []string {
				return []string{
					fmt.Sprint(ci.ID), fmt.Sprint(ci.EnrollmentID),
					fmt.Sprint(ci.CustomerID), fmt.Sprint(ci.CourseID),
					fmt.Sprint(ci.BranchID), ci.CheckedInAt.Format(time.RFC3339),
				}
			})
	},
}

var checkinFile string

// Front-desk staff record check-ins, so creation uses the read allow-list
// rather than the admin one. Corrections still require an admin.
var checkinsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Record a check-in from a JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if _, err := e.ensure(cmd, "/checkins", rolesRead); err != nil {
			return err
		}

		in, err := readJSONInput[api.CheckIn](cmd, checkinFile)
		if err != nil {
			return err
		}
		out, err := e.client.CreateCheckIn(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("create failed: %w", err)
		}
		return renderJSON(cmd.OutOrStdout(), out)
	},
}

var checkinsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a mistaken check-in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, "/checkins", args[0], rolesWrite,
			func(ctx context.Context, c *api.Client, id int) error {
				return c.DeleteCheckIn(ctx, id)
			})
	},
}

func init() {
	addListFlags(checkinsListCmd)
	checkinsCreateCmd.Flags().StringVar(&checkinFile, "file", "-", "JSON document ('-' for stdin)")

	checkinsCmd.AddCommand(checkinsListCmd)
	checkinsCmd.AddCommand(checkinsCreateCmd)
	checkinsCmd.AddCommand(checkinsDeleteCmd)
	rootCmd.AddCommand(checkinsCmd)
}
