package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
	"github.com/cxndizz/yoga-admin-cli/internal/pagination"
)

// Shared list flags. Cobra runs one command per invocation, so the resource
// list commands can share these without trampling each other.
var (
	listPage     int
	listPageSize int
	listJSON     bool
)

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&listPage, "page", 1, "Page to display")
	cmd.Flags().IntVar(&listPageSize, "page-size", 0, "Items per page (defaults to the configured page size)")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Print the page as JSON")
}

// runList fetches the whole collection, windows it client-side, and renders
// one page. Errors here are local and recoverable by rerunning; they never
// change authentication state.
func runList[T any](
	cmd *cobra.Command,
	origin string,
	roles []string,
	fetch func(ctx context.Context, c *api.Client) ([]T, error),
	headers []string,
	row func(T) []string,
) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	if _, err := e.ensure(cmd, origin, roles); err != nil {
		return err
	}

	items, err := fetch(cmd.Context(), e.client)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", origin[1:], err)
	}

	size := listPageSize
	if size <= 0 {
		size = e.cfg.Page.Size
	}
	page := pagination.Paginate(items, listPage, size)

	if listJSON {
		return renderJSON(cmd.OutOrStdout(), page)
	}

	if page.TotalItems == 0 {
		cmd.Println("No results")
		return nil
	}

	rows := make([][]string, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, row(item))
	}
	renderTable(cmd.OutOrStdout(), headers, rows)
	renderPageFooter(cmd.OutOrStdout(), page)

	return nil
}

// readJSONInput decodes the create/update document from a file, or from
// stdin when the argument is "-".
func readJSONInput[T any](cmd *cobra.Command, file string) (*T, error) {
	var data []byte
	var err error

	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse input as JSON: %w", err)
	}
	return &v, nil
}

func runCreate[T any](
	cmd *cobra.Command,
	origin, file string,
	create func(ctx context.Context, c *api.Client, in *T) (*T, error),
) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	if _, err := e.ensure(cmd, origin, rolesWrite); err != nil {
		return err
	}

	in, err := readJSONInput[T](cmd, file)
	if err != nil {
		return err
	}

	out, err := create(cmd.Context(), e.client, in)
	if err != nil {
		return fmt.Errorf("create failed: %w", err)
	}
	return renderJSON(cmd.OutOrStdout(), out)
}

func runUpdate[T any](
	cmd *cobra.Command,
	origin, idArg, file string,
	update func(ctx context.Context, c *api.Client, id int, in *T) (*T, error),
) error {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		return fmt.Errorf("invalid id %q", idArg)
	}

	e, err := newEnv()
	if err != nil {
		return err
	}
	if _, err := e.ensure(cmd, origin, rolesWrite); err != nil {
		return err
	}

	in, err := readJSONInput[T](cmd, file)
	if err != nil {
		return err
	}

	out, err := update(cmd.Context(), e.client, id, in)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	return renderJSON(cmd.OutOrStdout(), out)
}

func runDelete(
	cmd *cobra.Command,
	origin, idArg string,
	roles []string,
	remove func(ctx context.Context, c *api.Client, id int) error,
) error {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		return fmt.Errorf("invalid id %q", idArg)
	}

	e, err := newEnv()
	if err != nil {
		return err
	}
	if _, err := e.ensure(cmd, origin, roles); err != nil {
		return err
	}

	if err := remove(cmd.Context(), e.client, id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	cmd.Printf("Deleted %d\n", id)
	return nil
}
