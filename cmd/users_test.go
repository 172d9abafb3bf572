package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestUsersListCommand_Paginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/me":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]any{"id": 1, "role": "super_admin"},
			})
		case "/api/v1/users":
			items := make([]map[string]any, 0, 12)
			for i := 1; i <= 12; i++ {
				items = append(items, map[string]any{
					"id": i, "email": fmt.Sprintf("admin%d@studio.test", i),
					"role": "admin", "active": true,
				})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store := setupTestEnv(t, server.URL)
	seedSession(t, store, "super_admin")

	cmd := &cobra.Command{Use: "yoga-admin"}
	cmd.AddCommand(usersCmd)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SetArgs([]string{"users", "list", "--page", "2", "--page-size", "5"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("users list failed: %v", err)
	}

	outStr := output.String()
	if !strings.Contains(outStr, "admin6@studio.test") || !strings.Contains(outStr, "admin10@studio.test") {
		t.Errorf("expected second page rows, got:\n%s", outStr)
	}
	if strings.Contains(outStr, "admin5@studio.test") || strings.Contains(outStr, "admin11@studio.test") {
		t.Errorf("expected rows outside page 2 to be absent, got:\n%s", outStr)
	}
	if !strings.Contains(outStr, "Page 2 of 3 (12 items)") {
		t.Errorf("expected page footer, got:\n%s", outStr)
	}
}

func TestUsersListCommand_RequiresSuperAdmin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/me":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]any{"id": 1, "role": "admin"},
			})
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store := setupTestEnv(t, server.URL)
	seedSession(t, store, "admin")

	cmd := &cobra.Command{Use: "yoga-admin"}
	cmd.AddCommand(usersCmd)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SetArgs([]string{"users", "list"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected non-super-admin to be rejected, got nil")
	}
	if !strings.Contains(err.Error(), "yoga-admin login") {
		t.Errorf("expected login hint in error, got: %v", err)
	}
}
