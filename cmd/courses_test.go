package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/session"
)

func seedSession(t *testing.T, store *session.MemStore, role string) {
	t.Helper()

	access := testToken(t, "1", role, time.Now().Add(time.Hour))
	if err := store.Persist(session.Session{
		AccessToken:  access,
		RefreshToken: "refresh-1",
		User:         &session.User{ID: 1, Role: role},
	}); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
}

func TestCoursesListCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/me":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]any{"id": 1, "role": "staff"},
			})
		case "/api/v1/courses":
			items := make([]map[string]any, 0, 25)
			for i := 1; i <= 25; i++ {
				items = append(items, map[string]any{
					"id": i, "name": fmt.Sprintf("Vinyasa %d", i),
					"branch_id": 1, "instructor_id": 2,
					"capacity": 15, "price": 350.0, "active": true,
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
	seedSession(t, store, "staff")

	cmd := &cobra.Command{Use: "yoga-admin"}
	cmd.AddCommand(coursesCmd)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SetArgs([]string{"courses", "list", "--page", "2", "--page-size", "10"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("courses list failed: %v", err)
	}

	outStr := output.String()
	if !strings.Contains(outStr, "Vinyasa 11") || !strings.Contains(outStr, "Vinyasa 20") {
		t.Errorf("expected second page rows, got:\n%s", outStr)
	}
	if strings.Contains(outStr, "Vinyasa 5") || strings.Contains(outStr, "Vinyasa 21") {
		t.Errorf("expected rows outside page 2 to be absent, got:\n%s", outStr)
	}
	if !strings.Contains(outStr, "Page 2 of 3 (25 items)") {
		t.Errorf("expected page footer, got:\n%s", outStr)
	}
}

func TestCoursesListCommand_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/me":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]any{"id": 1, "role": "admin"},
			})
		case "/api/v1/courses":
			_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store := setupTestEnv(t, server.URL)
	seedSession(t, store, "admin")

	cmd := &cobra.Command{Use: "yoga-admin"}
	cmd.AddCommand(coursesCmd)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SetArgs([]string{"courses", "list"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("courses list failed: %v", err)
	}

	if !strings.Contains(output.String(), "No results") {
		t.Errorf("expected empty-list message, got:\n%s", output.String())
	}
}

func TestCoursesDeleteCommand_RoleDenied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/me":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]any{"id": 1, "role": "staff"},
			})
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store := setupTestEnv(t, server.URL)
	seedSession(t, store, "staff")

	cmd := &cobra.Command{Use: "yoga-admin"}
	cmd.AddCommand(coursesCmd)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SetArgs([]string{"courses", "delete", "7"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected role check to reject staff, got nil")
	}
	if !strings.Contains(err.Error(), "yoga-admin login") {
		t.Errorf("expected login hint in error, got: %v", err)
	}
}
