package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
	"github.com/cxndizz/yoga-admin-cli/internal/config"
	"github.com/cxndizz/yoga-admin-cli/internal/guard"
	"github.com/cxndizz/yoga-admin-cli/internal/session"
)

// Role allow-lists per operation kind. Reads include front-desk staff;
// mutations are for admins; account management stays with super admins.
var (
	rolesRead  = []string{"super_admin", "admin", "staff"}
	rolesWrite = []string{"super_admin", "admin"}
	rolesSuper = []string{"super_admin"}
)

var rootCmd = &cobra.Command{
	Use:          "yoga-admin",
	Short:        "Administrative CLI for the yoga booking platform",
	Long:         "Manage courses, instructors, branches, enrollments, customers and check-ins of the yoga booking platform from the terminal.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

// initLogging wires zerolog to the console at the configured level. Config
// load failures fall back to the default level; the command itself will
// report them properly.
func initLogging() {
	level := zerolog.InfoLevel
	if cfg, err := config.Load(); err == nil {
		if parsed, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			level = parsed
		}
	}
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(level)
}

// storeFactory allows injecting a mock session store in tests.
var storeFactory = func(cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case config.BackendFile:
		return session.NewFileStore(cfg.Session.File)
	default:
		return session.NewKeyringStore(), nil
	}
}

// env is everything a command needs to talk to the backend.
type env struct {
	cfg    *config.Config
	client *api.Client
	store  session.Store
	cache  *session.Cache
}

func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := storeFactory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	return &env{
		cfg:    cfg,
		client: api.NewClient(cfg.Server.URL, api.WithTimeout(cfg.Server.Timeout)),
		store:  store,
		cache:  session.NewCache(store),
	}, nil
}

// ensure runs the authorization guard for a protected command. A failed
// authorization becomes a login hint carrying the intended destination, the
// CLI's version of navigating away to the login screen.
func (e *env) ensure(cmd *cobra.Command, origin string, roles []string) (*guard.Result, error) {
	g := guard.New(e.cache, e.client, guard.Options{
		AllowedRoles:     roles,
		RefreshThreshold: e.cfg.Auth.RefreshThreshold,
	})

	res, err := g.Ensure(cmd.Context(), origin)
	if err != nil {
		var redirect *guard.RedirectError
		if errors.As(err, &redirect) {
			return nil, fmt.Errorf("%w\n\nPlease run 'yoga-admin login' and retry (%s)",
				session.ErrNotAuthenticated, redirect.To)
		}
		return nil, err
	}

	if res.Degraded {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: using cached profile, the profile service was unreachable")
	}

	return res, nil
}
