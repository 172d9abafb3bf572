package main

import (
	"bufio"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
	"github.com/cxndizz/yoga-admin-cli/internal/dashboard"
	"github.com/cxndizz/yoga-admin-cli/internal/event"
	"github.com/cxndizz/yoga-admin-cli/internal/session"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the business dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if _, err := e.ensure(cmd, "/dashboard", rolesRead); err != nil {
			return err
		}

		snap, err := e.client.Dashboard(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch dashboard: %w", err)
		}

		if dashboardJSON {
			return renderJSON(cmd.OutOrStdout(), snap)
		}
		renderDashboard(cmd.OutOrStdout(), snap, time.Now())
		return nil
	},
}

var dashboardJSON bool

var dashboardWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the dashboard on screen and up to date",
	Long: "Render the dashboard and keep it fresh: background polling, push " +
		"events from the server, and manual refresh on Enter. Ctrl+C exits.",
	RunE: runDashboardWatch,
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "Print the snapshot as JSON")
	dashboardCmd.AddCommand(dashboardWatchCmd)
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboardWatch(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	if _, err := e.ensure(cmd, "/dashboard", rolesRead); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := event.NewBus()
	stream := event.NewSSEClient(e.cfg.Server.URL+"/api/v1/events", bus, e.client.Token)
	go func() { _ = stream.Run(ctx) }()

	// Pick up session changes made by another yoga-admin process, a login or
	// logout elsewhere, while this one stays on screen.
	if fs, ok := e.store.(*session.FileStore); ok {
		go fs.Watch(ctx, 2*time.Second, func(session.Session) {
			e.cache.Reload()
		})
	}

	orch := dashboard.New(e.client.Dashboard, bus, dashboard.Options{
		PollInterval: e.cfg.Dashboard.PollInterval,
	})

	out := cmd.OutOrStdout()
	var lastShown time.Time

	// Enter triggers a manual refresh that supersedes whatever fetch is in
	// flight.
	go func() {
		reader := bufio.NewReader(cmd.InOrStdin())
		for {
			if _, err := reader.ReadString('\n'); err != nil {
				return
			}
			go func() { _ = orch.Fetch(ctx, false) }()
		}
	}()

	done := make(chan error, 1)
	go func() { done <- orch.Run(ctx, nil) }()

	redraw := time.NewTicker(time.Second)
	defer redraw.Stop()

	fmt.Fprintln(out, "Watching dashboard. Press Enter to refresh, Ctrl+C to exit.")
	for {
		select {
		case <-ctx.Done():
			<-done
			return nil
		case <-redraw.C:
			snap, updated := orch.Snapshot()
			if snap == nil || !updated.After(lastShown) {
				continue
			}
			lastShown = updated
			fmt.Fprintln(out)
			renderDashboard(out, snap, updated)
		}
	}
}

func renderDashboard(w io.Writer, snap *api.DashboardSnapshot, updated time.Time) {
	if len(snap.KPIs) > 0 {
		rows := make([][]string, 0, len(snap.KPIs))
		for _, k := range snap.KPIs {
			label := k.Label
			if label == "" {
				label = k.Name
			}
			delta := ""
			if k.Delta != 0 {
				delta = fmt.Sprintf("%+.1f", k.Delta)
			}
			rows = append(rows, []string{label, fmt.Sprintf("%.0f", k.Value), delta})
		}
		renderTable(w, []string{"KPI", "VALUE", "DELTA"}, rows)
	}

	for _, series := range snap.Charts {
		fmt.Fprintf(w, "\n%s\n", series.Name)
		for _, p := range series.Points {
			fmt.Fprintf(w, "  %-16s %s %.0f\n", p.Label, bar(p.Value, maxValue(series.Points)), p.Value)
		}
	}

	fmt.Fprintf(w, "\nLast updated: %s\n", updated.Format(time.Kitchen))
}

func maxValue(points []api.ChartPoint) float64 {
	var max float64
	for _, p := range points {
		if p.Value > max {
			max = p.Value
		}
	}
	return max
}

// bar renders a value as a proportional run of # characters, 40 wide at the
// series maximum.
func bar(value, max float64) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := int(value / max * 40)
	if n < 1 {
		n = 1
	}
	return strings.Repeat("#", n)
}
