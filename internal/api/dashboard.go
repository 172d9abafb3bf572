package api

import (
	"context"
	"time"
)

// KPI is one headline number on the dashboard.
type KPI struct {
	Name  string  `json:"name"`
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value"`
	Delta float64 `json:"delta,omitempty"`
}

// ChartPoint is one labeled value in a series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is one chart on the dashboard.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// DashboardSnapshot is the full KPI and chart payload, fetched wholesale and
// replaced atomically on every refresh. There is no partial-merge: a new
// snapshot supersedes the old one entirely.
type DashboardSnapshot struct {
	KPIs        []KPI         `json:"kpis"`
	Charts      []ChartSeries `json:"charts"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// Dashboard fetches the aggregate dashboard payload.
func (c *Client) Dashboard(ctx context.Context) (*DashboardSnapshot, error) {
	var snap DashboardSnapshot
	if err := c.get(ctx, "/api/v1/dashboard", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
