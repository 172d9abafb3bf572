// Package dashboard keeps the KPI/chart view fresh through three triggers:
// manual refresh, visibility-aware polling, and push notifications. At most
// one owned request is in flight, the latest one winning.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
	"github.com/cxndizz/yoga-admin-cli/internal/event"
)

// ErrSuperseded is returned when a fetch was overtaken by a newer one; its
// result has been discarded.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

// DefaultPollInterval is the background refresh cadence.
const DefaultPollInterval = 30 * time.Second

// Fetcher loads a fresh dashboard snapshot.
type Fetcher func(ctx context.Context) (*api.DashboardSnapshot, error)

// Options configures an Orchestrator.
type Options struct {
	// PollInterval is the background refresh cadence. Zero uses the default.
	PollInterval time.Duration

	// Event is the push notification that triggers a silent refresh.
	// Defaults to event.DashboardUpdated.
	Event string
}

// Orchestrator coordinates the three refresh triggers over one snapshot.
type Orchestrator struct {
	fetcher   Fetcher
	bus       event.Bus
	interval  time.Duration
	eventName string

	mu          sync.Mutex
	gen         uint64
	cancel      context.CancelFunc
	loading     bool
	loadingGen  uint64
	snap        *api.DashboardSnapshot
	lastUpdated time.Time
}

// New creates an orchestrator. bus may be nil when no push channel exists.
func New(fetcher Fetcher, bus event.Bus, opts Options) *Orchestrator {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	name := opts.Event
	if name == "" {
		name = event.DashboardUpdated
	}
	return &Orchestrator{
		fetcher:   fetcher,
		bus:       bus,
		interval:  interval,
		eventName: name,
	}
}

// Fetch loads a fresh snapshot, superseding any request still in flight:
// the previous request is cancelled and its result, should it arrive
// anyway, is discarded. silent suppresses the loading indicator so
// background refreshes don't flicker the screen.
func (o *Orchestrator) Fetch(ctx context.Context, silent bool) error {
	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.gen++
	gen := o.gen
	if !silent {
		o.loading = true
		o.loadingGen = gen
	}
	o.mu.Unlock()

	snap, err := o.fetcher(fctx)

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.gen {
		// A newer fetch owns the state now. Drop the loading flag this fetch
		// raised, unless a newer non-silent fetch re-raised it meanwhile.
		if !silent && o.loadingGen == gen {
			o.loading = false
		}
		return ErrSuperseded
	}
	if !silent {
		o.loading = false
	}
	if err != nil {
		log.Debug().Err(err).Bool("silent", silent).Msg("dashboard fetch failed")
		return err
	}

	o.snap = snap
	o.lastUpdated = time.Now()
	return nil
}

// Run drives the orchestrator until ctx is done: one non-silent fetch up
// front, then silent polling while visible and a silent refresh per push
// event. visibility reports whether the view is currently on screen;
// polling suspends while hidden and an immediate refresh plus interval
// restart happens on the transition back to visible. A nil channel means
// always visible.
func (o *Orchestrator) Run(ctx context.Context, visibility <-chan bool) error {
	if err := o.Fetch(ctx, false); err != nil && !errors.Is(err, ErrSuperseded) {
		log.Warn().Err(err).Msg("initial dashboard fetch failed")
	}

	if o.bus != nil {
		unsubscribe := o.bus.On(o.eventName, func(event.Event) {
			go func() { _ = o.Fetch(ctx, true) }()
		})
		defer unsubscribe()
	}

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	defer o.abort()

	visible := true
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case v, ok := <-visibility:
			if !ok {
				visibility = nil
				continue
			}
			if v && !visible {
				// Back on screen: refresh immediately, restart the cadence
				// so the next poll is a full interval away.
				go func() { _ = o.Fetch(ctx, true) }()
				ticker.Reset(o.interval)
			}
			visible = v

		case <-ticker.C:
			if visible {
				go func() { _ = o.Fetch(ctx, true) }()
			}
		}
	}
}

// abort cancels any in-flight fetch and invalidates its generation so a
// late result cannot mutate state after shutdown.
func (o *Orchestrator) abort() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.gen++
}

// Snapshot returns the current snapshot and when it was last replaced. The
// snapshot is nil until the first successful fetch.
func (o *Orchestrator) Snapshot() (*api.DashboardSnapshot, time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap, o.lastUpdated
}

// Loading reports whether a non-silent fetch is in progress.
func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}
