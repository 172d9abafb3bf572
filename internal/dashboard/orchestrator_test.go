package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
	"github.com/cxndizz/yoga-admin-cli/internal/event"
)

// blockingFetcher serves snapshots one call at a time, each call waiting for
// an explicit release so tests can interleave requests deterministically.
type blockingFetcher struct {
	mu      sync.Mutex
	calls   int
	pending []chan *api.DashboardSnapshot
}

func (f *blockingFetcher) fetch(ctx context.Context) (*api.DashboardSnapshot, error) {
	f.mu.Lock()
	f.calls++
	release := make(chan *api.DashboardSnapshot, 1)
	f.pending = append(f.pending, release)
	f.mu.Unlock()

	select {
	case snap := <-release:
		return snap, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *blockingFetcher) release(i int, snap *api.DashboardSnapshot) {
	f.mu.Lock()
	ch := f.pending[i]
	f.mu.Unlock()
	ch <- snap
}

func (f *blockingFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitForCalls(t *testing.T, f *blockingFetcher, n int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for f.callCount() < n {
		select {
		case <-deadline:
			t.Fatalf("fetcher never reached %d calls (got %d)", n, f.callCount())
		case <-time.After(time.Millisecond):
		}
	}
}

func snapWithKPI(name string, value float64) *api.DashboardSnapshot {
	return &api.DashboardSnapshot{KPIs: []api.KPI{{Name: name, Value: value}}}
}

func TestFetchReplacesSnapshot(t *testing.T) {
	o := New(func(ctx context.Context) (*api.DashboardSnapshot, error) {
		return snapWithKPI("checkins_today", 12), nil
	}, nil, Options{})

	require.NoError(t, o.Fetch(context.Background(), false))

	snap, updated := o.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "checkins_today", snap.KPIs[0].Name)
	assert.False(t, updated.IsZero())
	assert.False(t, o.Loading())
}

func TestFetchErrorKeepsOldSnapshot(t *testing.T) {
	var fail bool
	o := New(func(ctx context.Context) (*api.DashboardSnapshot, error) {
		if fail {
			return nil, errors.New("backend down")
		}
		return snapWithKPI("revenue", 900), nil
	}, nil, Options{})

	require.NoError(t, o.Fetch(context.Background(), false))
	first, firstAt := o.Snapshot()

	fail = true
	require.Error(t, o.Fetch(context.Background(), true))

	snap, at := o.Snapshot()
	assert.Same(t, first, snap, "a failed fetch must not clobber the snapshot")
	assert.Equal(t, firstAt, at)
}

// An in-flight poll result that arrives after a newer manual refresh must be
// discarded: state reflects only the manual refresh's response.
func TestManualRefreshSupersedesInFlightPoll(t *testing.T) {
	f := &blockingFetcher{}
	o := New(f.fetch, nil, Options{})

	pollDone := make(chan error, 1)
	go func() { pollDone <- o.Fetch(context.Background(), true) }()
	waitForCalls(t, f, 1)

	manualDone := make(chan error, 1)
	go func() { manualDone <- o.Fetch(context.Background(), false) }()
	waitForCalls(t, f, 2)

	// Resolve the manual refresh first, then let the stale poll "arrive".
	f.release(1, snapWithKPI("manual", 2))
	require.NoError(t, <-manualDone)

	f.release(0, snapWithKPI("poll", 1))
	err := <-pollDone
	assert.ErrorIs(t, err, ErrSuperseded)

	snap, _ := o.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "manual", snap.KPIs[0].Name)
}

// A silent fetch that supersedes an in-flight manual one must not leave the
// manual fetch's loading flag raised.
func TestLoadingClearsWhenManualFetchSuperseded(t *testing.T) {
	f := &blockingFetcher{}
	o := New(f.fetch, nil, Options{})

	manualDone := make(chan error, 1)
	go func() { manualDone <- o.Fetch(context.Background(), false) }()
	waitForCalls(t, f, 1)
	assert.True(t, o.Loading())

	silentDone := make(chan error, 1)
	go func() { silentDone <- o.Fetch(context.Background(), true) }()
	waitForCalls(t, f, 2)

	f.release(1, snapWithKPI("silent", 2))
	require.NoError(t, <-silentDone)

	f.release(0, snapWithKPI("manual", 1))
	assert.ErrorIs(t, <-manualDone, ErrSuperseded)

	assert.False(t, o.Loading(), "loading flag must drop once its fetch was superseded")

	snap, _ := o.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "silent", snap.KPIs[0].Name)
}

func TestSilentFetchDoesNotToggleLoading(t *testing.T) {
	f := &blockingFetcher{}
	o := New(f.fetch, nil, Options{})

	done := make(chan error, 1)
	go func() { done <- o.Fetch(context.Background(), true) }()
	waitForCalls(t, f, 1)
	assert.False(t, o.Loading(), "silent fetch must not raise the loading flag")

	f.release(0, snapWithKPI("x", 1))
	require.NoError(t, <-done)
}

func TestPushEventTriggersSilentRefresh(t *testing.T) {
	f := &blockingFetcher{}
	bus := event.NewBus()
	o := New(f.fetch, bus, Options{PollInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runDone := make(chan error, 1)
	go func() { runDone <- o.Run(ctx, nil) }()

	// Initial mount fetch.
	waitForCalls(t, f, 1)
	f.release(0, snapWithKPI("initial", 1))

	bus.Publish(event.Event{Name: event.DashboardUpdated})
	waitForCalls(t, f, 2)
	f.release(1, snapWithKPI("pushed", 2))

	deadline := time.After(2 * time.Second)
	for {
		snap, _ := o.Snapshot()
		if snap != nil && snap.KPIs[0].Name == "pushed" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("push event never refreshed the snapshot")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	assert.ErrorIs(t, <-runDone, context.Canceled)
}

func TestPollingSuspendsWhileHiddenAndRefreshesOnReturn(t *testing.T) {
	f := &blockingFetcher{}
	o := New(f.fetch, nil, Options{PollInterval: 20 * time.Millisecond})

	visibility := make(chan bool)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = o.Run(ctx, visibility) }()

	waitForCalls(t, f, 1)
	f.release(0, snapWithKPI("initial", 1))

	// Hide the view and drain whatever poll may already be in flight.
	visibility <- false
	time.Sleep(60 * time.Millisecond)
	settled := f.callCount()
	for i := 1; i < settled; i++ {
		f.release(i, snapWithKPI("drained", 0))
	}

	// Hidden: several intervals pass with no new polls.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, settled, f.callCount(), "polling must be suspended while hidden")

	// Visible again: an immediate silent refresh fires.
	visibility <- true
	waitForCalls(t, f, settled+1)
	f.release(settled, snapWithKPI("resumed", 3))
}

func TestRunUnsubscribesFromBusOnExit(t *testing.T) {
	f := &blockingFetcher{}
	bus := event.NewBus()
	o := New(f.fetch, bus, Options{PollInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- o.Run(ctx, nil) }()

	waitForCalls(t, f, 1)
	cancel()
	<-runDone

	before := f.callCount()
	bus.Publish(event.Event{Name: event.DashboardUpdated})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, f.callCount(), "events after shutdown must not trigger fetches")
}
