package session

import (
	"fmt"
	"sync"
)

// Cache is the in-memory copy of the store's content shared by the rest of
// the application. All session mutations go through Update and Clear; no
// other component writes session state directly.
type Cache struct {
	mu      sync.RWMutex
	store   Store
	cur     Session
	subs    map[int]func(Session)
	nextSub int
}

// NewCache creates a cache primed from the store's current snapshot.
func NewCache(store Store) *Cache {
	return &Cache{
		store: store,
		cur:   store.Snapshot(),
		subs:  make(map[int]func(Session)),
	}
}

// Current returns the cached session.
func (c *Cache) Current() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cur
}

// Update merges the partial session into the cache, persists it, and
// notifies subscribers.
func (c *Cache) Update(partial Session) error {
	c.mu.Lock()
	c.cur = merge(c.cur, partial)
	cur := c.cur
	c.mu.Unlock()

	if err := c.store.Persist(partial); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	c.notify(cur)
	return nil
}

// Clear empties the cache and the store, then notifies subscribers.
func (c *Cache) Clear() error {
	c.mu.Lock()
	c.cur = Session{}
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		return err
	}

	c.notify(Session{})
	return nil
}

// Reload replaces the cache with a fresh store snapshot. Used when the
// durable storage was changed by another process.
func (c *Cache) Reload() {
	snap := c.store.Snapshot()

	c.mu.Lock()
	c.cur = snap
	c.mu.Unlock()

	c.notify(snap)
}

// OnChange registers fn to run after every session change. The returned
// function unsubscribes it.
func (c *Cache) OnChange(fn func(Session)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Cache) notify(s Session) {
	c.mu.RLock()
	fns := make([]func(Session), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()

	for _, fn := range fns {
		fn(s)
	}
}
