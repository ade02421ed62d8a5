package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"wager-sim/internal/analysis"
	"wager-sim/internal/backtest"
	"wager-sim/internal/logging"
)

var ErrNotFound = errors.New("run not found")

var log = logging.New("store")

// Run is one finished simulation as served by the API.
type Run struct {
	ID         string
	Seed       *uint64
	Outcomes   string
	Result     *backtest.Result
	Projection analysis.Projection
	CreatedAt  time.Time
}

type entry struct {
	run       *Run
	expiresAt time.Time
}

// RunCache keeps finished runs in memory for a limited time so clients can
// fetch a ledger after the run that produced it. Entries do not survive a
// restart. When maxEntries is reached, Put drops expired entries and then
// the oldest one.
type RunCache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewRunCache creates a cache; maxEntries <= 0 means unbounded.
func NewRunCache(ttl time.Duration, maxEntries int) *RunCache {
	return &RunCache{
		store:      make(map[string]*entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Put assigns the run a fresh ID and stores it.
func (c *RunCache) Put(run *Run) string {
	now := c.now()
	run.ID = uuid.NewString()
	run.CreatedAt = now

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.store) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.store[run.ID] = &entry{
		run:       run,
		expiresAt: now.Add(c.ttl),
	}
	return run.ID
}

// evictLocked makes room for one entry. Caller holds mu.
func (c *RunCache) evictLocked(now time.Time) {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, id)
			continue
		}
		if oldestID == "" || e.expiresAt.Before(oldest) {
			oldestID, oldest = id, e.expiresAt
		}
	}
	if len(c.store) >= c.maxEntries && oldestID != "" {
		delete(c.store, oldestID)
		log.Debug("Evicted run", "id", oldestID, "max_entries", c.maxEntries)
	}
}

// Get retrieves a run if present and not expired.
func (c *RunCache) Get(id string) (*Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.store[id]
	if !ok || c.now().After(e.expiresAt) {
		return nil, ErrNotFound
	}
	return e.run, nil
}

func (c *RunCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.store, id)
}

// Len counts stored entries, including expired ones not yet swept.
func (c *RunCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.store)
}

// Sweep removes expired entries and reports how many were dropped.
func (c *RunCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	dropped := 0
	for id, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps expired entries every interval until ctx is done.
func (c *RunCache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}
