// Package store caches the full (tickets, menu) snapshot in memory with
// a short time-to-live. The service works on the single-writer model:
// reads come from the cached snapshot, every mutation replaces the
// backing tables and invalidates the cache.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/event-ticket-inventory/internal/model"
	"github.com/iliyamo/event-ticket-inventory/internal/repository"
)

// Loader fetches the full tables from the backing store. It is
// implemented by the repository layer.
type Loader interface {
	LoadTickets(ctx context.Context) ([]model.Ticket, error)
	LoadMenu(ctx context.Context) ([]model.MenuRow, error)
}

// Snapshot is an immutable view of both tables at one point in time.
type Snapshot struct {
	Tickets []model.Ticket
	Menu    []model.MenuRow
}

// Clone deep-copies the snapshot so callers can mutate the result
// without touching the cached state.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Tickets: model.CloneTickets(s.Tickets),
		Menu:    model.CloneMenu(s.Menu),
	}
}

// RepoLoader adapts the repository layer to the Loader interface.
type RepoLoader struct {
	Tickets *repository.TicketRepo
	Menu    *repository.MenuRepo
}

func (l RepoLoader) LoadTickets(ctx context.Context) ([]model.Ticket, error) {
	return l.Tickets.LoadAll(ctx)
}

func (l RepoLoader) LoadMenu(ctx context.Context) ([]model.MenuRow, error) {
	return l.Menu.LoadAll(ctx)
}

// Cache holds the current snapshot and reloads it after the TTL
// expires or after an explicit invalidation.
type Cache struct {
	loader Loader
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	snapshot Snapshot
	loadedAt time.Time
	valid    bool
}

// NewCache constructs a Cache over the given loader. A non-positive TTL
// disables caching: every read hits the backing store.
func NewCache(loader Loader, ttl time.Duration) *Cache {
	return &Cache{loader: loader, ttl: ttl, now: time.Now}
}

// GetOrLoad returns a deep copy of the current snapshot, reloading from
// the backing store when the cache is empty, invalidated, or stale.
func (c *Cache) GetOrLoad(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.ttl > 0 && c.now().Sub(c.loadedAt) < c.ttl {
		return c.snapshot.Clone(), nil
	}
	tickets, err := c.loader.LoadTickets(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	menu, err := c.loader.LoadMenu(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	c.snapshot = Snapshot{Tickets: tickets, Menu: menu}
	c.loadedAt = c.now()
	c.valid = true
	return c.snapshot.Clone(), nil
}

// Invalidate drops the cached snapshot. The next GetOrLoad reloads from
// the backing store. Call this after every whole-table replace.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}
