package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticket-inventory/internal/model"
	"github.com/iliyamo/event-ticket-inventory/internal/store"
)

// fakeLoader counts loads and can be told to fail.
type fakeLoader struct {
	tickets []model.Ticket
	menu    []model.MenuRow
	loads   int
	err     error
}

func (l *fakeLoader) LoadTickets(ctx context.Context) ([]model.Ticket, error) {
	l.loads++
	if l.err != nil {
		return nil, l.err
	}
	return model.CloneTickets(l.tickets), nil
}

func (l *fakeLoader) LoadMenu(ctx context.Context) ([]model.MenuRow, error) {
	if l.err != nil {
		return nil, l.err
	}
	return model.CloneMenu(l.menu), nil
}

func newLoader() *fakeLoader {
	return &fakeLoader{
		tickets: []model.Ticket{{TicketID: "0001", Type: model.TypePublic, Category: "Gold", Admit: 2}},
		menu:    []model.MenuRow{{Category: "Gold", Type: model.TypePublic, Series: "1-50", Admit: 2}},
	}
}

func Test_GetOrLoad_Caches_Within_TTL(t *testing.T) {
	t.Parallel()

	loader := newLoader()
	cache := store.NewCache(loader, time.Minute)

	_, err := cache.GetOrLoad(context.Background())
	require.NoError(t, err)
	_, err = cache.GetOrLoad(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, loader.loads, "second read must come from cache")
}

func Test_GetOrLoad_Reloads_After_Invalidate(t *testing.T) {
	t.Parallel()

	loader := newLoader()
	cache := store.NewCache(loader, time.Minute)

	_, err := cache.GetOrLoad(context.Background())
	require.NoError(t, err)

	cache.Invalidate()
	_, err = cache.GetOrLoad(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, loader.loads)
}

func Test_GetOrLoad_Zero_TTL_Disables_Caching(t *testing.T) {
	t.Parallel()

	loader := newLoader()
	cache := store.NewCache(loader, 0)

	for i := 0; i < 3; i++ {
		_, err := cache.GetOrLoad(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, loader.loads)
}

func Test_GetOrLoad_Returns_Isolated_Copies(t *testing.T) {
	t.Parallel()

	cache := store.NewCache(newLoader(), time.Minute)

	first, err := cache.GetOrLoad(context.Background())
	require.NoError(t, err)
	first.Tickets[0].Sold = true
	first.Tickets[0].Customer = "Mallory"

	second, err := cache.GetOrLoad(context.Background())
	require.NoError(t, err)
	assert.False(t, second.Tickets[0].Sold, "mutating a snapshot must not leak into the cache")
	assert.Equal(t, "", second.Tickets[0].Customer)
}

func Test_GetOrLoad_Propagates_Load_Errors(t *testing.T) {
	t.Parallel()

	loader := newLoader()
	loader.err = errors.New("store unreachable")
	cache := store.NewCache(loader, time.Minute)

	_, err := cache.GetOrLoad(context.Background())
	require.Error(t, err)

	// A later successful load recovers.
	loader.err = nil
	snap, err := cache.GetOrLoad(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Tickets, 1)
}

func Test_Snapshot_Clone_Copies_Timestamps(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	snap := store.Snapshot{
		Tickets: []model.Ticket{{TicketID: "0001", Sold: true, Timestamp: &ts}},
	}

	clone := snap.Clone()
	*clone.Tickets[0].Timestamp = ts.Add(time.Hour)

	assert.Equal(t, ts, *snap.Tickets[0].Timestamp, "timestamp must not be aliased")
}
