package sales_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticket-inventory/internal/model"
	"github.com/iliyamo/event-ticket-inventory/internal/sales"
)

var frozen = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newEngine() *sales.Engine {
	return &sales.Engine{Now: func() time.Time { return frozen }}
}

func fixture() []model.Ticket {
	return []model.Ticket{
		{TicketID: "0001", Type: model.TypePublic, Category: "Gold", Admit: 2, Seq: 1},
		{TicketID: "0007", Type: model.TypePublic, Category: "Gold", Admit: 4, Seq: 1},
		{TicketID: "0050", Type: model.TypeGuest, Category: "VIP", Admit: 1, Seq: 2},
	}
}

func Test_Sell_Marks_Ticket_Sold_With_Customer_And_Timestamp(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	err := newEngine().Sell(tickets, "0007", "Alice")
	require.NoError(t, err)

	got := model.FindTicket(tickets, "0007")
	require.NotNil(t, got)
	assert.True(t, got.Sold)
	assert.Equal(t, "Alice", got.Customer)
	require.NotNil(t, got.Timestamp)
	assert.Equal(t, frozen, *got.Timestamp)
}

func Test_Sell_Normalizes_Short_Ticket_IDs(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	require.NoError(t, newEngine().Sell(tickets, "7", "Alice"))
	assert.True(t, model.FindTicket(tickets, "0007").Sold)
}

func Test_Sell_Rejects_Missing_And_Already_Sold_Tickets(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	engine := newEngine()

	require.ErrorIs(t, engine.Sell(tickets, "9999", "Bob"), sales.ErrTicketNotFound)

	require.NoError(t, engine.Sell(tickets, "0001", "Bob"))
	err := engine.Sell(tickets, "0001", "Carol")
	require.ErrorIs(t, err, sales.ErrAlreadySold)
	assert.Equal(t, "Bob", model.FindTicket(tickets, "0001").Customer, "second sale must not overwrite")
}

func Test_Reverse_Restores_Available_State_Exactly(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	engine := newEngine()
	require.NoError(t, engine.Sell(tickets, "0007", "Alice"))
	require.NoError(t, engine.Reverse(tickets, "0007"))

	got := model.FindTicket(tickets, "0007")
	assert.False(t, got.Sold)
	assert.Equal(t, "", got.Customer)
	assert.Nil(t, got.Timestamp)
}

func Test_Reverse_Rejects_Unsold_Ticket(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	require.ErrorIs(t, newEngine().Reverse(tickets, "0001"), sales.ErrNotSold)
}

func Test_Reverse_Rejects_Checked_In_Ticket(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	engine := newEngine()
	require.NoError(t, engine.Sell(tickets, "0007", "Alice"))

	got := model.FindTicket(tickets, "0007")
	got.Visited = true
	got.VisitorSeats = 3

	err := engine.Reverse(tickets, "0007")
	require.ErrorIs(t, err, sales.ErrTicketVisited)
	assert.True(t, got.Sold, "rejected reversal must not change state")
	assert.True(t, got.Visited)
}

func Test_SellBulk_Applies_Rows_Independently(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	engine := newEngine()
	require.NoError(t, engine.Sell(tickets, "0050", "Taken"))

	res := engine.SellBulk(tickets, []sales.BulkRow{
		{TicketID: "1", CustomerName: "Bob"},      // normalized to 0001, applies
		{TicketID: "0050", CustomerName: "Carol"}, // already sold, skipped
		{TicketID: "9999", CustomerName: "Dave"},  // unknown, skipped
		{TicketID: "0007", CustomerName: "Erin"},  // applies
	})

	assert.Equal(t, sales.BatchResult{Applied: 2, Skipped: 2}, res)
	assert.Equal(t, "Bob", model.FindTicket(tickets, "0001").Customer)
	assert.Equal(t, "Taken", model.FindTicket(tickets, "0050").Customer)
	assert.Equal(t, "Erin", model.FindTicket(tickets, "0007").Customer)
}

func Test_SellBulk_First_Duplicate_Wins(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	res := newEngine().SellBulk(tickets, []sales.BulkRow{
		{TicketID: "0001", CustomerName: "Bob"},
		{TicketID: "0001", CustomerName: "Carol"},
	})

	assert.Equal(t, sales.BatchResult{Applied: 1, Skipped: 1}, res)
	assert.Equal(t, "Bob", model.FindTicket(tickets, "0001").Customer)
}

func Test_Available_Lists_Unsold_In_Scope(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	require.NoError(t, newEngine().Sell(tickets, "0001", "Bob"))

	assert.Equal(t, []string{"0007"}, sales.Available(tickets, model.TypePublic, "Gold"))
	assert.Empty(t, sales.Available(tickets, model.TypePublic, "VIP"), "category scoped by type")
}
