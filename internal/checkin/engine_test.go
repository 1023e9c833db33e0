package checkin_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticket-inventory/internal/checkin"
	"github.com/iliyamo/event-ticket-inventory/internal/model"
)

var (
	soldAt  = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	entered = time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC)
)

func newEngine() *checkin.Engine {
	return &checkin.Engine{Now: func() time.Time { return entered }}
}

func fixture() []model.Ticket {
	ts := soldAt
	return []model.Ticket{
		{TicketID: "0001", Type: model.TypePublic, Category: "Gold", Admit: 4, Seq: 1,
			Sold: true, Customer: "Alice", Timestamp: &ts},
		{TicketID: "0002", Type: model.TypePublic, Category: "Gold", Admit: 1, Seq: 1,
			Sold: true, Customer: "Bob", Timestamp: &ts},
		{TicketID: "0003", Type: model.TypePublic, Category: "Gold", Admit: 2, Seq: 1},
	}
}

func Test_Enter_Admits_Visitors_Within_Allowance(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		visitors int64
	}{
		{name: "MinimumOne", visitors: 1},
		{name: "FullAllowance", visitors: 4},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tickets := fixture()
			err := newEngine().Enter(tickets, "0001", testCase.visitors)
			require.NoError(t, err)

			got := model.FindTicket(tickets, "0001")
			assert.True(t, got.Visited)
			assert.Equal(t, testCase.visitors, got.VisitorSeats)
			require.NotNil(t, got.Timestamp)
			assert.Equal(t, entered, *got.Timestamp, "check-in restamps the ticket")
		})
	}
}

func Test_Enter_Rejects_Visitor_Count_Out_Of_Range(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		visitors int64
	}{
		{name: "Zero", visitors: 0},
		{name: "Negative", visitors: -1},
		{name: "AboveAllowance", visitors: 5},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tickets := fixture()
			err := newEngine().Enter(tickets, "0001", testCase.visitors)
			require.ErrorIs(t, err, checkin.ErrVisitorCount)

			got := model.FindTicket(tickets, "0001")
			assert.False(t, got.Visited)
			assert.Zero(t, got.VisitorSeats)
		})
	}
}

func Test_Enter_Requires_Sold_And_Not_Visited(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	engine := newEngine()

	require.ErrorIs(t, engine.Enter(tickets, "0003", 1), checkin.ErrNotEligible, "unsold ticket")

	require.NoError(t, engine.Enter(tickets, "0001", 2))
	require.ErrorIs(t, engine.Enter(tickets, "0001", 1), checkin.ErrNotEligible, "already visited")

	require.ErrorIs(t, engine.Enter(tickets, "9999", 1), checkin.ErrTicketNotFound)
}

func Test_Reverse_Clears_Visit_State_Only(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	engine := newEngine()
	require.NoError(t, engine.Enter(tickets, "0001", 3))
	require.NoError(t, engine.Reverse(tickets, "0001"))

	got := model.FindTicket(tickets, "0001")
	assert.False(t, got.Visited)
	assert.Zero(t, got.VisitorSeats)
	assert.True(t, got.Sold, "sale survives entry reversal")
	assert.Equal(t, "Alice", got.Customer)
	require.NotNil(t, got.Timestamp)
	assert.Equal(t, entered, *got.Timestamp, "timestamp keeps the reversed entry until the next transition")
}

func Test_Reverse_Rejects_Not_Visited(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	require.ErrorIs(t, newEngine().Reverse(tickets, "0001"), checkin.ErrNotVisited)
}

func Test_Eligible_Lists_Sold_Unvisited_In_Scope(t *testing.T) {
	t.Parallel()

	tickets := fixture()
	engine := newEngine()

	assert.Equal(t, []string{"0001", "0002"}, checkin.Eligible(tickets, model.TypePublic, "Gold"))

	require.NoError(t, engine.Enter(tickets, "0001", 1))
	assert.Equal(t, []string{"0002"}, checkin.Eligible(tickets, model.TypePublic, "Gold"))
}
