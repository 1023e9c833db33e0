package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticket-inventory/internal/catalog"
	"github.com/iliyamo/event-ticket-inventory/internal/model"
)

func Test_ParseSeries_Accepts_Start_End_Ranges(t *testing.T) {
	t.Parallel()

	start, end, err := catalog.ParseSeries("101-150")
	require.NoError(t, err)
	assert.Equal(t, int64(101), start)
	assert.Equal(t, int64(150), end)

	start, end, err = catalog.ParseSeries(" 1 - 20 ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), start)
	assert.Equal(t, int64(20), end)
}

func Test_ParseSeries_Rejects_Malformed_Input(t *testing.T) {
	t.Parallel()

	for _, series := range []string{"", "bad", "101", "a-b", "10-"} {
		_, _, err := catalog.ParseSeries(series)
		assert.Error(t, err, "series %q", series)
	}
}

func Test_Recalculate_Derives_Alloc_And_Capacity(t *testing.T) {
	t.Parallel()

	rows := []model.MenuRow{
		{Category: "Gold", Series: "101-150", Admit: 2},
		{Category: "VIP", Series: "1-10", Admit: 4},
	}

	res := catalog.Recalculate(rows)
	assert.Equal(t, catalog.Result{Applied: 2}, res)

	assert.Equal(t, int64(50), rows[0].Alloc)
	assert.Equal(t, int64(100), rows[0].TotalCapacity)
	assert.Equal(t, int64(10), rows[1].Alloc)
	assert.Equal(t, int64(40), rows[1].TotalCapacity)
}

func Test_Recalculate_Keeps_Prior_Values_On_Malformed_Series(t *testing.T) {
	t.Parallel()

	rows := []model.MenuRow{
		{Category: "Gold", Series: "bad", Admit: 2, Alloc: 50, TotalCapacity: 100},
		{Category: "Empty", Series: "", Admit: 3, Alloc: 7, TotalCapacity: 21},
		{Category: "Inverted", Series: "20-10", Admit: 1, Alloc: 11, TotalCapacity: 11},
	}

	res := catalog.Recalculate(rows)
	assert.Equal(t, catalog.Result{Skipped: 3}, res)

	assert.Equal(t, int64(50), rows[0].Alloc, "malformed series leaves prior value")
	assert.Equal(t, int64(100), rows[0].TotalCapacity)
	assert.Equal(t, int64(7), rows[1].Alloc)
	assert.Equal(t, int64(11), rows[2].Alloc)
}

func Test_Expand_Generates_One_Ticket_Per_Series_Number(t *testing.T) {
	t.Parallel()

	rows := []model.MenuRow{
		{Seq: 1, Type: model.TypePublic, Category: "Gold", Series: "5-7", Admit: 2},
		{Seq: 2, Type: model.TypeGuest, Category: "VIP", Series: "100-101", Admit: 4},
		{Seq: 3, Type: model.TypePublic, Category: "Broken", Series: "bad", Admit: 1},
	}

	tickets := catalog.Expand(rows)
	require.Len(t, tickets, 5, "3 gold + 2 vip, broken row contributes nothing")

	first := tickets[0]
	assert.Equal(t, "0005", first.TicketID, "series numbers are zero-padded")
	assert.Equal(t, model.TypePublic, first.Type)
	assert.Equal(t, "Gold", first.Category)
	assert.Equal(t, int64(2), first.Admit)
	assert.Equal(t, int64(1), first.Seq)
	assert.False(t, first.Sold)
	assert.False(t, first.Visited)
	assert.Nil(t, first.Timestamp)

	assert.Equal(t, "0100", tickets[3].TicketID)
	assert.Equal(t, model.TypeGuest, tickets[3].Type)
}

func Test_Expand_Defaults_Admit_To_One(t *testing.T) {
	t.Parallel()

	tickets := catalog.Expand([]model.MenuRow{
		{Type: model.TypePublic, Category: "Zero", Series: "1-2", Admit: 0},
	})
	require.Len(t, tickets, 2)
	assert.Equal(t, int64(1), tickets[0].Admit)
}
