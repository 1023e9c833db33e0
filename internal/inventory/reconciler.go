// Package inventory derives aggregate ticket and visitor summaries from
// the full ticket set. The projection is pure: it never mutates its
// input and is safe to recompute on every read.
package inventory

import (
	"sort"

	"github.com/iliyamo/event-ticket-inventory/internal/model"
)

// overflowSortKey is the sort key assigned to Seq 0, the unclassified
// bucket, so that it sorts after every numbered group.
const overflowSortKey = int64(1) << 31

// Row is one summary line for a (Seq, Type, Category, Admit) group, or
// the synthetic grand total when Total is true. Balances follow the
// admission funnel: tickets remaining, seats remaining, and seats sold
// but not yet checked in.
type Row struct {
	Seq             int64            `json:"seq"`
	Type            model.TicketType `json:"type"`
	Category        string           `json:"category"`
	Admit           int64            `json:"admit"`
	TotalTickets    int64            `json:"total_tickets"`
	TicketsSold     int64            `json:"tickets_sold"`
	TotalSeats      int64            `json:"total_seats"`
	SeatsSold       int64            `json:"seats_sold"`
	TotalVisitors   int64            `json:"total_visitors"`
	BalanceTickets  int64            `json:"balance_tickets"`
	BalanceSeats    int64            `json:"balance_seats"`
	BalanceVisitors int64            `json:"balance_visitors"`
	Total           bool             `json:"total,omitempty"`
}

type groupKey struct {
	Seq      int64
	Type     model.TicketType
	Category string
	Admit    int64
}

// Summarize groups tickets by (Seq, Type, Category, Admit) and derives
// the per-group and grand-total admission counts. Groups are ordered by
// Seq ascending with the Seq 0 overflow bucket last; the grand total is
// always the final row.
func Summarize(tickets []model.Ticket) []Row {
	groups := make(map[groupKey]*Row)
	order := make([]groupKey, 0)

	for _, t := range tickets {
		key := groupKey{Seq: t.Seq, Type: t.Type, Category: t.Category, Admit: t.Admit}
		row, ok := groups[key]
		if !ok {
			row = &Row{Seq: key.Seq, Type: key.Type, Category: key.Category, Admit: key.Admit}
			groups[key] = row
			order = append(order, key)
		}
		row.TotalTickets++
		if t.Sold {
			row.TicketsSold++
		}
		row.TotalVisitors += t.VisitorSeats
	}

	rows := make([]Row, 0, len(order)+1)
	for _, key := range order {
		row := *groups[key]
		row.TotalSeats = row.TotalTickets * row.Admit
		row.SeatsSold = row.TicketsSold * row.Admit
		row.BalanceTickets = row.TotalTickets - row.TicketsSold
		row.BalanceSeats = row.TotalSeats - row.SeatsSold
		row.BalanceVisitors = row.SeatsSold - row.TotalVisitors
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := seqSortKey(rows[i].Seq), seqSortKey(rows[j].Seq)
		if a != b {
			return a < b
		}
		if rows[i].Type != rows[j].Type {
			return rows[i].Type < rows[j].Type
		}
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Admit < rows[j].Admit
	})

	total := Row{Total: true}
	for _, row := range rows {
		total.Admit += row.Admit
		total.TotalTickets += row.TotalTickets
		total.TicketsSold += row.TicketsSold
		total.TotalSeats += row.TotalSeats
		total.SeatsSold += row.SeatsSold
		total.TotalVisitors += row.TotalVisitors
		total.BalanceTickets += row.BalanceTickets
		total.BalanceSeats += row.BalanceSeats
		total.BalanceVisitors += row.BalanceVisitors
	}
	return append(rows, total)
}

// seqSortKey maps a Seq value to its sort position. Seq 0 denotes the
// unclassified bucket and is pushed behind every numbered group.
func seqSortKey(seq int64) int64 {
	if seq == 0 {
		return overflowSortKey
	}
	return seq
}

// SortMenu orders catalog rows with the same Seq rule the summary uses:
// numbered groups ascending, the Seq 0 overflow bucket last. The input
// is not modified.
func SortMenu(rows []model.MenuRow) []model.MenuRow {
	out := model.CloneMenu(rows)
	sort.SliceStable(out, func(i, j int) bool {
		return seqSortKey(out[i].Seq) < seqSortKey(out[j].Seq)
	})
	return out
}
