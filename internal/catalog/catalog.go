// Package catalog derives ticket allocations from menu series ranges
// and expands the catalog into a fresh ticket inventory.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/event-ticket-inventory/internal/model"
)

// Result reports how many catalog rows were recalculated and how many
// were left untouched because their series range did not parse.
type Result struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

// ParseSeries parses a "start-end" range into its bounds. Both bounds
// are inclusive; "101-150" spans 50 tickets.
func ParseSeries(series string) (start, end int64, err error) {
	parts := strings.SplitN(strings.TrimSpace(series), "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("series %q: missing range separator", series)
	}
	start, err = strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("series %q: bad start: %w", series, err)
	}
	end, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("series %q: bad end: %w", series, err)
	}
	return start, end, nil
}

// Recalculate refreshes Alloc and TotalCapacity on every row whose
// Series parses as "start-end". Rows with a malformed or absent series
// keep their previous derived values; that is a deliberate best-effort
// policy, not an error.
func Recalculate(rows []model.MenuRow) Result {
	var res Result
	for i := range rows {
		start, end, err := ParseSeries(rows[i].Series)
		if err != nil || end < start {
			res.Skipped++
			continue
		}
		alloc := end - start + 1
		rows[i].Alloc = alloc
		rows[i].TotalCapacity = alloc * rows[i].Admit
		res.Applied++
	}
	return res
}

// Expand generates a fresh ticket inventory from the catalog: one
// unsold ticket per series number per row, identified by the
// zero-padded series number. Rows whose series does not parse
// contribute nothing. The caller decides whether to replace the live
// inventory with the result.
func Expand(rows []model.MenuRow) []model.Ticket {
	var tickets []model.Ticket
	for _, row := range rows {
		start, end, err := ParseSeries(row.Series)
		if err != nil || end < start {
			continue
		}
		admit := row.Admit
		if admit < 1 {
			admit = 1
		}
		for n := start; n <= end; n++ {
			tickets = append(tickets, model.Ticket{
				TicketID: model.NormalizeTicketID(strconv.FormatInt(n, 10)),
				Type:     row.Type,
				Category: row.Category,
				Admit:    admit,
				Seq:      row.Seq,
			})
		}
	}
	return tickets
}
