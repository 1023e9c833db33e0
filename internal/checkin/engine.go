// Package checkin implements visitor entry transitions: checking a sold
// ticket in with a bounded visitor count, and reversing an entry.
package checkin

import (
	"errors"
	"time"

	"github.com/iliyamo/event-ticket-inventory/internal/model"
)

// ErrTicketNotFound is returned when no ticket matches the given ID.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrNotEligible is returned when the ticket is not sold or is already
// checked in.
var ErrNotEligible = errors.New("ticket not eligible for check-in")

// ErrNotVisited is returned when reversing a ticket that has not been
// checked in.
var ErrNotVisited = errors.New("ticket not checked in")

// ErrVisitorCount is returned when the visitor count is outside
// [1, Admit] for the ticket.
var ErrVisitorCount = errors.New("visitor count out of range")

// Engine performs check-in transitions. The zero value uses the wall
// clock; tests may substitute Now.
type Engine struct {
	Now func() time.Time
}

// New returns an Engine stamping transitions with time.Now in UTC.
func New() *Engine {
	return &Engine{Now: func() time.Time { return time.Now().UTC() }}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}

// Enter checks a sold, not-yet-visited ticket in with the given visitor
// count. The count must be between 1 and the ticket's admit allowance.
func (e *Engine) Enter(tickets []model.Ticket, ticketID string, visitors int64) error {
	t := model.FindTicket(tickets, ticketID)
	if t == nil {
		return ErrTicketNotFound
	}
	if !t.Sold || t.Visited {
		return ErrNotEligible
	}
	if visitors < 1 || visitors > t.Admit {
		return ErrVisitorCount
	}
	ts := e.now()
	t.Visited = true
	t.VisitorSeats = visitors
	t.Timestamp = &ts
	return nil
}

// Reverse undoes a check-in: Visited and VisitorSeats are cleared. The
// sale fields and Timestamp are deliberately left alone, so until the
// next transition the timestamp still records the reversed entry.
func (e *Engine) Reverse(tickets []model.Ticket, ticketID string) error {
	t := model.FindTicket(tickets, ticketID)
	if t == nil {
		return ErrTicketNotFound
	}
	if !t.Visited {
		return ErrNotVisited
	}
	t.Visited = false
	t.VisitorSeats = 0
	return nil
}

// Eligible lists ticket IDs that can be checked in within a type and
// category: sold and not yet visited, in snapshot order.
func Eligible(tickets []model.Ticket, typ model.TicketType, category string) []string {
	var ids []string
	for _, t := range tickets {
		if t.Type == typ && t.Category == category && t.Sold && !t.Visited {
			ids = append(ids, t.TicketID)
		}
	}
	return ids
}
