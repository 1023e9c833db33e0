// Package sales implements the sale state transitions for tickets:
// manual sale, bulk sale from tabular input, and sale reversal. All
// operations mutate an in-memory ticket snapshot; persisting the result
// is the caller's job.
package sales

import (
	"errors"
	"time"

	"github.com/iliyamo/event-ticket-inventory/internal/model"
)

// ErrTicketNotFound is returned when no ticket matches the given ID.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrAlreadySold is returned when selling a ticket that is already sold.
var ErrAlreadySold = errors.New("ticket already sold")

// ErrNotSold is returned when reversing a ticket that is not sold.
var ErrNotSold = errors.New("ticket not sold")

// ErrTicketVisited is returned when reversing the sale of a checked-in
// ticket. The check-in must be reversed first; clearing the sale alone
// would leave a visited but unsold ticket.
var ErrTicketVisited = errors.New("ticket already checked in")

// BulkRow is one line of bulk-sale input. TicketID is normalized to the
// fixed zero-padded width before matching.
type BulkRow struct {
	TicketID     string `json:"ticket_id"`
	CustomerName string `json:"customer_name"`
}

// BatchResult reports how a bulk operation went: rows applied and rows
// skipped because the ticket was missing or already sold.
type BatchResult struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

// Engine performs sale transitions. The zero value uses the wall clock;
// tests may substitute Now.
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

// Sell marks one available ticket as sold to the named customer and
// stamps the transition time. The customer name may be empty.
func (e *Engine) Sell(tickets []model.Ticket, ticketID, customer string) error {
	t := model.FindTicket(tickets, ticketID)
	if t == nil {
		return ErrTicketNotFound
	}
	if t.Sold {
		return ErrAlreadySold
	}
	ts := e.now()
	t.Sold = true
	t.Customer = customer
	t.Timestamp = &ts
	return nil
}

// SellBulk applies a batch of (TicketID, CustomerName) rows. Each row is
// an independent decision: rows whose ticket is missing or already sold
// are skipped and the rest of the batch continues. A ticket ID repeated
// within the batch is sold to the first occurrence only.
func (e *Engine) SellBulk(tickets []model.Ticket, rows []BulkRow) BatchResult {
	var res BatchResult
	for _, row := range rows {
		if err := e.Sell(tickets, row.TicketID, row.CustomerName); err != nil {
			res.Skipped++
			continue
		}
		res.Applied++
	}
	return res
}

// Reverse undoes a sale, restoring the ticket to available: Sold
// cleared, Customer emptied, Timestamp dropped. Reversal is rejected
// while the ticket is checked in so the visited state never outlives
// the sale it belongs to.
func (e *Engine) Reverse(tickets []model.Ticket, ticketID string) error {
	t := model.FindTicket(tickets, ticketID)
	if t == nil {
		return ErrTicketNotFound
	}
	if !t.Sold {
		return ErrNotSold
	}
	if t.Visited {
		return ErrTicketVisited
	}
	t.Sold = false
	t.Customer = ""
	t.Timestamp = nil
	return nil
}

// Available lists the ticket IDs still for sale within a type and
// category, in snapshot order. An empty list means the sale form has
// nothing to offer.
func Available(tickets []model.Ticket, typ model.TicketType, category string) []string {
	var ids []string
	for _, t := range tickets {
		if t.Type == typ && t.Category == category && !t.Sold {
			ids = append(ids, t.TicketID)
		}
	}
	return ids
}
