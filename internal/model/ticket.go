package model

import (
	"fmt"
	"strings"
	"time"
)

// TicketType is the closed set of admission ticket classes. Tickets are
// either sold to the public or issued to invited guests; any other value
// read from storage is rejected during load.
type TicketType string

// Valid ticket types.
const (
	TypePublic TicketType = "Public"
	TypeGuest  TicketType = "Guest"
)

// ParseTicketType normalizes and validates a ticket type string.
// Matching is case-insensitive so that hand-edited rows such as
// "public" or "GUEST" still load.
func ParseTicketType(s string) (TicketType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return TypePublic, nil
	case "guest":
		return TypeGuest, nil
	default:
		return "", fmt.Errorf("unknown ticket type %q", s)
	}
}

// TicketIDWidth is the fixed width of a normalized ticket identifier.
const TicketIDWidth = 4

// NormalizeTicketID left-pads a numeric ticket identifier with zeros to
// the fixed width, e.g. "7" -> "0007". Identifiers already at or beyond
// the width are returned unchanged apart from surrounding whitespace.
func NormalizeTicketID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) >= TicketIDWidth {
		return id
	}
	return strings.Repeat("0", TicketIDWidth-len(id)) + id
}

// Ticket is a single admission unit. A ticket starts unsold, is marked
// sold with a customer name, and is later checked in with a visitor
// count bounded by its admit allowance.
//
// Fields:
//  TicketID     – fixed-width zero-padded identifier (tickets.ticket_id).
//  Type         – Public or Guest.
//  Category     – catalog category the ticket belongs to.
//  Admit        – maximum visitors this ticket admits (>= 1).
//  Seq          – display grouping key; 0 is the overflow bucket.
//  Sold         – whether the ticket has been sold.
//  Customer     – buyer name; empty while unsold.
//  Visited      – whether the ticket has been checked in.
//  VisitorSeats – visitors admitted at check-in, 0..Admit.
//  Timestamp    – instant of the last sale or check-in; nil while unsold.
type Ticket struct {
	TicketID     string     `json:"ticket_id"`     // tickets.ticket_id
	Type         TicketType `json:"type"`          // tickets.type
	Category     string     `json:"category"`      // tickets.category
	Admit        int64      `json:"admit"`         // tickets.admit
	Seq          int64      `json:"seq"`           // tickets.seq
	Sold         bool       `json:"sold"`          // tickets.sold
	Customer     string     `json:"customer"`      // tickets.customer
	Visited      bool       `json:"visited"`       // tickets.visited
	VisitorSeats int64      `json:"visitor_seats"` // tickets.visitor_seats
	Timestamp    *time.Time `json:"timestamp"`     // tickets.timestamp (nullable)
}

// ApplyDefaults enforces the load-time defaulting rules: a missing or
// non-positive admit allowance becomes 1, visitor seats never go
// negative, and the ticket identifier is normalized to fixed width.
func (t *Ticket) ApplyDefaults() {
	t.TicketID = NormalizeTicketID(t.TicketID)
	if t.Admit < 1 {
		t.Admit = 1
	}
	if t.VisitorSeats < 0 {
		t.VisitorSeats = 0
	}
	if !t.Visited {
		t.VisitorSeats = 0
	}
}

// CloneTickets returns a deep copy of the ticket slice. Timestamps are
// copied by value so mutating the copy never aliases the original.
func CloneTickets(tickets []Ticket) []Ticket {
	out := make([]Ticket, len(tickets))
	copy(out, tickets)
	for i := range out {
		if out[i].Timestamp != nil {
			ts := *out[i].Timestamp
			out[i].Timestamp = &ts
		}
	}
	return out
}

// FindTicket returns a pointer to the ticket with the given normalized
// ID, or nil when no such ticket exists.
func FindTicket(tickets []Ticket, id string) *Ticket {
	id = NormalizeTicketID(id)
	for i := range tickets {
		if tickets[i].TicketID == id {
			return &tickets[i]
		}
	}
	return nil
}
