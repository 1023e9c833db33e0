// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketSoldEvent is published when a ticket sale is recorded. It
// carries enough for downstream consumers to log or notify without
// querying the primary database.
type TicketSoldEvent struct {
	TicketID string `json:"ticket_id"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Customer string `json:"customer"`
	Admit    int64  `json:"admit"`
	SoldAt   string `json:"sold_at"`
}

// VisitorCheckedInEvent is published when visitors are admitted against
// a sold ticket.
type VisitorCheckedInEvent struct {
	TicketID     string `json:"ticket_id"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	VisitorSeats int64  `json:"visitor_seats"`
	Admit        int64  `json:"admit"`
	CheckedInAt  string `json:"checked_in_at"`
}
