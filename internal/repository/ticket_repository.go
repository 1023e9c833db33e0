// Package repository implements whole-table data access for the
// tickets and menu tables. There are no row-level updates: every
// mutation flows through an in-memory snapshot and comes back as a
// full-table replace. Failures surface as wrapped driver errors and
// should be treated as data-access errors by callers.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/event-ticket-inventory/internal/model"
)

// TicketRepo reads and replaces the tickets table as a whole.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// LoadAll reads every ticket row in stored order and applies the
// defaulting rules: NULL flags become false, NULL seats become 0, a
// missing admit allowance becomes 1, an unparseable type fails the
// load, and ticket IDs are normalized to the fixed zero-padded width.
func (r *TicketRepo) LoadAll(ctx context.Context) ([]model.Ticket, error) {
	const q = `SELECT ticket_id, type, category, admit, seq, sold, customer, visited, visitor_seats, timestamp
	           FROM tickets`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	defer rows.Close()

	var result []model.Ticket
	for rows.Next() {
		var (
			t        model.Ticket
			typ      string
			admit    sql.NullInt64
			seq      sql.NullInt64
			sold     sql.NullBool
			customer sql.NullString
			visited  sql.NullBool
			seats    sql.NullInt64
			ts       sql.NullTime
		)
		if err := rows.Scan(&t.TicketID, &typ, &t.Category, &admit, &seq, &sold, &customer, &visited, &seats, &ts); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		t.Type, err = model.ParseTicketType(typ)
		if err != nil {
			return nil, fmt.Errorf("ticket %s: %w", t.TicketID, err)
		}
		t.Admit = admit.Int64
		t.Seq = seq.Int64
		t.Sold = sold.Bool
		t.Customer = customer.String
		t.Visited = visited.Bool
		t.VisitorSeats = seats.Int64
		if ts.Valid {
			utc := ts.Time.UTC()
			t.Timestamp = &utc
		}
		t.ApplyDefaults()
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	return result, nil
}

// ReplaceAll overwrites the tickets table with the given snapshot
// inside a single transaction: delete everything, then bulk insert.
func (r *TicketRepo) ReplaceAll(ctx context.Context, tickets []model.Ticket) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace tickets: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tickets`); err != nil {
		return fmt.Errorf("clear tickets: %w", err)
	}
	if len(tickets) > 0 {
		query := `INSERT INTO tickets (ticket_id, type, category, admit, seq, sold, customer, visited, visitor_seats, timestamp) VALUES `
		args := make([]interface{}, 0, len(tickets)*10)
		for i, t := range tickets {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
			var ts interface{}
			if t.Timestamp != nil {
				ts = t.Timestamp.UTC()
			}
			args = append(args, t.TicketID, string(t.Type), t.Category, t.Admit, t.Seq,
				t.Sold, t.Customer, t.Visited, t.VisitorSeats, ts)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert tickets: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace tickets: %w", err)
	}
	committed = true
	return nil
}
