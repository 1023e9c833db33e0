package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/event-ticket-inventory/internal/model"
)

// MenuRepo reads and replaces the menu (catalog) table as a whole,
// mirroring TicketRepo's full-snapshot model.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo constructs a MenuRepo with the given DB handle.
func NewMenuRepo(db *sql.DB) *MenuRepo {
	return &MenuRepo{db: db}
}

// LoadAll reads every catalog row in stored order. NULL numeric columns
// default to zero; an unknown type fails the load.
func (r *MenuRepo) LoadAll(ctx context.Context) ([]model.MenuRow, error) {
	const q = `SELECT seq, type, category, series, admit, alloc, total_capacity FROM menu`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	defer rows.Close()

	var result []model.MenuRow
	for rows.Next() {
		var (
			m        model.MenuRow
			typ      string
			seq      sql.NullInt64
			series   sql.NullString
			admit    sql.NullInt64
			alloc    sql.NullInt64
			totalCap sql.NullInt64
		)
		if err := rows.Scan(&seq, &typ, &m.Category, &series, &admit, &alloc, &totalCap); err != nil {
			return nil, fmt.Errorf("scan menu row: %w", err)
		}
		m.Type, err = model.ParseTicketType(typ)
		if err != nil {
			return nil, fmt.Errorf("menu row %q: %w", m.Category, err)
		}
		m.Seq = seq.Int64
		m.Series = series.String
		m.Admit = admit.Int64
		m.Alloc = alloc.Int64
		m.TotalCapacity = totalCap.Int64
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	return result, nil
}

// ReplaceAll overwrites the menu table with the given rows inside a
// single transaction.
func (r *MenuRepo) ReplaceAll(ctx context.Context, menu []model.MenuRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace menu: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM menu`); err != nil {
		return fmt.Errorf("clear menu: %w", err)
	}
	if len(menu) > 0 {
		query := `INSERT INTO menu (seq, type, category, series, admit, alloc, total_capacity) VALUES `
		args := make([]interface{}, 0, len(menu)*7)
		for i, m := range menu {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?, ?, ?)"
			args = append(args, m.Seq, string(m.Type), m.Category, m.Series, m.Admit, m.Alloc, m.TotalCapacity)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert menu: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace menu: %w", err)
	}
	committed = true
	return nil
}
