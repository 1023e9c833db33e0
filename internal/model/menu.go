package model

// MenuRow is one catalog entry: a named category of tickets sharing a
// series range and admit allowance. Alloc and TotalCapacity are derived
// from Series and Admit; they are never independently authoritative.
//
// Fields:
//  Seq           – display grouping key; 0 is the overflow bucket.
//  Type          – Public or Guest.
//  Category      – category name, unique within a type.
//  Series        – contiguous numeric range "start-end"; may be empty.
//  Admit         – visitors admitted per ticket in this category.
//  Alloc         – derived ticket count (series length).
//  TotalCapacity – derived seat capacity (Alloc × Admit).
type MenuRow struct {
	Seq           int64      `json:"seq"`            // menu.seq
	Type          TicketType `json:"type"`           // menu.type
	Category      string     `json:"category"`       // menu.category
	Series        string     `json:"series"`         // menu.series
	Admit         int64      `json:"admit"`          // menu.admit
	Alloc         int64      `json:"alloc"`          // menu.alloc (derived)
	TotalCapacity int64      `json:"total_capacity"` // menu.total_capacity (derived)
}

// CloneMenu returns a copy of the menu slice. Rows hold no reference
// types, so a shallow element copy is a deep copy.
func CloneMenu(rows []MenuRow) []MenuRow {
	out := make([]MenuRow, len(rows))
	copy(out, rows)
	return out
}
