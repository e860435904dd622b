package models

import (
	"bank-report/internal/parsererror"
)

// Table is the set of transactions loaded from one export, plus the columns
// its header declared. A Table is never modified after construction.
type Table struct {
	columns map[Column]struct{}
	rows    []Transaction
}

// NewTable builds a table. Both slices are copied.
func NewTable(columns []Column, rows []Transaction) *Table {
	set := make(map[Column]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	copied := make([]Transaction, len(rows))
	copy(copied, rows)
	return &Table{columns: set, rows: copied}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the rows in source order.
func (t *Table) Rows() []Transaction {
	out := make([]Transaction, len(t.rows))
	copy(out, t.rows)
	return out
}

// Columns returns the present columns in KnownColumns order.
func (t *Table) Columns() []Column {
	out := make([]Column, 0, len(t.columns))
	for _, c := range KnownColumns {
		if _, ok := t.columns[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// HasColumn reports whether the source header declared c.
func (t *Table) HasColumn(c Column) bool {
	_, ok := t.columns[c]
	return ok
}

// Require returns a MissingColumnError for the first absent column.
func (t *Table) Require(operation string, columns ...Column) error {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return &parsererror.MissingColumnError{Operation: operation, Column: string(c)}
		}
	}
	return nil
}

// WithRows returns a new table with the same columns and the given rows.
func (t *Table) WithRows(rows []Transaction) *Table {
	return NewTable(t.Columns(), rows)
}
