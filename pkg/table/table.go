package table

import (
	"github.com/matzehuels/tablecast/pkg/errors"
)

// Align controls horizontal text placement inside a cell.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Normalize maps unrecognized alignments to [AlignLeft].
func (a Align) Normalize() Align {
	switch a {
	case AlignCenter, AlignRight:
		return a
	default:
		return AlignLeft
	}
}

// ColumnSpec describes one column of a table.
type ColumnSpec struct {
	Title   string `json:"title" toml:"title"`       // Header text
	DataKey string `json:"data_key" toml:"data_key"` // Row key holding this column's value
	WidthPx int    `json:"width" toml:"width"`       // Target width in pixels, must be > 0
	Align   Align  `json:"align" toml:"align"`       // Text alignment for body cells
}

// Row is one record of display data keyed by column data key.
type Row map[string]string

// Lookup returns the value stored under key, or "" when the row has no such key.
func Lookup(r Row, key string) string {
	return r[key]
}

// Table is an ordered set of rows displayed through an ordered set of columns.
// The first column is the only one whose values are wrapped.
type Table struct {
	Columns []ColumnSpec
	Rows    []Row
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Validate checks the column definitions.
func (t Table) Validate() error {
	return ValidateColumns(t.Columns)
}

// ValidateColumns checks that at least one column exists and that every
// column has a positive width and a data key.
func ValidateColumns(cols []ColumnSpec) error {
	if len(cols) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "table has no columns")
	}
	for i, c := range cols {
		if c.WidthPx <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "column %d (%q): width must be positive, got %d", i, c.Title, c.WidthPx)
		}
		if c.DataKey == "" {
			return errors.New(errors.ErrCodeInvalidInput, "column %d (%q): data key is empty", i, c.Title)
		}
	}
	return nil
}

// Keys returns the data keys of cols in display order.
func Keys(cols []ColumnSpec) []string {
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.DataKey
	}
	return keys
}
