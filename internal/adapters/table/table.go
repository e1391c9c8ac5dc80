// Package table reads static columnar datasets (CSV, XLSX or SQLite) into an
// in-memory table of text cells with a header index.
package table

import (
	"context"
	"path/filepath"
	"strings"
)

// Table is an eagerly loaded dataset. Cells are raw text; typed access goes
// through Row.
type Table struct {
	name   string
	header []string
	rows   [][]string
	index  map[string]int
}

// New builds a table from a header and rows. Short rows are padded with
// empty cells.
func New(name string, header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, &ShapeError{Dataset: name, Err: ErrEmptyTable}
	}
	t := &Table{name: name, header: make([]string, len(header)), index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		t.header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	t.rows = make([][]string, len(rows))
	for i, r := range rows {
		if len(r) < len(header) {
			padded := make([]string, len(header))
			copy(padded, r)
			r = padded
		}
		t.rows[i] = r
	}
	return t, nil
}

// Open reads the file at path, choosing the format from its extension:
// .csv, .xlsx, or .db/.sqlite/.sqlite3.
func Open(ctx context.Context, path string, opts ...Option) (*Table, error) {
	o := options{name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	for _, opt := range opts {
		opt(&o)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		header []string
		rows   [][]string
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		header, rows, err = readCSV(path)
	case ".xlsx":
		header, rows, err = readXLSX(path, o.sheet)
	case ".db", ".sqlite", ".sqlite3":
		table := o.table
		if table == "" {
			table = o.name
		}
		header, rows, err = readSQLite(ctx, path, table)
	default:
		return nil, &ShapeError{Dataset: o.name, Err: ErrUnsupportedFormat}
	}
	if err != nil {
		return nil, err
	}
	return New(o.name, header, rows)
}

// Name returns the dataset name.
func (t *Table) Name() string { return t.name }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Header returns the normalised column names.
func (t *Table) Header() []string { return append([]string(nil), t.header...) }

// Has reports whether the column exists.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Require fails with a ShapeError naming the first absent column.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return &ShapeError{Dataset: t.name, Column: c, Err: ErrMissingColumn}
		}
	}
	return nil
}

// Row returns an accessor for data row i (0-based).
func (t *Table) Row(i int) Row {
	return Row{t: t, n: i + 1, cells: t.rows[i]}
}
