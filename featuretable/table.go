// Package featuretable provides the in-memory tabular representation of an
// exported collection. A Table holds string cells under an ordered column
// set; the column set is determined entirely by the source documents, no
// fixed schema is enforced.
package featuretable

import (
	"fmt"
	"strconv"
	"time"
)

// Field is a single named value within a source document. Fields keep the
// order they appeared in, so column order reflects the source collection.
type Field struct {
	Name  string
	Value any
}

// Document is one record from the source collection, with field order
// preserved.
type Document []Field

// Table is a columnar view over a set of documents. Cells are stringified
// at construction; the empty string is the missing-value marker.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty table with the given column set.
func New(columns []string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range t.columns {
		t.index[c] = i
	}
	return t
}

// FromDocuments builds a table from a document set. Columns appear in
// first-seen order across the documents; a document missing a column
// contributes the missing marker for that cell.
func FromDocuments(docs []Document) *Table {
	t := New(nil)
	for _, doc := range docs {
		for _, f := range doc {
			if _, ok := t.index[f.Name]; !ok {
				t.index[f.Name] = len(t.columns)
				t.columns = append(t.columns, f.Name)
			}
		}
	}

	t.rows = make([][]string, 0, len(docs))
	for _, doc := range docs {
		row := make([]string, len(t.columns))
		for _, f := range doc {
			row[t.index[f.Name]] = formatValue(f.Value)
		}
		t.rows = append(t.rows, row)
	}
	return t
}

// Columns returns the ordered column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Row returns a copy of the i-th row.
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// Cell returns the value at row i for the named column. The second return
// is false when the column does not exist.
func (t *Table) Cell(i int, column string) (string, bool) {
	j, ok := t.index[column]
	if !ok {
		return "", false
	}
	return t.rows[i][j], true
}

// DropColumn removes the named column and its cells from every row.
// Returns false when the column is not present.
func (t *Table) DropColumn(name string) bool {
	j, ok := t.index[name]
	if !ok {
		return false
	}

	t.columns = append(t.columns[:j], t.columns[j+1:]...)
	for i, row := range t.rows {
		t.rows[i] = append(row[:j], row[j+1:]...)
	}

	t.index = make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		t.index[c] = i
	}
	return true
}

// NormalizeMissing replaces every cell equal to token with the missing
// marker (the empty string) and returns the number of cells replaced.
func (t *Table) NormalizeMissing(token string) int {
	replaced := 0
	for _, row := range t.rows {
		for j, cell := range row {
			if cell == token {
				row[j] = ""
				replaced++
			}
		}
	}
	return replaced
}

// Select returns a new table containing the rows at the given indices, in
// the given order, sharing the column set with the receiver.
func (t *Table) Select(indices []int) *Table {
	out := New(t.columns)
	out.rows = make([][]string, 0, len(indices))
	for _, i := range indices {
		out.rows = append(out.rows, append([]string(nil), t.rows[i]...))
	}
	return out
}

// formatValue stringifies a document value. Nil becomes the missing marker.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
