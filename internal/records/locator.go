package records

import "fmt"

// Row is one sheet row. Rows may be shorter than the sheet is wide; missing
// trailing cells read as empty.
type Row []string

// Cell returns the value at the 0-based index i, or "" past the end of the row.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// FindRow returns the index of the first row whose cell at keyColumn equals
// key exactly. No trimming or case folding is applied.
func FindRow(rows []Row, keyColumn int, key string) (int, bool) {
	for i, row := range rows {
		if row.Cell(keyColumn) == key {
			return i, true
		}
	}
	return -1, false
}

// toRows converts raw API values to Rows.
func toRows(values [][]interface{}) []Row {
	rows := make([]Row, len(values))
	for i, raw := range values {
		row := make(Row, len(raw))
		for j, v := range raw {
			row[j] = cellString(v)
		}
		rows[i] = row
	}
	return rows
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
