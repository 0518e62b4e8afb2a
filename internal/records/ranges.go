package records

import (
	"fmt"
	"regexp"
	"strings"
)

// WriteCeilingColumn is the last column (AZ) read on the update path.
// Columns past it are invisible to UpdateField regardless of sheet width.
const WriteCeilingColumn = 52

var plainSheetName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// quoteSheet renders a sheet name for A1 notation, quoting names that
// contain spaces or punctuation.
func quoteSheet(sheet string) string {
	if plainSheetName.MatchString(sheet) {
		return sheet
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

// HeaderRange selects the whole first row of sheet.
func HeaderRange(sheet string) string {
	return quoteSheet(sheet) + "!1:1"
}

// ColumnsRange selects columns A through lastColumn (1-based) for every row.
func ColumnsRange(sheet string, lastColumn int) (string, error) {
	letter, err := IndexToLetter(lastColumn)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!A:%s", quoteSheet(sheet), letter), nil
}

// WriteRange is the fixed A:AZ range scanned before a single-cell update.
func WriteRange(sheet string) string {
	return fmt.Sprintf("%s!A:%s", quoteSheet(sheet), mustLetter(WriteCeilingColumn))
}

// AppendRange anchors an append at the top of sheet; Sheets finds the end of the table.
func AppendRange(sheet string) string {
	return quoteSheet(sheet) + "!A1"
}

// CellRange addresses one cell by 0-based column and row index.
func CellRange(sheet string, column, row int) (string, error) {
	letter, err := IndexToLetter(column + 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!%s%d", quoteSheet(sheet), letter, row+1), nil
}

// RowSpanRange addresses columns A through width (1-based) of one 0-based row.
func RowSpanRange(sheet string, row, width int) (string, error) {
	letter, err := IndexToLetter(width)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!A%d:%s%d", quoteSheet(sheet), row+1, letter, row+1), nil
}

// HeaderExtent counts the header row up to its last non-empty cell, never
// less than one column.
func HeaderExtent(header Row) int {
	n := len(header)
	for n > 0 && header[n-1] == "" {
		n--
	}
	if n == 0 {
		return 1
	}
	return n
}
