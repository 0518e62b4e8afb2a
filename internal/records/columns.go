package records

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// IndexToLetter converts a 1-based column number to its A1 letter label:
// 1 is "A", 26 is "Z", 27 is "AA", 702 is "ZZ".
func IndexToLetter(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("column number must be at least 1, got %d", n)
	}
	name, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return "", fmt.Errorf("column %d: %w", n, err)
	}
	return name, nil
}

// LetterToIndex is the inverse of IndexToLetter.
func LetterToIndex(letter string) (int, error) {
	n, err := excelize.ColumnNameToNumber(letter)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", letter, err)
	}
	return n, nil
}

// mustLetter is for column numbers fixed at compile time.
func mustLetter(n int) string {
	letter, err := IndexToLetter(n)
	if err != nil {
		panic(err)
	}
	return letter
}
