package records

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// fakeRemote keeps sheets in memory and honours A1 ranges the way the Sheets
// API does for the shapes the store uses.
type fakeRemote struct {
	mu     sync.Mutex
	sheets map[string][][]string

	reads   []string
	updates []string
	appends []string

	readErr   error
	updateErr error

	// afterRead runs outside the lock once a read has copied its rows.
	afterRead func(range_ string)
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{sheets: map[string][][]string{}}
}

func (f *fakeRemote) set(sheet string, rows ...[]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sheets[sheet] = rows
}

func (f *fakeRemote) cell(sheet string, column, row int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.sheets[sheet]
	if row >= len(rows) || column >= len(rows[row]) {
		return ""
	}
	return rows[row][column]
}

func (f *fakeRemote) ReadRange(ctx context.Context, range_ string) ([][]interface{}, error) {
	f.mu.Lock()
	f.reads = append(f.reads, range_)
	if f.readErr != nil {
		f.mu.Unlock()
		return nil, f.readErr
	}
	ref := mustParseA1(range_)
	rows, ok := f.sheets[ref.sheet]
	var out [][]interface{}
	if ok {
		for r, row := range rows {
			if !ref.hasRow(r + 1) {
				continue
			}
			var cells []interface{}
			for c, v := range row {
				if ref.hasColumn(c + 1) {
					cells = append(cells, v)
				}
			}
			out = append(out, cells)
		}
	}
	f.mu.Unlock()

	if f.afterRead != nil {
		f.afterRead(range_)
	}
	return out, nil
}

func (f *fakeRemote) UpdateRange(ctx context.Context, range_ string, values [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, range_)
	if f.updateErr != nil {
		return f.updateErr
	}
	ref := mustParseA1(range_)
	for i, vals := range values {
		for j, v := range vals {
			f.put(ref.sheet, ref.firstCol+j-1, ref.firstRow+i-1, fmt.Sprint(v))
		}
	}
	return nil
}

func (f *fakeRemote) AppendRows(ctx context.Context, range_ string, rows [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends = append(f.appends, range_)
	if f.updateErr != nil {
		return f.updateErr
	}
	ref := mustParseA1(range_)
	for _, vals := range rows {
		row := make([]string, len(vals))
		for j, v := range vals {
			row[j] = fmt.Sprint(v)
		}
		f.sheets[ref.sheet] = append(f.sheets[ref.sheet], row)
	}
	return nil
}

func (f *fakeRemote) put(sheet string, column, row int, value string) {
	rows := f.sheets[sheet]
	for len(rows) <= row {
		rows = append(rows, nil)
	}
	for len(rows[row]) <= column {
		rows[row] = append(rows[row], "")
	}
	rows[row][column] = value
	f.sheets[sheet] = rows
}

type a1Ref struct {
	sheet             string
	firstCol, lastCol int // 0 means unbounded
	firstRow, lastRow int
}

func (r a1Ref) hasRow(n int) bool {
	return (r.firstRow == 0 || n >= r.firstRow) && (r.lastRow == 0 || n <= r.lastRow)
}

func (r a1Ref) hasColumn(n int) bool {
	return (r.firstCol == 0 || n >= r.firstCol) && (r.lastCol == 0 || n <= r.lastCol)
}

func mustParseA1(range_ string) a1Ref {
	i := strings.LastIndex(range_, "!")
	if i < 0 {
		panic("range without sheet: " + range_)
	}
	sheet := range_[:i]
	if strings.HasPrefix(sheet, "'") {
		sheet = strings.ReplaceAll(strings.Trim(sheet, "'"), "''", "'")
	}
	ref := a1Ref{sheet: sheet}
	parts := strings.Split(range_[i+1:], ":")
	ref.firstCol, ref.firstRow = parseCellRef(parts[0])
	if len(parts) == 2 {
		ref.lastCol, ref.lastRow = parseCellRef(parts[1])
	} else {
		ref.lastCol, ref.lastRow = ref.firstCol, ref.firstRow
	}
	return ref
}

func parseCellRef(s string) (col, row int) {
	split := strings.IndexFunc(s, unicode.IsDigit)
	letters, digits := s, ""
	if split >= 0 {
		letters, digits = s[:split], s[split:]
	}
	if letters != "" {
		n, err := LetterToIndex(letters)
		if err != nil {
			panic(err)
		}
		col = n
	}
	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil {
			panic(err)
		}
		row = n
	}
	return col, row
}
