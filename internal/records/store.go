package records

import (
	"context"
	"fmt"

	"health_tracker/internal/config"
	"health_tracker/internal/retry"

	"github.com/rs/zerolog/log"
)

// Remote is the tabular service the store reads and writes through.
// *sheets.Client implements it.
type Remote interface {
	ReadRange(ctx context.Context, range_ string) ([][]interface{}, error)
	UpdateRange(ctx context.Context, range_ string, values [][]interface{}) error
	AppendRows(ctx context.Context, range_ string, rows [][]interface{}) error
}

// Store keeps records in sheets of a remote spreadsheet, one row per record,
// keyed by the display name in column D. It holds no state between calls:
// every operation re-reads the rows it needs, and row positions are never
// cached.
//
// UpdateField reads and then writes without any lock or version check, so
// two concurrent updates to the same cell can both read the old value and
// the later write wins.
type Store struct {
	remote     Remote
	resilience config.ResilienceConfig
}

func NewStore(remote Remote, resilience config.ResilienceConfig) *Store {
	return &Store{
		remote:     remote,
		resilience: resilience,
	}
}

// ListAll returns every row of sheet, header included, across the columns
// the header currently spans.
func (s *Store) ListAll(ctx context.Context, sheet string) ([]Row, error) {
	log.Debug().Str("sheet", sheet).Msg("Listing records")

	readRange, err := s.ResolveReadRange(ctx, sheet)
	if err != nil {
		return nil, err
	}

	rows, err := s.read(ctx, readRange)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("sheet", sheet).
		Str("range", readRange).
		Int("rows", len(rows)).
		Msg("Retrieved records")
	return rows, nil
}

// Find returns the first row whose display name equals key exactly.
func (s *Store) Find(ctx context.Context, sheet, key string) (Row, error) {
	rows, err := s.ListAll(ctx, sheet)
	if err != nil {
		return nil, err
	}

	idx, ok := FindRow(rows, KeyColumn, key)
	if !ok {
		return nil, &NotFoundError{Sheet: sheet, Key: key}
	}
	return rows[idx], nil
}

// ResolveReadRange reads the header row of sheet and returns the A1 range
// covering columns A through the last non-empty header cell.
func (s *Store) ResolveReadRange(ctx context.Context, sheet string) (string, error) {
	headerRows, err := s.read(ctx, HeaderRange(sheet))
	if err != nil {
		return "", err
	}

	var header Row
	if len(headerRows) > 0 {
		header = headerRows[0]
	}

	readRange, err := ColumnsRange(sheet, HeaderExtent(header))
	if err != nil {
		return "", err
	}
	log.Debug().Str("sheet", sheet).Str("range", readRange).Msg("Resolved read range")
	return readRange, nil
}

// UpdateField appends value to the history kept in one cell of the record
// named key. The record is located within columns A..AZ only.
func (s *Store) UpdateField(ctx context.Context, sheet, key string, column int, value string) error {
	if key == "" {
		return &ValidationError{Field: "name"}
	}

	rows, err := s.read(ctx, WriteRange(sheet))
	if err != nil {
		return err
	}

	idx, ok := FindRow(rows, KeyColumn, key)
	if !ok {
		return &NotFoundError{Sheet: sheet, Key: key}
	}

	existing := rows[idx].Cell(column)
	next := AppendHistory(existing, value)

	cellRange, err := CellRange(sheet, column, idx)
	if err != nil {
		return err
	}

	log.Debug().
		Str("sheet", sheet).
		Str("name", key).
		Str("range", cellRange).
		Bool("had_value", existing != "").
		Msg("Updating record field")

	if err := s.write(ctx, cellRange, [][]interface{}{{next}}); err != nil {
		return err
	}

	log.Info().
		Str("sheet", sheet).
		Str("name", key).
		Str("range", cellRange).
		Msg("Updated record field")
	return nil
}

// AppendRecord adds fields as a new row at the end of sheet.
func (s *Store) AppendRecord(ctx context.Context, sheet string, fields []string) error {
	row := make([]interface{}, len(fields))
	for i, f := range fields {
		row[i] = f
	}

	_, err := retry.WithRetry(ctx, s.resilience.SheetWrite, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.remote.AppendRows(ctx, AppendRange(sheet), [][]interface{}{row})
	})
	if err != nil {
		return &RemoteError{Op: "append to " + sheet, Err: err}
	}

	log.Info().Str("sheet", sheet).Int("columns", len(fields)).Msg("Appended record")
	return nil
}

// ReplaceRange overwrites the leading len(fields) columns of the record
// named key. Unlike UpdateField no history is kept.
func (s *Store) ReplaceRange(ctx context.Context, sheet, key string, fields []string) error {
	if key == "" {
		return &ValidationError{Field: "search"}
	}
	if len(fields) == 0 {
		return fmt.Errorf("no fields to write")
	}

	readRange, err := ColumnsRange(sheet, len(fields))
	if err != nil {
		return err
	}
	rows, err := s.read(ctx, readRange)
	if err != nil {
		return err
	}

	idx, ok := FindRow(rows, KeyColumn, key)
	if !ok {
		return &NotFoundError{Sheet: sheet, Key: key}
	}

	spanRange, err := RowSpanRange(sheet, idx, len(fields))
	if err != nil {
		return err
	}

	row := make([]interface{}, len(fields))
	for i, f := range fields {
		row[i] = f
	}
	if err := s.write(ctx, spanRange, [][]interface{}{row}); err != nil {
		return err
	}

	log.Info().Str("sheet", sheet).Str("name", key).Str("range", spanRange).Msg("Replaced record")
	return nil
}

func (s *Store) read(ctx context.Context, range_ string) ([]Row, error) {
	values, err := retry.WithRetry(ctx, s.resilience.SheetRead, func(ctx context.Context) ([][]interface{}, error) {
		return s.remote.ReadRange(ctx, range_)
	})
	if err != nil {
		log.Error().Err(err).Str("range", range_).Msg("Failed to read sheet range")
		return nil, &RemoteError{Op: "read " + range_, Err: err}
	}
	return toRows(values), nil
}

func (s *Store) write(ctx context.Context, range_ string, values [][]interface{}) error {
	_, err := retry.WithRetry(ctx, s.resilience.SheetWrite, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.remote.UpdateRange(ctx, range_, values)
	})
	if err != nil {
		log.Error().Err(err).Str("range", range_).Msg("Failed to write sheet range")
		return &RemoteError{Op: "write " + range_, Err: err}
	}
	return nil
}
