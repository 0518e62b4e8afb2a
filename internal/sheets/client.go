package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	valueInputOption = "USER_ENTERED"
	insertDataOption = "INSERT_ROWS"
)

type Client struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewClient creates a Sheets client bound to one spreadsheet. Extra options
// are appended after the ones derived from cfg.
func NewClient(ctx context.Context, cfg Config, extra ...option.ClientOption) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := append(cfg.clientOptions(), extra...)
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// ReadRange returns the values in range_. A sheet or range that does not
// exist reads as no rows rather than an error.
func (c *Client) ReadRange(ctx context.Context, range_ string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, range_).Context(ctx).Do()
	if err != nil {
		if isMissingRange(err) {
			log.Debug().Err(err).Str("range", range_).Msg("Range not found, treating as empty")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return resp.Values, nil
}

func (c *Client) AppendRows(ctx context.Context, range_ string, rows [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: rows,
	}

	_, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, range_, valueRange).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append rows: %w", err)
	}

	return nil
}

// UpdateRange overwrites range_ with values. USER_ENTERED lets Sheets parse
// dates and numbers out of the strings, which the stored data relies on.
func (c *Client) UpdateRange(ctx context.Context, range_ string, values [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Update(c.spreadsheetID, range_, valueRange).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update range: %w", err)
	}

	return nil
}

// IsRetryable reports whether err is a quota or server-side failure that may
// succeed on a later attempt.
func IsRetryable(err error) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}
	return gErr.Code == http.StatusTooManyRequests || gErr.Code >= http.StatusInternalServerError
}

func isMissingRange(err error) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}
	switch gErr.Code {
	case http.StatusNotFound:
		return true
	case http.StatusBadRequest:
		return strings.Contains(gErr.Message, "Unable to parse range")
	}
	return false
}
