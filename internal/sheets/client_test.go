package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]interface{}
}

func newFakeSheets(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}}
		for k := range r.URL.Query() {
			rec.Query[k] = r.URL.Query().Get(k)
		}
		if body, _ := io.ReadAll(r.Body); len(body) > 0 {
			_ = json.Unmarshal(body, &rec.Body)
		}
		requests = append(requests, rec)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), Config{
		SpreadsheetID: "sheet-id",
		Endpoint:      srv.URL + "/",
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client, &requests
}

func writeAPIError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error":{"code":%d,"message":%q,"status":"INVALID_ARGUMENT"}}`, code, message)
}

func TestNewClientRequiresSpreadsheetID(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Endpoint: "http://localhost/"})
	if err == nil {
		t.Fatal("Expected error for missing spreadsheet ID")
	}
}

func TestReadRange(t *testing.T) {
	client, requests := newFakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"range":"Medical!A1:D3","majorDimension":"ROWS","values":[["Surname","Firstname"],["Doe","Jane","M","Jane M Doe"]]}`)
	})

	values, err := client.ReadRange(context.Background(), "Medical!A:D")
	if err != nil {
		t.Fatalf("Failed to read sheet: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(values))
	}
	if values[1][3] != "Jane M Doe" {
		t.Errorf("Expected 'Jane M Doe', got %v", values[1][3])
	}

	got := (*requests)[0]
	if got.Method != http.MethodGet {
		t.Errorf("Expected GET, got %s", got.Method)
	}
	if !strings.HasSuffix(got.Path, "/v4/spreadsheets/sheet-id/values/Medical!A:D") {
		t.Errorf("Unexpected request path %s", got.Path)
	}
}

func TestReadRangeMissingSheetIsEmpty(t *testing.T) {
	client, _ := newFakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusBadRequest, "Unable to parse range: Nope!A:Z")
	})

	values, err := client.ReadRange(context.Background(), "Nope!A:Z")
	if err != nil {
		t.Fatalf("Expected no error for missing range, got %v", err)
	}
	if len(values) != 0 {
		t.Errorf("Expected no rows, got %d", len(values))
	}
}

func TestReadRangeQuotaErrorSurfaces(t *testing.T) {
	client, _ := newFakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusTooManyRequests, "Quota exceeded for quota metric 'Read requests'")
	})

	_, err := client.ReadRange(context.Background(), "Medical!A:Z")
	if err == nil {
		t.Fatal("Expected quota error")
	}
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) || gErr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected wrapped googleapi.Error with 429, got %v", err)
	}
	if !IsRetryable(err) {
		t.Error("Expected 429 to be retryable")
	}
}

func TestUpdateRangeUsesUserEntered(t *testing.T) {
	client, requests := newFakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"spreadsheetId":"sheet-id","updatedCells":1}`)
	})

	err := client.UpdateRange(context.Background(), "Medical!M5", [][]interface{}{{"70kg | 72kg"}})
	if err != nil {
		t.Fatalf("Failed to update range: %v", err)
	}

	got := (*requests)[0]
	if got.Method != http.MethodPut {
		t.Errorf("Expected PUT, got %s", got.Method)
	}
	if got.Query["valueInputOption"] != "USER_ENTERED" {
		t.Errorf("Expected USER_ENTERED, got %q", got.Query["valueInputOption"])
	}
	values, _ := got.Body["values"].([]interface{})
	if len(values) != 1 {
		t.Fatalf("Expected one row in body, got %v", got.Body)
	}
	if row := values[0].([]interface{}); row[0] != "70kg | 72kg" {
		t.Errorf("Unexpected cell value %v", row[0])
	}
}

func TestAppendRowsInsertsRows(t *testing.T) {
	client, requests := newFakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"spreadsheetId":"sheet-id","updates":{"updatedRows":1}}`)
	})

	err := client.AppendRows(context.Background(), "Medical!A1", [][]interface{}{{"Doe", "Jane"}})
	if err != nil {
		t.Fatalf("Failed to append rows: %v", err)
	}

	got := (*requests)[0]
	if got.Method != http.MethodPost {
		t.Errorf("Expected POST, got %s", got.Method)
	}
	if !strings.HasSuffix(got.Path, ":append") {
		t.Errorf("Expected append call, got %s", got.Path)
	}
	if got.Query["insertDataOption"] != "INSERT_ROWS" {
		t.Errorf("Expected INSERT_ROWS, got %q", got.Query["insertDataOption"])
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&googleapi.Error{Code: 429}, true},
		{&googleapi.Error{Code: 503}, true},
		{&googleapi.Error{Code: 400}, false},
		{&googleapi.Error{Code: 403}, false},
		{errors.New("boom"), false},
		{fmt.Errorf("failed to read sheet: %w", &googleapi.Error{Code: 500}), true},
	}
	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
