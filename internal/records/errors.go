package records

import "fmt"

// NotFoundError reports that no row carries Key in the key column.
type NotFoundError struct {
	Sheet string
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("name %q not found in column D of sheet %q", e.Key, e.Sheet)
}

// ValidationError reports a required request field that is missing. It is
// raised before any remote call.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// RemoteError wraps any failure talking to the spreadsheet service.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
