package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"health_tracker/internal/auth"
	"health_tracker/internal/notifications"
	"health_tracker/internal/records"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// remoteFailureMessage replaces spreadsheet service errors in responses; the
// full error is only logged.
const remoteFailureMessage = "the spreadsheet service could not complete the request"

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// statusFor maps err to an HTTP status and the text safe to show the caller.
func statusFor(err error) (int, string) {
	var (
		validationErr *records.ValidationError
		notFoundErr   *records.NotFoundError
		remoteErr     *records.RemoteError
		authErr       *auth.AuthError
		notifErr      *notifications.NotificationError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, auth.ErrUserExists):
		return http.StatusConflict, err.Error()
	case errors.As(err, &notifErr):
		if notifErr.Type == "disabled" {
			return http.StatusServiceUnavailable, "sms is not configured"
		}
		return http.StatusBadGateway, notifErr.Underlying.Error()
	case errors.As(err, &remoteErr):
		return http.StatusBadGateway, remoteFailureMessage
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// fail logs err and writes the failure envelope. action completes the
// sentence "Failed to ...".
func fail(c echo.Context, action string, err error) error {
	status, detail := statusFor(err)

	evt := log.Warn()
	if status >= http.StatusInternalServerError {
		evt = log.Error()
	}
	rid, _ := c.Get("request_id").(string)
	evt.Err(err).
		Str("request_id", rid).
		Str("path", c.Request().URL.Path).
		Int("status", status).
		Msgf("Failed to %s", action)

	if status == http.StatusUnauthorized {
		return c.JSON(status, response{Success: false, Message: detail})
	}
	return c.JSON(status, response{
		Success: false,
		Message: "Failed to " + action,
		Error:   detail,
	})
}

func ok(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, response{Success: true, Message: message})
}

// stringValue renders a decoded JSON value the way it would be typed into a
// cell.
func stringValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
