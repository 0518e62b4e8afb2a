package httpapi

import (
	"strings"

	"health_tracker/internal/records"

	"github.com/labstack/echo/v4"
)

type reminderRequest struct {
	Name                 string `json:"name"`
	NZDTDateTime         string `json:"nzdtDateTime"`
	DateTimeToRemindData string `json:"dateTimeToRemindData"`
}

// updateField returns the handler for POST /api/update-<slug>. The request
// carries the record name and the new value under f.DataKey; the value is
// appended to the field's history cell on the medical sheet.
func (s *Server) updateField(f records.Field) echo.HandlerFunc {
	action := "update " + strings.ToLower(f.Label)

	return func(c echo.Context) error {
		body := map[string]interface{}{}
		if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
			return err
		}

		name := stringValue(body["name"])
		if name == "" {
			return fail(c, action, &records.ValidationError{Field: "name"})
		}
		value := stringValue(body[f.DataKey])
		if value == "" {
			return fail(c, action, &records.ValidationError{Field: f.DataKey})
		}

		if err := s.store.UpdateField(c.Request().Context(), s.cfg.MedicalSheet, name, f.Column, value); err != nil {
			return fail(c, action, err)
		}
		return ok(c, f.Label+" updated successfully")
	}
}

// updateDateTimeToRemind records a reminder in both timestamp columns, local
// time in AA then UTC in AB. Each value is stored with a trailing delimiter;
// a missing value leaves its column untouched.
func (s *Server) updateDateTimeToRemind(c echo.Context) error {
	const action = "update date and time to remind"

	var req reminderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Name == "" {
		return fail(c, action, &records.ValidationError{Field: "name"})
	}

	writes := []struct {
		column   int
		fragment string
	}{
		{records.ColumnReminderDateLocal, records.LiteralFragment(req.NZDTDateTime)},
		{records.ColumnReminderDateUTC, records.LiteralFragment(req.DateTimeToRemindData)},
	}
	if writes[0].fragment == "" && writes[1].fragment == "" {
		return fail(c, action, &records.ValidationError{Field: "dateTimeToRemindData"})
	}

	ctx := c.Request().Context()
	for _, w := range writes {
		if w.fragment == "" {
			continue
		}
		if err := s.store.UpdateField(ctx, s.cfg.MedicalSheet, req.Name, w.column, w.fragment); err != nil {
			return fail(c, action, err)
		}
	}
	return ok(c, "Date and Time to Remind updated successfully")
}
