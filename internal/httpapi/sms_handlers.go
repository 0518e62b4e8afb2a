package httpapi

import (
	"net/http"

	"health_tracker/internal/notifications"
	"health_tracker/internal/records"

	"github.com/labstack/echo/v4"
)

type smsRequest struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	DateTime string `json:"dateTime"`
}

type smsResponse struct {
	Success bool   `json:"success"`
	SID     string `json:"sid"`
}

// sendSMS sends the message immediately; dateTime is only quoted in the body.
func (s *Server) sendSMS(c echo.Context) error {
	var req smsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.To == "" {
		return fail(c, "send sms", &records.ValidationError{Field: "to"})
	}
	if req.Message == "" {
		return fail(c, "send sms", &records.ValidationError{Field: "message"})
	}

	sid, err := s.sms.SendSMS(c.Request().Context(), req.To, notifications.FormatReminder(req.Message, req.DateTime))
	if err != nil {
		return fail(c, "send sms", err)
	}
	return c.JSON(http.StatusOK, smsResponse{Success: true, SID: sid})
}
