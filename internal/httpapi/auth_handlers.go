package httpapi

import (
	"net/http"

	"health_tracker/internal/auth"

	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	ChurchID string `json:"churchID"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r credentialsRequest) credentials() auth.Credentials {
	return auth.Credentials{ChurchID: r.ChurchID, Username: r.Username, Password: r.Password}
}

func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if _, err := s.auth.Login(c.Request().Context(), req.credentials()); err != nil {
		return fail(c, "log in", err)
	}
	return ok(c, "Login successful!")
}

func (s *Server) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := s.auth.Register(c.Request().Context(), req.credentials()); err != nil {
		return fail(c, "register user", err)
	}
	return c.JSON(http.StatusCreated, response{Success: true, Message: "User registered successfully"})
}
