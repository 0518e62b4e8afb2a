package httpapi

import (
	"bytes"
	"net/http"
	"strings"

	"health_tracker/internal/export"
	"health_tracker/internal/records"

	"github.com/labstack/echo/v4"
)

type demographicsRequest struct {
	Search string `json:"search"`
	records.Demographics
}

type identityRequest struct {
	Surname   string `json:"surname"`
	Firstname string `json:"firstname"`
	Middle    string `json:"middle"`
	Birthday  string `json:"birthday"`
}

type searchRequest struct {
	Search string `json:"search"`
}

func (s *Server) listSheet(sheet string) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := s.store.ListAll(c.Request().Context(), sheet)
		if err != nil {
			return fail(c, "retrieve data from "+sheet, err)
		}
		return c.JSON(http.StatusOK, nonNil(rows))
	}
}

// healthSummary filters the medical sheet by a case-insensitive substring of
// column A.
func (s *Server) healthSummary(c echo.Context) error {
	rows, err := s.store.ListAll(c.Request().Context(), s.cfg.MedicalSheet)
	if err != nil {
		return fail(c, "retrieve health summary", err)
	}

	search := c.QueryParam("search")
	if search == "" {
		return c.JSON(http.StatusOK, nonNil(rows))
	}

	filtered := []records.Row{}
	for _, row := range rows {
		if containsFold(row.Cell(records.ColumnSurname), search) {
			filtered = append(filtered, row)
		}
	}
	return c.JSON(http.StatusOK, filtered)
}

func (s *Server) nameList(c echo.Context) error {
	rows, err := s.store.ListAll(c.Request().Context(), s.cfg.MedicalSheet)
	if err != nil {
		return fail(c, "fetch name list", err)
	}

	names := []string{}
	for _, row := range rows {
		if name := row.Cell(records.KeyColumn); name != "" {
			names = append(names, name)
		}
	}
	return c.JSON(http.StatusOK, names)
}

func (s *Server) exportMedical(c echo.Context) error {
	rows, err := s.store.ListAll(c.Request().Context(), s.cfg.MedicalSheet)
	if err != nil {
		return fail(c, "export medical data", err)
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, s.cfg.MedicalSheet, rows); err != nil {
		return fail(c, "export medical data", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="medical-data.xlsx"`)
	return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
}

func (s *Server) addMedicalData(c echo.Context) error {
	var req records.Demographics
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Surname == "" {
		return fail(c, "add medical data", &records.ValidationError{Field: "surname"})
	}
	if req.Firstname == "" {
		return fail(c, "add medical data", &records.ValidationError{Field: "firstname"})
	}

	if err := s.store.AppendRecord(c.Request().Context(), s.cfg.MedicalSheet, req.Fields()); err != nil {
		return fail(c, "add medical data", err)
	}
	return ok(c, "Medical data added successfully")
}

func (s *Server) updateMedicalData(c echo.Context) error {
	var req demographicsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Search == "" {
		return fail(c, "update medical data", &records.ValidationError{Field: "search"})
	}

	if err := s.store.ReplaceRange(c.Request().Context(), s.cfg.MedicalSheet, req.Search, req.Demographics.Fields()); err != nil {
		return fail(c, "update medical data", err)
	}
	return ok(c, "Medical data updated successfully")
}

// checkMedicalData reports whether a record with the same names (ignoring
// case) and the exact birthday exists.
func (s *Server) checkMedicalData(c echo.Context) error {
	var req identityRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	required := []struct{ field, value string }{
		{"surname", req.Surname},
		{"firstname", req.Firstname},
		{"middle", req.Middle},
		{"birthday", req.Birthday},
	}
	for _, r := range required {
		if r.value == "" {
			return fail(c, "check medical data", &records.ValidationError{Field: r.field})
		}
	}

	rows, err := s.store.ListAll(c.Request().Context(), s.cfg.MedicalSheet)
	if err != nil {
		return fail(c, "check medical data", err)
	}

	exists := false
	for _, row := range rows {
		if strings.EqualFold(row.Cell(records.ColumnSurname), req.Surname) &&
			strings.EqualFold(row.Cell(records.ColumnFirstname), req.Firstname) &&
			strings.EqualFold(row.Cell(records.ColumnMiddle), req.Middle) &&
			row.Cell(records.ColumnBirthday) == req.Birthday {
			exists = true
			break
		}
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}

// searchMedicalData returns rows where any of columns A..D contains the
// search term, ignoring case.
func (s *Server) searchMedicalData(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Search == "" {
		return fail(c, "search medical data", &records.ValidationError{Field: "search"})
	}

	rows, err := s.store.ListAll(c.Request().Context(), s.cfg.MedicalSheet)
	if err != nil {
		return fail(c, "search medical data", err)
	}

	result := []records.Row{}
	for _, row := range rows {
		for col := records.ColumnSurname; col <= records.KeyColumn; col++ {
			if cell := row.Cell(col); cell != "" && containsFold(cell, req.Search) {
				result = append(result, row)
				break
			}
		}
	}
	return c.JSON(http.StatusOK, result)
}

func nonNil(rows []records.Row) []records.Row {
	if rows == nil {
		return []records.Row{}
	}
	return rows
}
