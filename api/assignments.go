package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motuslabs/rehab/audit"
	errs "github.com/motuslabs/rehab/errors"
	"github.com/motuslabs/rehab/export"
)

type SetAssignmentRequest struct {
	DoctorID string `json:"doctorId"`
}

// (GET /assignments?format=)
func (h *Handler) ListAssignments(ec echo.Context) error {
	list, err := h.assignments.List(ec.Request().Context())
	if err != nil {
		return asHTTPError(err)
	}

	if ec.QueryParam("format") == "csv" {
		out, err := export.AssignmentsCSV(list)
		if err != nil {
			return err
		}
		return ec.Blob(http.StatusOK, "text/csv", []byte(out))
	}

	return ec.JSON(http.StatusOK, list)
}

// (GET /assignments/:patientId)
func (h *Handler) GetAssignment(ec echo.Context, patientID string) error {
	assignment, err := h.assignments.Get(ec.Request().Context(), patientID)
	if err != nil {
		return asHTTPError(err)
	}
	return ec.JSON(http.StatusOK, assignment)
}

// (PUT /assignments/:patientId)
// Re-assigning overwrites; the most recent assignment wins.
func (h *Handler) SetAssignment(ec echo.Context, patientID string) error {
	req := &SetAssignmentRequest{}
	if err := ec.Bind(req); err != nil {
		return errs.BadRequest
	}

	ctx := ec.Request().Context()
	assignment, err := h.assignments.Set(ctx, patientID, req.DoctorID)
	if err != nil {
		return asHTTPError(err)
	}

	a := requestAuth(ec)
	h.audit.Record(ctx, audit.Entry{
		Actor:   a.Username,
		Role:    a.Role,
		Action:  audit.ActionAssignmentSet,
		Subject: assignment.PatientID,
	})

	return ec.JSON(http.StatusOK, assignment)
}

// (DELETE /assignments/:patientId)
func (h *Handler) ClearAssignment(ec echo.Context, patientID string) error {
	ctx := ec.Request().Context()
	if err := h.assignments.Clear(ctx, patientID); err != nil {
		return asHTTPError(err)
	}

	a := requestAuth(ec)
	h.audit.Record(ctx, audit.Entry{
		Actor:   a.Username,
		Role:    a.Role,
		Action:  audit.ActionAssignmentClear,
		Subject: patientID,
	})

	return ec.NoContent(http.StatusNoContent)
}

// (GET /audit?format=)
func (h *Handler) AuditLog(ec echo.Context) error {
	list, err := h.audit.List(ec.Request().Context())
	if err != nil {
		return asHTTPError(err)
	}

	if ec.QueryParam("format") == "csv" {
		out, err := export.AuditCSV(list)
		if err != nil {
			return err
		}
		return ec.Blob(http.StatusOK, "text/csv", []byte(out))
	}

	return ec.JSON(http.StatusOK, list)
}
