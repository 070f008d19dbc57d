package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/motuslabs/rehab/audit"
	errs "github.com/motuslabs/rehab/errors"
	"github.com/motuslabs/rehab/export"
	"github.com/motuslabs/rehab/kpi"
	"github.com/motuslabs/rehab/records"
	"github.com/motuslabs/rehab/store"
	"github.com/motuslabs/rehab/users"
)

// SubmitRecordRequest mirrors the data-entry form. Values arrive as strings
// and are stored as submitted; coercion happens at reporting time so a bad
// cell can never block a submission.
type SubmitRecordRequest struct {
	Flex    [kpi.JointCount]string `json:"flex"`
	Force   [kpi.JointCount]string `json:"force"`
	Pain    string                 `json:"pain"`
	Fatigue string                 `json:"fatigue"`
	Note    string                 `json:"note"`
}

// (POST /records)
func (h *Handler) SubmitRecord(ec echo.Context) error {
	a := requestAuth(ec)

	req := &SubmitRecordRequest{}
	if err := ec.Bind(req); err != nil {
		return errs.BadRequest
	}

	record := records.Record{}
	record.Timestamp = time.Now().Format("2006-01-02 15:04:05")
	record.PatientID = a.Username
	record.Flex = req.Flex
	record.Force = req.Force
	record.Pain = req.Pain
	record.Fatigue = req.Fatigue
	record.Note = req.Note

	ctx := ec.Request().Context()
	created, err := h.records.Append(ctx, record)
	if err != nil {
		return asHTTPError(err)
	}

	h.audit.Record(ctx, audit.Entry{
		Actor:   a.Username,
		Role:    a.Role,
		Action:  audit.ActionRecordAppended,
		Subject: a.Username,
	})

	return ec.JSON(http.StatusCreated, created)
}

// (GET /records?search=&limit=&offset=)
// Patients are pinned to their own records; clinical roles may search.
// Without a limit the full listing is returned, which the CSV export needs.
func (h *Handler) ListRecords(ec echo.Context) error {
	a := requestAuth(ec)

	var filter *records.Filter
	if a.Role == users.RolePatient {
		patient := a.Username
		filter = &records.Filter{PatientID: &patient}
	} else if search := ec.QueryParam("search"); search != "" {
		filter = &records.Filter{Search: &search}
	}

	page, err := pagination(ec)
	if err != nil {
		return errs.BadRequest
	}

	list, err := h.records.List(ec.Request().Context(), filter, page)
	if err != nil {
		return asHTTPError(err)
	}

	if ec.QueryParam("format") == "csv" {
		out, err := export.RecordsCSV(list)
		if err != nil {
			return err
		}
		return ec.Blob(http.StatusOK, "text/csv", []byte(out))
	}

	return ec.JSON(http.StatusOK, list)
}

func pagination(ec echo.Context) (store.Pagination, error) {
	page := store.Pagination{}
	if limit := ec.QueryParam("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return page, echo.ErrBadRequest
		}
		page = store.DefaultPagination().WithLimit(n)
	}
	if offset := ec.QueryParam("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return page, echo.ErrBadRequest
		}
		page.Offset = n
	}
	return page, nil
}

type StatsResponse struct {
	PatientCount    int     `json:"patientCount"`
	RecordCount     int     `json:"recordCount"`
	AvgFlexDegrees  *string `json:"avgFlexDegrees"`
	LatestTimestamp *string `json:"latestTimestamp"`
}

// (GET /dashboard/stats)
func (h *Handler) DashboardStats(ec echo.Context) error {
	stats, err := h.records.Stats(ec.Request().Context())
	if err != nil {
		return asHTTPError(err)
	}

	resp := StatsResponse{
		PatientCount: stats.PatientCount,
		RecordCount:  stats.RecordCount,
	}
	if stats.AvgFlexDegrees.Available() {
		avg := stats.AvgFlexDegrees.String()
		resp.AvgFlexDegrees = &avg
	}
	if stats.LatestTimestamp != nil {
		latest := stats.LatestTimestamp.Format("2006-01-02 15:04:05")
		resp.LatestTimestamp = &latest
	}

	return ec.JSON(http.StatusOK, resp)
}
