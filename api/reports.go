package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motuslabs/rehab/audit"
	errs "github.com/motuslabs/rehab/errors"
	"github.com/motuslabs/rehab/export"
	"github.com/motuslabs/rehab/kpi"
	"github.com/motuslabs/rehab/reports"
)

type WeeklyReportResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type NarrativeResponse struct {
	Report    WeeklyReportResponse `json:"report"`
	Narrative string               `json:"narrative"`
	// Error carries the generator failure when the report itself succeeded.
	Error string `json:"error,omitempty"`
}

type QuestionRequest struct {
	Question string `json:"question"`
}

func (h *Handler) requestContext(ec echo.Context) reports.RequestContext {
	a := requestAuth(ec)
	return reports.RequestContext{
		PatientFilter: ec.QueryParam("search"),
		CurrentUser:   a.Username,
		CurrentRole:   a.Role,
	}
}

// (GET /reports/weekly?search=&format=)
func (h *Handler) WeeklyReport(ec echo.Context) error {
	ctx := ec.Request().Context()
	weekly, err := h.reports.Weekly(ctx, h.requestContext(ec))
	if err != nil {
		return asHTTPError(err)
	}

	a := requestAuth(ec)
	h.audit.Record(ctx, audit.Entry{
		Actor:   a.Username,
		Role:    a.Role,
		Action:  audit.ActionReportViewed,
		Subject: ec.QueryParam("search"),
	})

	switch ec.QueryParam("format") {
	case "csv":
		return ec.Blob(http.StatusOK, "text/csv", []byte(weekly.CSV))
	case "xlsx":
		out, err := export.ReportXLSX(weekly.Report)
		if err != nil {
			return err
		}
		return ec.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
	}

	return ec.JSON(http.StatusOK, weeklyResponse(weekly))
}

// (POST /reports/narrative?search=)
// Generator failure never loses the tabular report: when the pipeline
// succeeded and only the generator failed, the 502 body still carries the
// assembled report.
func (h *Handler) NarrativeReport(ec echo.Context) error {
	ctx := ec.Request().Context()
	narrative, err := h.reports.Narrative(ctx, h.requestContext(ec))
	if err != nil {
		return narrativeFailure(ec, narrative, err)
	}

	a := requestAuth(ec)
	h.audit.Record(ctx, audit.Entry{
		Actor:  a.Username,
		Role:   a.Role,
		Action: audit.ActionNarrativeRun,
	})

	return ec.JSON(http.StatusOK, NarrativeResponse{
		Report:    weeklyResponse(&narrative.Weekly),
		Narrative: narrative.Narrative,
	})
}

// (POST /reports/question?search=)
func (h *Handler) AnswerQuestion(ec echo.Context) error {
	req := &QuestionRequest{}
	if err := ec.Bind(req); err != nil || req.Question == "" {
		return errs.BadRequest
	}

	ctx := ec.Request().Context()
	answer, err := h.reports.Answer(ctx, h.requestContext(ec), req.Question)
	if err != nil {
		return narrativeFailure(ec, answer, err)
	}

	return ec.JSON(http.StatusOK, NarrativeResponse{
		Report:    weeklyResponse(&answer.Weekly),
		Narrative: answer.Narrative,
	})
}

func narrativeFailure(ec echo.Context, narrative *reports.NarrativeReport, err error) error {
	if narrative == nil {
		return asHTTPError(err)
	}

	mapped := errs.InternalServerError
	if httpErr, ok := asHTTPError(err).(errs.HttpError); ok {
		mapped = httpErr
	}
	return ec.JSON(mapped.Code, NarrativeResponse{
		Report: weeklyResponse(&narrative.Weekly),
		Error:  mapped.Error(),
	})
}

func weeklyResponse(weekly *reports.WeeklyReport) WeeklyReportResponse {
	resp := WeeklyReportResponse{
		Columns: kpi.ReportColumns,
		Rows:    make([][]string, 0, len(weekly.Report.Rows)),
	}
	for _, row := range weekly.Report.Rows {
		resp.Rows = append(resp.Rows, row.Cells())
	}
	return resp
}
