// Package export serializes dashboard data to delimited and spreadsheet
// formats. Column orders are fixed; the CSV forms round-trip.
package export

import (
	"bytes"
	"encoding/csv"

	"github.com/tealeg/xlsx/v3"

	"github.com/motuslabs/rehab/assignments"
	"github.com/motuslabs/rehab/audit"
	"github.com/motuslabs/rehab/kpi"
	"github.com/motuslabs/rehab/records"
)

// RecordColumns is the legacy sheet header for raw session records.
var RecordColumns = []string{
	"Timestamp", "Username",
	"IN", "MT", "RI", "PT", "TH",
	"IN_Force", "MT_Force", "RI_Force", "PT_Force", "TH_Force",
	"Pain_Scale", "Fatigue_Scale",
}

var AssignmentColumns = []string{"PatientID", "DoctorID", "UpdatedTime"}

var AuditColumns = []string{"Id", "Time", "Actor", "Role", "Action", "Subject"}

// ReportCSV renders the assembled weekly KPI report. This exact byte stream
// is also what gets embedded into the narrative prompt.
func ReportCSV(report kpi.Report) (string, error) {
	rows := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, row.Cells())
	}
	return writeCSV(kpi.ReportColumns, rows)
}

func RecordsCSV(list []records.Record) (string, error) {
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		row := []string{r.Timestamp, r.PatientID}
		row = append(row, r.Flex[:]...)
		row = append(row, r.Force[:]...)
		row = append(row, r.Pain, r.Fatigue)
		rows = append(rows, row)
	}
	return writeCSV(RecordColumns, rows)
}

func AssignmentsCSV(list []assignments.Assignment) (string, error) {
	rows := make([][]string, 0, len(list))
	for _, a := range list {
		rows = append(rows, []string{a.PatientID, a.DoctorID, a.UpdatedTime.Format("2006-01-02 15:04:05")})
	}
	return writeCSV(AssignmentColumns, rows)
}

func AuditCSV(list []audit.Entry) (string, error) {
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{
			e.Id,
			e.Time.Format("2006-01-02 15:04:05"),
			e.Actor,
			string(e.Role),
			string(e.Action),
			e.Subject,
		})
	}
	return writeCSV(AuditColumns, rows)
}

// ReportXLSX renders the same report as a spreadsheet for download.
func ReportXLSX(report kpi.Report) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Weekly KPI")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, col := range kpi.ReportColumns {
		header.AddCell().Value = col
	}
	for _, row := range report.Rows {
		xr := sheet.AddRow()
		for _, cell := range row.Cells() {
			xr.AddCell().Value = cell
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSV(header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
