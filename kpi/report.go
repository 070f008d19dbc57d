package kpi

import (
	"strconv"
)

// ReportColumns is the fixed 11-column reporting schema, in order. Export
// formats and the narrative prompt both depend on this exact order.
var ReportColumns = []string{
	"Week",
	"Phase",
	"Adherence (%)",
	"Hand: Avg Grip Force",
	"Hand: VR Error Rate (%)",
	"Chest: Avg COM-BOS Angle (°)",
	"Balance: Alarm Triggers/Min",
	"Locomotion: Max Angle Spike (°)",
	"P4: Time to Stability (sec)",
	"Fatigue Avg (1–10)",
	"Pain Avg (0–10)",
}

// ReportRow is one assembled row: the weekly KPIs plus the ephemeral band
// classifications for its stability metrics.
type ReportRow struct {
	WeeklyRow
	Stability []ClassifiedMetric
}

// Report is the assembled weekly KPI report for one patient filter.
type Report struct {
	Rows []ReportRow
}

// Assemble merges aggregated rows with their classifications into the fixed
// reporting schema.
func Assemble(rows []WeeklyRow) Report {
	report := Report{Rows: make([]ReportRow, len(rows))}
	for i, row := range rows {
		report.Rows[i] = ReportRow{
			WeeklyRow: row,
			Stability: ClassifyRow(row),
		}
	}
	return report
}

// Cells renders the row in ReportColumns order. Stability cells carry their
// band tag when a reading exists; unavailable metrics render as the
// placeholder alone.
func (r ReportRow) Cells() []string {
	cells := []string{
		r.Week,
		r.Phase.String(),
		strconv.Itoa(r.AdherencePercent),
		r.AvgGripForce.String(),
	}
	for _, cm := range r.Stability {
		cells = append(cells, stabilityCell(cm))
	}
	cells = append(cells,
		r.TimeToStability.String(),
		r.FatigueAvg.String(),
		r.PainAvg.String(),
	)
	return cells
}

func stabilityCell(cm ClassifiedMetric) string {
	if !cm.Value.Available() {
		return UnavailablePlaceholder
	}
	return cm.Value.String() + " (" + string(cm.Band) + ")"
}
