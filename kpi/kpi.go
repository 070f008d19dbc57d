// Package kpi turns raw rehabilitation session records into the weekly KPI
// schema consumed by the dashboard and the narrative generator. All functions
// in this package are pure; persistence and transport live elsewhere.
package kpi

import (
	"strconv"
	"time"
)

// UnavailablePlaceholder is the textual form of a missing metric. It matches
// the placeholder the reporting schema has always used, and is deliberately
// distinct from zero.
const UnavailablePlaceholder = "N/A"

// Value is a metric reading that may be missing. The zero value is unavailable.
type Value struct {
	value     float64
	available bool
}

func NewValue(v float64) Value {
	return Value{value: v, available: true}
}

func Unavailable() Value {
	return Value{}
}

func (v Value) Available() bool {
	return v.available
}

// Float returns the reading. Callers must check Available first; an
// unavailable value reports 0, which is never a valid substitute.
func (v Value) Float() float64 {
	return v.value
}

func (v Value) String() string {
	if !v.available {
		return UnavailablePlaceholder
	}
	return strconv.FormatFloat(v.value, 'f', -1, 64)
}

// Phase is the rehabilitation stage. Thresholds are phase-dependent.
type Phase int

const (
	Phase1 Phase = iota + 1
	Phase2
	Phase3
	Phase4
)

func (p Phase) String() string {
	return "P" + strconv.Itoa(int(p))
}

// Band classifies a metric reading against its phase thresholds.
type Band string

const (
	BandGreen  Band = "Green"
	BandYellow Band = "Yellow"
	BandRed    Band = "Red"

	// BandNotApplicable is used whenever the reading itself is unavailable.
	// Missing data is never imputed into a risk band.
	BandNotApplicable Band = "N/A"
)

// Metric identifies one of the stability metrics with threshold rules.
type Metric string

const (
	MetricVRErrorRate   Metric = "Hand: VR Error Rate (%)"
	MetricCOMBOSAngle   Metric = "Chest: Avg COM-BOS Angle (°)"
	MetricAlarmTriggers Metric = "Balance: Alarm Triggers/Min"
	MetricMaxAngleSpike Metric = "Locomotion: Max Angle Spike (°)"
)

// StabilityMetrics lists the classified metrics in reporting column order.
var StabilityMetrics = []Metric{
	MetricVRErrorRate,
	MetricCOMBOSAngle,
	MetricAlarmTriggers,
	MetricMaxAngleSpike,
}

// JointCount is the number of instrumented joints per hand session.
// Readings are ordered IN, MT, RI, PT, TH.
const JointCount = 5

var JointNames = [JointCount]string{"IN", "MT", "RI", "PT", "TH"}

// RawSessionRecord is one patient submission as stored, before any coercion.
// All measurement fields are kept in their stored textual form; legacy
// submissions carry arbitrary junk in individual cells and must still produce
// a row.
type RawSessionRecord struct {
	Timestamp string
	PatientID string
	Flex      [JointCount]string
	Force     [JointCount]string
	Pain      string
	Fatigue   string
	Note      string
}

// NormalizedRecord is the canonical form of a RawSessionRecord. Exactly one
// normalized record is produced per raw record; fields that failed coercion
// are unavailable rather than the record being rejected.
type NormalizedRecord struct {
	Timestamp   time.Time
	TimestampOK bool
	PatientID   string
	Flex        [JointCount]Value
	Force       [JointCount]Value
	Pain        Value
	Fatigue     Value
	Note        string
}

// WeeklyRow is one row of the weekly KPI schema for a single patient.
type WeeklyRow struct {
	Week             string
	Phase            Phase
	AdherencePercent int

	AvgGripForce        Value
	VRErrorRate         Value
	COMBOSAngle         Value
	AlarmTriggersPerMin Value
	MaxAngleSpike       Value
	TimeToStability     Value

	FatigueAvg Value
	PainAvg    Value
}

// StabilityValue returns the reading backing the given stability metric.
func (r WeeklyRow) StabilityValue(m Metric) Value {
	switch m {
	case MetricVRErrorRate:
		return r.VRErrorRate
	case MetricCOMBOSAngle:
		return r.COMBOSAngle
	case MetricAlarmTriggers:
		return r.AlarmTriggersPerMin
	case MetricMaxAngleSpike:
		return r.MaxAngleSpike
	}
	return Unavailable()
}

// ClassifiedMetric is the ephemeral (metric, value, band) triple computed per
// row on each report request. It is never persisted.
type ClassifiedMetric struct {
	Metric Metric
	Value  Value
	Band   Band
}
