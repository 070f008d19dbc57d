package kpi

import (
	"math"
	"sort"
	"strconv"
)

// Aggregate orders one patient's normalized records chronologically and
// assigns each a weekly KPI row. Week labels are the 1-based chronological
// rank within the input set, not calendar weeks: two sessions in the same
// real week still get distinct labels. Records without a parseable timestamp
// sort after all dated ones, keeping their original relative order.
//
// The full input is materialized before labeling because week numbering is
// global over the set. Aggregate is a pure function of its input.
func Aggregate(records []NormalizedRecord) []WeeklyRow {
	ordered := make([]NormalizedRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.TimestampOK && b.TimestampOK {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.TimestampOK && !b.TimestampOK
	})

	rows := make([]WeeklyRow, len(ordered))
	for i, rec := range ordered {
		rows[i] = WeeklyRow{
			Week: "W" + strconv.Itoa(i+1),
			// No phase metadata is captured at submission time yet, so every
			// row is tagged Phase1. The classifier already handles all four
			// phases for when that changes.
			Phase:            Phase1,
			AdherencePercent: 100,

			AvgGripForce:        avgGripForce(rec.Force),
			VRErrorRate:         Unavailable(),
			COMBOSAngle:         Unavailable(),
			AlarmTriggersPerMin: Unavailable(),
			MaxAngleSpike:       Unavailable(),
			TimeToStability:     Unavailable(),

			FatigueAvg: rec.Fatigue,
			PainAvg:    rec.Pain,
		}
	}
	return rows
}

// avgGripForce is the mean of the available per-joint force readings, rounded
// to two decimals. If all five are unavailable the result is unavailable,
// never zero: zero would imply a measured absence of force.
func avgGripForce(forces [JointCount]Value) Value {
	var sum float64
	var n int
	for _, f := range forces {
		if f.Available() {
			sum += f.Float()
			n++
		}
	}
	if n == 0 {
		return Unavailable()
	}
	return NewValue(math.Round(sum/float64(n)*100) / 100)
}
