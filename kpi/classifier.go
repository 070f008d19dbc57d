package kpi

// bounds holds the phase-specific break points for one metric. Lower readings
// are better for every classified metric, so a single pair suffices:
// below green is Green, above red is Red, everything between is Yellow.
// A reading exactly on the green break point is Yellow, not Green; bands are
// conservative at boundaries.
type bounds struct {
	green float64
	red   float64
}

// thresholds is the fixed reference table, indexed by phase. Phases without
// a published row for a metric use the earliest phase that has one, which
// only matters once phase detection exists (all current rows are Phase1 and
// all classified metrics are unmeasured in the current data source).
var thresholds = map[Metric]map[Phase]bounds{
	MetricAlarmTriggers: {
		Phase1: {0.2, 0.5},
		Phase2: {0.2, 0.5},
		Phase3: {0.05, 0.1},
		Phase4: {0.05, 0.1},
	},
	MetricCOMBOSAngle: {
		Phase1: {1.0, 2.0},
		Phase2: {1.0, 2.0},
		Phase3: {0.5, 1.0},
		Phase4: {0.5, 1.0},
	},
	MetricMaxAngleSpike: {
		Phase1: {1.5, 2.5},
		Phase2: {1.5, 2.5},
		Phase3: {1.0, 1.5},
		Phase4: {1.0, 1.5},
	},
	MetricVRErrorRate: {
		Phase1: {3.0, 6.0},
		Phase2: {3.0, 6.0},
		Phase3: {0.5, 1.0},
		Phase4: {0.5, 1.0},
	},
}

// Classify bands a single reading for the given metric and phase.
// An unavailable reading is NotApplicable regardless of phase: imputing a
// band for missing data would misrepresent clinical risk in either direction.
func Classify(metric Metric, phase Phase, value Value) Band {
	if !value.Available() {
		return BandNotApplicable
	}
	b, ok := thresholds[metric][phase]
	if !ok {
		return BandNotApplicable
	}
	v := value.Float()
	switch {
	case v < b.green:
		return BandGreen
	case v <= b.red:
		return BandYellow
	default:
		return BandRed
	}
}

// ClassifyRow bands every stability metric of one weekly row, in reporting
// column order.
func ClassifyRow(row WeeklyRow) []ClassifiedMetric {
	classified := make([]ClassifiedMetric, 0, len(StabilityMetrics))
	for _, m := range StabilityMetrics {
		v := row.StabilityValue(m)
		classified = append(classified, ClassifiedMetric{
			Metric: m,
			Value:  v,
			Band:   Classify(m, row.Phase, v),
		})
	}
	return classified
}
