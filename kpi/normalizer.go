package kpi

import (
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are the accepted submission timestamp formats. The first
// is the format the data-entry page writes; the rest cover records imported
// from older exports.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
	"01/02/2006 15:04:05",
}

// Normalize coerces a raw record onto the canonical schema. It never fails:
// each field that cannot be parsed becomes unavailable on its own, and a
// record with an unparseable timestamp is retained (it sorts after all dated
// records, see Aggregate). Downstream reporting relies on incomplete data
// flowing through rather than being rejected.
func Normalize(raw RawSessionRecord) NormalizedRecord {
	rec := NormalizedRecord{
		PatientID: strings.TrimSpace(raw.PatientID),
		Pain:      parseValue(raw.Pain),
		Fatigue:   parseValue(raw.Fatigue),
		Note:      strings.TrimSpace(raw.Note),
	}
	for i := 0; i < JointCount; i++ {
		rec.Flex[i] = parseValue(raw.Flex[i])
		rec.Force[i] = parseValue(raw.Force[i])
	}
	if ts, ok := parseTimestamp(raw.Timestamp); ok {
		rec.Timestamp = ts
		rec.TimestampOK = true
	}
	return rec
}

// NormalizeAll maps a batch of raw records 1:1 onto normalized records.
func NormalizeAll(raw []RawSessionRecord) []NormalizedRecord {
	normalized := make([]NormalizedRecord, len(raw))
	for i, r := range raw {
		normalized[i] = Normalize(r)
	}
	return normalized
}

func parseValue(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, UnavailablePlaceholder) {
		return Unavailable()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Unavailable()
	}
	return NewValue(v)
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
