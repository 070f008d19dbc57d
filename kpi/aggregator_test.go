package kpi_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motuslabs/rehab/kpi"
)

func datedRecord(ts time.Time, forces [kpi.JointCount]string) kpi.NormalizedRecord {
	return kpi.Normalize(kpi.RawSessionRecord{
		Timestamp: ts.Format("2006-01-02 15:04:05"),
		PatientID: "p1",
		Force:     forces,
		Pain:      "2",
		Fatigue:   "5",
	})
}

var _ = Describe("Aggregate", func() {
	var t0 time.Time

	BeforeEach(func() {
		t0 = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	})

	It("produces one row per record with unique increasing week labels", func() {
		records := []kpi.NormalizedRecord{
			datedRecord(t0.Add(48*time.Hour), [kpi.JointCount]string{"1", "1", "1", "1", "1"}),
			datedRecord(t0, [kpi.JointCount]string{"2", "2", "2", "2", "2"}),
			datedRecord(t0.Add(24*time.Hour), [kpi.JointCount]string{"3", "3", "3", "3", "3"}),
		}

		rows := kpi.Aggregate(records)

		Expect(rows).To(HaveLen(3))
		for i, row := range rows {
			Expect(row.Week).To(Equal(fmt.Sprintf("W%d", i+1)))
		}
		// Ordering follows ascending timestamp, not input order
		Expect(rows[0].AvgGripForce.Float()).To(Equal(2.0))
		Expect(rows[1].AvgGripForce.Float()).To(Equal(3.0))
		Expect(rows[2].AvgGripForce.Float()).To(Equal(1.0))
	})

	It("sorts records without a parseable timestamp last, in original order", func() {
		undatedA := kpi.Normalize(kpi.RawSessionRecord{Timestamp: "bad", Pain: "1"})
		undatedB := kpi.Normalize(kpi.RawSessionRecord{Timestamp: "", Pain: "2"})
		dated := datedRecord(t0, [kpi.JointCount]string{"1", "1", "1", "1", "1"})

		rows := kpi.Aggregate([]kpi.NormalizedRecord{undatedA, undatedB, dated})

		Expect(rows).To(HaveLen(3))
		Expect(rows[0].AvgGripForce.Available()).To(BeTrue())
		Expect(rows[1].PainAvg.Float()).To(Equal(1.0))
		Expect(rows[2].PainAvg.Float()).To(Equal(2.0))
	})

	It("tags every row Phase1 with full adherence", func() {
		rows := kpi.Aggregate([]kpi.NormalizedRecord{datedRecord(t0, [kpi.JointCount]string{"1", "1", "1", "1", "1"})})
		Expect(rows[0].Phase).To(Equal(kpi.Phase1))
		Expect(rows[0].AdherencePercent).To(Equal(100))
	})

	It("leaves the unmeasured stability metrics unavailable", func() {
		rows := kpi.Aggregate([]kpi.NormalizedRecord{datedRecord(t0, [kpi.JointCount]string{"1", "1", "1", "1", "1"})})
		Expect(rows[0].VRErrorRate.Available()).To(BeFalse())
		Expect(rows[0].COMBOSAngle.Available()).To(BeFalse())
		Expect(rows[0].AlarmTriggersPerMin.Available()).To(BeFalse())
		Expect(rows[0].MaxAngleSpike.Available()).To(BeFalse())
		Expect(rows[0].TimeToStability.Available()).To(BeFalse())
	})

	It("does not mutate its input", func() {
		records := []kpi.NormalizedRecord{
			datedRecord(t0.Add(time.Hour), [kpi.JointCount]string{"1", "1", "1", "1", "1"}),
			datedRecord(t0, [kpi.JointCount]string{"2", "2", "2", "2", "2"}),
		}
		first := records[0].Timestamp

		kpi.Aggregate(records)

		Expect(records[0].Timestamp).To(Equal(first))
	})

	Describe("average grip force", func() {
		It("averages only the available force readings, rounded to 2 decimals", func() {
			rec := kpi.Normalize(kpi.RawSessionRecord{
				Timestamp: t0.Format("2006-01-02 15:04:05"),
				Force:     [kpi.JointCount]string{"10", "junk", "11", "", "12.3334"},
			})
			rows := kpi.Aggregate([]kpi.NormalizedRecord{rec})
			Expect(rows[0].AvgGripForce.Available()).To(BeTrue())
			Expect(rows[0].AvgGripForce.Float()).To(BeNumerically("==", 11.11))
		})

		It("is unavailable iff all five readings are unavailable", func() {
			rec := kpi.Normalize(kpi.RawSessionRecord{
				Timestamp: t0.Format("2006-01-02 15:04:05"),
				Force:     [kpi.JointCount]string{"", "x", "N/A", "", ""},
			})
			rows := kpi.Aggregate([]kpi.NormalizedRecord{rec})
			Expect(rows[0].AvgGripForce.Available()).To(BeFalse())
		})
	})
})
