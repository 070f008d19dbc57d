package kpi_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motuslabs/rehab/kpi"
)

var _ = Describe("Normalize", func() {
	var raw kpi.RawSessionRecord

	BeforeEach(func() {
		raw = kpi.RawSessionRecord{
			Timestamp: "2025-03-10 08:30:00",
			PatientID: "p1",
			Flex:      [kpi.JointCount]string{"45", "50", "55", "60", "65"},
			Force:     [kpi.JointCount]string{"10.5", "11", "12.25", "9", "8.75"},
			Pain:      "3",
			Fatigue:   "4",
			Note:      " felt steady ",
		}
	})

	It("coerces every field of a well-formed record", func() {
		rec := kpi.Normalize(raw)

		Expect(rec.TimestampOK).To(BeTrue())
		Expect(rec.Timestamp).To(Equal(time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)))
		Expect(rec.PatientID).To(Equal("p1"))
		for i := 0; i < kpi.JointCount; i++ {
			Expect(rec.Flex[i].Available()).To(BeTrue())
			Expect(rec.Force[i].Available()).To(BeTrue())
		}
		Expect(rec.Pain.Float()).To(Equal(3.0))
		Expect(rec.Fatigue.Float()).To(Equal(4.0))
		Expect(rec.Note).To(Equal("felt steady"))
	})

	It("marks exactly the malformed fields unavailable", func() {
		raw.Force[1] = "not-a-number"
		raw.Force[3] = ""
		raw.Pain = "severe"

		rec := kpi.Normalize(raw)

		Expect(rec.Force[0].Available()).To(BeTrue())
		Expect(rec.Force[1].Available()).To(BeFalse())
		Expect(rec.Force[2].Available()).To(BeTrue())
		Expect(rec.Force[3].Available()).To(BeFalse())
		Expect(rec.Force[4].Available()).To(BeTrue())
		Expect(rec.Pain.Available()).To(BeFalse())
		Expect(rec.Fatigue.Available()).To(BeTrue())
	})

	It("treats the placeholder text as unavailable", func() {
		raw.Force[0] = "N/A"
		rec := kpi.Normalize(raw)
		Expect(rec.Force[0].Available()).To(BeFalse())
	})

	It("retains a record with an unparseable timestamp", func() {
		raw.Timestamp = "yesterday-ish"
		rec := kpi.Normalize(raw)
		Expect(rec.TimestampOK).To(BeFalse())
		Expect(rec.Pain.Available()).To(BeTrue())
	})

	It("accepts RFC3339 timestamps from older exports", func() {
		raw.Timestamp = "2025-03-10T08:30:00Z"
		rec := kpi.Normalize(raw)
		Expect(rec.TimestampOK).To(BeTrue())
	})

	It("never drops a record however malformed", func() {
		recs := kpi.NormalizeAll([]kpi.RawSessionRecord{{}, {Timestamp: "???"}, raw})
		Expect(recs).To(HaveLen(3))
	})
})
