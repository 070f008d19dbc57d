package export_test

import (
	"encoding/csv"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/motuslabs/rehab/assignments"
	"github.com/motuslabs/rehab/export"
	"github.com/motuslabs/rehab/kpi"
	"github.com/motuslabs/rehab/records"
	recordsTest "github.com/motuslabs/rehab/records/test"
)

func sampleReport() kpi.Report {
	t0 := time.Date(2025, 5, 5, 8, 0, 0, 0, time.UTC)
	raw := []kpi.RawSessionRecord{
		{
			Timestamp: t0.Format("2006-01-02 15:04:05"),
			PatientID: "p1",
			Force:     [kpi.JointCount]string{"10", "11", "12", "13", "14"},
			Pain:      "2", Fatigue: "3",
		},
		{
			Timestamp: t0.Add(24 * time.Hour).Format("2006-01-02 15:04:05"),
			PatientID: "p1",
			Pain:      "4", Fatigue: "6",
		},
	}
	return kpi.Assemble(kpi.Aggregate(kpi.NormalizeAll(raw)))
}

var _ = Describe("ReportCSV", func() {
	It("round-trips the assembled report", func() {
		report := sampleReport()

		out, err := export.ReportCSV(report)
		Expect(err).ToNot(HaveOccurred())

		parsed, err := csv.NewReader(strings.NewReader(out)).ReadAll()
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed).To(HaveLen(1 + len(report.Rows)))
		Expect(parsed[0]).To(Equal(kpi.ReportColumns))
		for i, row := range report.Rows {
			Expect(parsed[i+1]).To(Equal(row.Cells()))
		}
	})

	It("renders unavailable metrics with the placeholder", func() {
		out, err := export.ReportCSV(sampleReport())
		Expect(err).ToNot(HaveOccurred())

		lines := strings.Split(strings.TrimSpace(out), "\n")
		Expect(lines[2]).To(ContainSubstring(kpi.UnavailablePlaceholder))
	})
})

var _ = Describe("RecordsCSV", func() {
	It("keeps the legacy sheet column order", func() {
		record := recordsTest.RandomRecord("p1", time.Date(2025, 5, 5, 8, 0, 0, 0, time.UTC))

		out, err := export.RecordsCSV([]records.Record{record})
		Expect(err).ToNot(HaveOccurred())

		parsed, err := csv.NewReader(strings.NewReader(out)).ReadAll()
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed[0]).To(Equal(export.RecordColumns))
		Expect(parsed[1][0]).To(Equal(record.Timestamp))
		Expect(parsed[1][1]).To(Equal("p1"))
		Expect(parsed[1][13]).To(Equal(record.Fatigue))
	})
})

var _ = Describe("AssignmentsCSV", func() {
	It("exports one row per assignment", func() {
		list := []assignments.Assignment{
			{PatientID: "p1", DoctorID: "d1", UpdatedTime: time.Date(2025, 5, 5, 8, 0, 0, 0, time.UTC)},
			{PatientID: "p2", DoctorID: "d1", UpdatedTime: time.Date(2025, 5, 6, 8, 0, 0, 0, time.UTC)},
		}

		out, err := export.AssignmentsCSV(list)
		Expect(err).ToNot(HaveOccurred())

		parsed, err := csv.NewReader(strings.NewReader(out)).ReadAll()
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed).To(HaveLen(3))
		Expect(parsed[1]).To(Equal([]string{"p1", "d1", "2025-05-05 08:00:00"}))
	})
})

var _ = Describe("ReportXLSX", func() {
	It("produces a non-empty workbook", func() {
		out, err := export.ReportXLSX(sampleReport())
		Expect(err).ToNot(HaveOccurred())
		Expect(len(out)).To(BeNumerically(">", 0))
	})
})
