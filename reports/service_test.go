package reports_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/motuslabs/rehab/ai"
	aiTest "github.com/motuslabs/rehab/ai/test"
	"github.com/motuslabs/rehab/records"
	recordsTest "github.com/motuslabs/rehab/records/test"
	"github.com/motuslabs/rehab/reports"
	"github.com/motuslabs/rehab/store"
	"github.com/motuslabs/rehab/users"
)

var _ = Describe("Reports Service", func() {
	var service reports.Service
	var recordsService records.Service
	var repo *recordsTest.MockRepository
	var generator *aiTest.MockGenerator
	var ctrl *gomock.Controller
	var t0 time.Time

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		repo = recordsTest.NewMockRepository(ctrl)
		generator = aiTest.NewMockGenerator(ctrl)
		t0 = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

		var err error
		recordsService, err = records.NewService(repo, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
		service, err = reports.NewService(recordsService, generator, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	threeRecords := func() []records.Record {
		return []records.Record{
			recordsTest.RandomRecord("p1", t0),
			recordsTest.RandomRecord("p1", t0.Add(7*24*time.Hour)),
			recordsTest.RandomRecord("p1", t0.Add(14*24*time.Hour)),
		}
	}

	Describe("Weekly", func() {
		It("scopes a patient to their own records", func() {
			patient := "p1"
			repo.EXPECT().
				List(gomock.Any(), &records.Filter{PatientID: &patient}, store.Pagination{}).
				Return(threeRecords(), nil)

			weekly, err := service.Weekly(context.Background(), reports.RequestContext{
				CurrentUser: "p1",
				CurrentRole: users.RolePatient,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(weekly.Report.Rows).To(HaveLen(3))
			Expect(weekly.Report.Rows[0].Week).To(Equal("W1"))
			Expect(weekly.Report.Rows[2].Week).To(Equal("W3"))
			Expect(weekly.CSV).To(ContainSubstring("W1"))
		})

		It("searches across patients for clinical roles", func() {
			search := "p"
			repo.EXPECT().
				List(gomock.Any(), &records.Filter{Search: &search}, store.Pagination{}).
				Return(nil, nil)

			weekly, err := service.Weekly(context.Background(), reports.RequestContext{
				PatientFilter: "p",
				CurrentUser:   "dr",
				CurrentRole:   users.RoleDoctor,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(weekly.Report.Rows).To(BeEmpty())
		})

		It("propagates store failures", func() {
			repo.EXPECT().
				List(gomock.Any(), gomock.Nil(), store.Pagination{}).
				Return(nil, records.ErrStoreUnavailable)

			_, err := service.Weekly(context.Background(), reports.RequestContext{
				CurrentRole: users.RoleManager,
			})
			Expect(err).To(MatchError(records.ErrStoreUnavailable))
		})
	})

	Describe("Narrative", func() {
		It("embeds the report CSV into the prompt", func() {
			repo.EXPECT().
				List(gomock.Any(), gomock.Any(), store.Pagination{}).
				Return(threeRecords(), nil)
			generator.EXPECT().
				GenerateReport(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, prompt string) (string, error) {
					Expect(prompt).To(ContainSubstring("W1"))
					Expect(prompt).To(ContainSubstring("SECTION B."))
					return "## Weekly Summary", nil
				})

			narrative, err := service.Narrative(context.Background(), reports.RequestContext{
				CurrentRole: users.RoleDoctor,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(narrative.Narrative).To(Equal("## Weekly Summary"))
		})

		It("returns the full tabular report even when the generator fails", func() {
			repo.EXPECT().
				List(gomock.Any(), gomock.Any(), store.Pagination{}).
				Return(threeRecords(), nil)
			generator.EXPECT().
				GenerateReport(gomock.Any(), gomock.Any()).
				Return("", ai.ErrRequestFailed)

			narrative, err := service.Narrative(context.Background(), reports.RequestContext{
				CurrentRole: users.RoleDoctor,
			})
			Expect(err).To(MatchError(ai.ErrRequestFailed))
			Expect(narrative).ToNot(BeNil())
			Expect(narrative.Weekly.Report.Rows).To(HaveLen(3))
			Expect(narrative.Weekly.CSV).ToNot(BeEmpty())
			Expect(narrative.Narrative).To(BeEmpty())
		})
	})

	Describe("Answer", func() {
		It("grounds the question in the report CSV", func() {
			repo.EXPECT().
				List(gomock.Any(), gomock.Any(), store.Pagination{}).
				Return(threeRecords(), nil)
			generator.EXPECT().
				GenerateReport(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, prompt string) (string, error) {
					Expect(prompt).To(ContainSubstring("Is pain trending down?"))
					Expect(prompt).To(ContainSubstring("W1"))
					return "Pain is stable.", nil
				})

			answer, err := service.Answer(context.Background(), reports.RequestContext{
				CurrentRole: users.RoleDoctor,
			}, "Is pain trending down?")
			Expect(err).ToNot(HaveOccurred())
			Expect(answer.Narrative).To(Equal("Pain is stable."))
		})
	})
})
