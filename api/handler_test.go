package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"github.com/motuslabs/rehab/ai"
	"github.com/motuslabs/rehab/api"
	auditTest "github.com/motuslabs/rehab/audit/test"
	"github.com/motuslabs/rehab/auth"
	"github.com/motuslabs/rehab/config"
	errs "github.com/motuslabs/rehab/errors"
	"github.com/motuslabs/rehab/kpi"
	"github.com/motuslabs/rehab/records"
	recordsTest "github.com/motuslabs/rehab/records/test"
	"github.com/motuslabs/rehab/reports"
	reportsTest "github.com/motuslabs/rehab/reports/test"
	"github.com/motuslabs/rehab/store"
	"github.com/motuslabs/rehab/users"
	usersTest "github.com/motuslabs/rehab/users/test"
)

var _ = Describe("Handler", func() {
	var ctrl *gomock.Controller
	var usersService *usersTest.MockService
	var recordsService *recordsTest.MockService
	var reportsService *reportsTest.MockService
	var auditService *auditTest.MockService
	var handler *api.Handler

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		usersService = usersTest.NewMockService(ctrl)
		recordsService = recordsTest.NewMockService(ctrl)
		reportsService = reportsTest.NewMockService(ctrl)
		auditService = auditTest.NewMockService(ctrl)

		authenticator, err := auth.NewAuthenticator(&auth.Config{
			SigningKey: "test-signing-key",
			TokenTTL:   time.Hour,
		})
		Expect(err).ToNot(HaveOccurred())

		handler = api.NewHandler(api.Params{
			Audit:         auditService,
			Authenticator: authenticator,
			Cfg:           &config.Config{AllowSignup: true},
			Records:       recordsService,
			Reports:       reportsService,
			Users:         usersService,
		})
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	jsonContext := func(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath(path)
		return c, rec
	}

	asUser := func(c echo.Context, username string, role users.Role) {
		auth.SetAuthData(c, &auth.Auth{
			SubjectId: primitive.NewObjectID().Hex(),
			Username:  username,
			Role:      role,
		})
	}

	Describe("Login", func() {
		It("returns a session token for valid credentials", func() {
			id := primitive.NewObjectID()
			usersService.EXPECT().
				Authenticate(gomock.Any(), "alice", "s3cret").
				Return(&users.User{Id: &id, Username: "alice", Role: users.RoleDoctor}, nil)
			auditService.EXPECT().Record(gomock.Any(), gomock.Any())

			c, rec := jsonContext(http.MethodPost, "/auth/login", `{"username":"alice","password":"s3cret"}`)
			Expect(handler.Login(c)).To(Succeed())
			Expect(rec.Code).To(Equal(http.StatusOK))

			resp := api.LoginResponse{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Token).ToNot(BeEmpty())
			Expect(resp.Username).To(Equal("alice"))
			Expect(resp.Role).To(Equal(users.RoleDoctor))
		})

		It("rejects invalid credentials with 401", func() {
			usersService.EXPECT().
				Authenticate(gomock.Any(), "alice", "wrong").
				Return(nil, users.ErrInvalidCredentials)

			c, _ := jsonContext(http.MethodPost, "/auth/login", `{"username":"alice","password":"wrong"}`)
			err := handler.Login(c)
			Expect(err).To(HaveOccurred())

			httpErr, ok := err.(errs.HttpError)
			Expect(ok).To(BeTrue())
			Expect(httpErr.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("Register", func() {
		It("always creates patient accounts", func() {
			usersService.EXPECT().
				Register(gomock.Any(), users.Registration{
					Username:        "bob",
					Password:        "pw",
					ConfirmPassword: "pw",
					Role:            users.RolePatient,
				}).
				Return(&users.User{Username: "bob", Role: users.RolePatient}, nil)
			auditService.EXPECT().Record(gomock.Any(), gomock.Any())

			c, rec := jsonContext(http.MethodPost, "/auth/register", `{"username":"bob","password":"pw","confirmPassword":"pw"}`)
			Expect(handler.Register(c)).To(Succeed())
			Expect(rec.Code).To(Equal(http.StatusCreated))
		})

		It("reports duplicate usernames with 409", func() {
			usersService.EXPECT().
				Register(gomock.Any(), gomock.Any()).
				Return(nil, users.ErrDuplicate)

			c, _ := jsonContext(http.MethodPost, "/auth/register", `{"username":"bob","password":"pw","confirmPassword":"pw"}`)
			err := handler.Register(c)

			httpErr, ok := err.(errs.HttpError)
			Expect(ok).To(BeTrue())
			Expect(httpErr.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("SubmitRecord", func() {
		It("stamps the record with the authenticated patient id", func() {
			recordsService.EXPECT().
				Append(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, record records.Record) (*records.Record, error) {
					Expect(record.PatientID).To(Equal("p1"))
					Expect(record.Timestamp).ToNot(BeEmpty())
					return &record, nil
				})
			auditService.EXPECT().Record(gomock.Any(), gomock.Any())

			c, rec := jsonContext(http.MethodPost, "/records", `{"flex":["10","11","12","13","14"],"pain":"3","fatigue":"5"}`)
			asUser(c, "p1", users.RolePatient)

			Expect(handler.SubmitRecord(c)).To(Succeed())
			Expect(rec.Code).To(Equal(http.StatusCreated))
		})

		It("surfaces store failures as 503", func() {
			recordsService.EXPECT().
				Append(gomock.Any(), gomock.Any()).
				Return(nil, records.ErrStoreUnavailable)

			c, _ := jsonContext(http.MethodPost, "/records", `{"pain":"3"}`)
			asUser(c, "p1", users.RolePatient)

			err := handler.SubmitRecord(c)
			httpErr, ok := err.(errs.HttpError)
			Expect(ok).To(BeTrue())
			Expect(httpErr.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Describe("ListRecords", func() {
		It("pins patients to their own records", func() {
			patient := "p1"
			recordsService.EXPECT().
				List(gomock.Any(), &records.Filter{PatientID: &patient}, store.Pagination{}).
				Return([]records.Record{}, nil)

			c, rec := jsonContext(http.MethodGet, "/records", "")
			asUser(c, "p1", users.RolePatient)

			Expect(handler.ListRecords(c)).To(Succeed())
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("lets clinical roles search across patients", func() {
			search := "p"
			recordsService.EXPECT().
				List(gomock.Any(), &records.Filter{Search: &search}, store.Pagination{}).
				Return([]records.Record{}, nil)

			c, rec := jsonContext(http.MethodGet, "/records?search=p", "")
			asUser(c, "dr", users.RoleDoctor)

			Expect(handler.ListRecords(c)).To(Succeed())
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("maps limit and offset params onto pagination", func() {
			recordsService.EXPECT().
				List(gomock.Any(), gomock.Nil(), store.Pagination{Offset: 10, Limit: 25}).
				Return([]records.Record{}, nil)

			c, rec := jsonContext(http.MethodGet, "/records?limit=25&offset=10", "")
			asUser(c, "dr", users.RoleDoctor)

			Expect(handler.ListRecords(c)).To(Succeed())
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("rejects a malformed limit", func() {
			c, _ := jsonContext(http.MethodGet, "/records?limit=lots", "")
			asUser(c, "dr", users.RoleDoctor)

			err := handler.ListRecords(c)
			httpErr, ok := err.(errs.HttpError)
			Expect(ok).To(BeTrue())
			Expect(httpErr.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("WeeklyReport", func() {
		weekly := func() *reports.WeeklyReport {
			rows := kpi.Aggregate(kpi.NormalizeAll([]kpi.RawSessionRecord{{
				Timestamp: "2025-06-02 09:00:00",
				PatientID: "p1",
				Flex:      [kpi.JointCount]string{"10", "11", "12", "13", "14"},
				Pain:      "3",
				Fatigue:   "5",
			}}))
			return &reports.WeeklyReport{Report: kpi.Assemble(rows), CSV: "csv-output"}
		}

		It("returns the fixed reporting schema as JSON", func() {
			reportsService.EXPECT().
				Weekly(gomock.Any(), reports.RequestContext{CurrentUser: "dr", CurrentRole: users.RoleDoctor}).
				Return(weekly(), nil)
			auditService.EXPECT().Record(gomock.Any(), gomock.Any())

			c, rec := jsonContext(http.MethodGet, "/reports/weekly", "")
			asUser(c, "dr", users.RoleDoctor)

			Expect(handler.WeeklyReport(c)).To(Succeed())
			Expect(rec.Code).To(Equal(http.StatusOK))

			resp := api.WeeklyReportResponse{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Columns).To(Equal(kpi.ReportColumns))
			Expect(resp.Rows).To(HaveLen(1))
			Expect(resp.Rows[0]).To(HaveLen(len(kpi.ReportColumns)))
			Expect(resp.Rows[0][0]).To(Equal("W1"))
		})

		It("serves the CSV export inline", func() {
			reportsService.EXPECT().
				Weekly(gomock.Any(), gomock.Any()).
				Return(weekly(), nil)
			auditService.EXPECT().Record(gomock.Any(), gomock.Any())

			c, rec := jsonContext(http.MethodGet, "/reports/weekly?format=csv", "")
			asUser(c, "dr", users.RoleDoctor)

			Expect(handler.WeeklyReport(c)).To(Succeed())
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(Equal("csv-output"))
		})
	})

	Describe("NarrativeReport", func() {
		It("maps a missing generator to 502", func() {
			reportsService.EXPECT().
				Narrative(gomock.Any(), gomock.Any()).
				Return(nil, ai.ErrUnavailable)

			c, _ := jsonContext(http.MethodPost, "/reports/narrative", "")
			asUser(c, "dr", users.RoleDoctor)

			err := handler.NarrativeReport(c)
			httpErr, ok := err.(errs.HttpError)
			Expect(ok).To(BeTrue())
			Expect(httpErr.Code).To(Equal(http.StatusBadGateway))
		})

		It("keeps the tabular report in the 502 body when only the generator fails", func() {
			rows := kpi.Aggregate(kpi.NormalizeAll([]kpi.RawSessionRecord{{
				Timestamp: "2025-06-02 09:00:00",
				PatientID: "p1",
				Pain:      "3",
			}}))
			partial := &reports.NarrativeReport{
				Weekly: reports.WeeklyReport{Report: kpi.Assemble(rows), CSV: "csv-output"},
			}
			reportsService.EXPECT().
				Narrative(gomock.Any(), gomock.Any()).
				Return(partial, ai.ErrRequestFailed)

			c, rec := jsonContext(http.MethodPost, "/reports/narrative", "")
			asUser(c, "dr", users.RoleDoctor)

			Expect(handler.NarrativeReport(c)).To(Succeed())
			Expect(rec.Code).To(Equal(http.StatusBadGateway))

			resp := api.NarrativeResponse{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Report.Rows).To(HaveLen(1))
			Expect(resp.Narrative).To(BeEmpty())
			Expect(resp.Error).ToNot(BeEmpty())
		})
	})
})
