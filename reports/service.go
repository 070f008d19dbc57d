// Package reports runs the reporting pipeline: read records, normalize,
// aggregate, classify, assemble, and optionally hand the result to the
// narrative generator.
package reports

import (
	"context"

	"go.uber.org/zap"

	"github.com/motuslabs/rehab/ai"
	"github.com/motuslabs/rehab/export"
	"github.com/motuslabs/rehab/kpi"
	"github.com/motuslabs/rehab/records"
	"github.com/motuslabs/rehab/store"
	"github.com/motuslabs/rehab/users"
)

// RequestContext carries the per-request inputs explicitly. Handlers build
// one from the authenticated identity; nothing in the pipeline reads ambient
// state.
type RequestContext struct {
	PatientFilter string
	CurrentUser   string
	CurrentRole   users.Role
}

type WeeklyReport struct {
	Report kpi.Report
	// CSV is the canonical serialized form: the download payload and the
	// exact bytes embedded into narrative prompts.
	CSV string
}

type NarrativeReport struct {
	Weekly    WeeklyReport
	Narrative string
}

type Service interface {
	Weekly(ctx context.Context, rc RequestContext) (*WeeklyReport, error)

	// Narrative and Answer isolate generator failures: when the returned
	// error is an ai error the accompanying report is still complete, so
	// the KPI table renders even when the narrative panel cannot.
	Narrative(ctx context.Context, rc RequestContext) (*NarrativeReport, error)
	Answer(ctx context.Context, rc RequestContext, question string) (*NarrativeReport, error)
}

type service struct {
	records   records.Service
	generator ai.Generator
	logger    *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(recordsService records.Service, generator ai.Generator, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		records:   recordsService,
		generator: generator,
		logger:    logger,
	}, nil
}

func (s *service) Weekly(ctx context.Context, rc RequestContext) (*WeeklyReport, error) {
	// The full listing, always: weekly ranks and averages are computed over
	// every record, so the pipeline never pages.
	list, err := s.records.List(ctx, recordFilter(rc), store.Pagination{})
	if err != nil {
		return nil, err
	}

	report := kpi.Assemble(kpi.Aggregate(kpi.NormalizeAll(records.Raw(list))))
	csv, err := export.ReportCSV(report)
	if err != nil {
		return nil, err
	}

	return &WeeklyReport{
		Report: report,
		CSV:    csv,
	}, nil
}

func (s *service) Narrative(ctx context.Context, rc RequestContext) (*NarrativeReport, error) {
	return s.generate(ctx, rc, func(csv string) string {
		return ai.AnalysisPrompt(csv)
	})
}

func (s *service) Answer(ctx context.Context, rc RequestContext, question string) (*NarrativeReport, error) {
	return s.generate(ctx, rc, func(csv string) string {
		return ai.QuestionPrompt(csv, question)
	})
}

func (s *service) generate(ctx context.Context, rc RequestContext, prompt func(csv string) string) (*NarrativeReport, error) {
	weekly, err := s.Weekly(ctx, rc)
	if err != nil {
		return nil, err
	}

	result := &NarrativeReport{Weekly: *weekly}
	narrative, err := s.generator.GenerateReport(ctx, prompt(weekly.CSV))
	if err != nil {
		// The tabular report survives generator failure; the caller gets
		// both the report and the error.
		s.logger.Warnw("narrative generation failed", "error", err)
		return result, err
	}

	result.Narrative = narrative
	return result, nil
}

// recordFilter scopes the listing by role: patients only ever see their own
// records, clinical roles search across patients.
func recordFilter(rc RequestContext) *records.Filter {
	if rc.CurrentRole == users.RolePatient {
		patient := rc.CurrentUser
		return &records.Filter{PatientID: &patient}
	}
	if rc.PatientFilter != "" {
		search := rc.PatientFilter
		return &records.Filter{Search: &search}
	}
	return nil
}
