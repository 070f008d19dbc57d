package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repo Repository, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repo:   repo,
		logger: logger,
	}, nil
}

func (s *service) Record(ctx context.Context, entry Entry) {
	if entry.Id == "" {
		entry.Id = uuid.NewString()
	}
	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Warnw("unable to record audit entry", "action", entry.Action, "error", err)
	}
}

func (s *service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}
