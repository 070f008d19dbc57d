package assignments

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

var ErrMissingIds = errors.New("patient id and doctor id are required")

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

func (s *service) Get(ctx context.Context, patientID string) (*Assignment, error) {
	return s.repo.Get(ctx, strings.TrimSpace(patientID))
}

func (s *service) Set(ctx context.Context, patientID string, doctorID string) (*Assignment, error) {
	patientID = strings.TrimSpace(patientID)
	doctorID = strings.TrimSpace(doctorID)
	if patientID == "" || doctorID == "" {
		return nil, ErrMissingIds
	}

	assignment, err := s.repo.Set(ctx, patientID, doctorID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("assigned doctor", "patient", patientID, "doctor", doctorID)
	return assignment, nil
}

func (s *service) Clear(ctx context.Context, patientID string) error {
	patientID = strings.TrimSpace(patientID)
	if err := s.repo.Clear(ctx, patientID); err != nil {
		return err
	}

	s.logger.Infow("cleared assignment", "patient", patientID)
	return nil
}

func (s *service) List(ctx context.Context) ([]Assignment, error) {
	return s.repo.List(ctx)
}
