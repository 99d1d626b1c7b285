package service

import (
	"context"
	"errors"

	"casedesk-backend/logger"
	"casedesk-backend/metrics"
	"casedesk-backend/models"
	"casedesk-backend/notification"
	"casedesk-backend/repository"
)

// LitigationService handles bulk ingestion of litigation cases
type LitigationService struct {
	cases    *repository.LitigationRepository
	notifier notification.Notifier
	metrics  *metrics.Metrics
}

// LitigationServiceOption is a functional option for LitigationService
type LitigationServiceOption func(*LitigationService)

func WithLitigationRepository(repo *repository.LitigationRepository) LitigationServiceOption {
	return func(s *LitigationService) {
		s.cases = repo
	}
}

func WithLitigationNotifier(n notification.Notifier) LitigationServiceOption {
	return func(s *LitigationService) {
		s.notifier = n
	}
}

func WithLitigationMetrics(m *metrics.Metrics) LitigationServiceOption {
	return func(s *LitigationService) {
		s.metrics = m
	}
}

// NewLitigationService creates a new litigation service
func NewLitigationService(opts ...LitigationServiceOption) *LitigationService {
	s := &LitigationService{notifier: notification.Nop{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LitigationCaseInput is one case of a bulk upload
type LitigationCaseInput struct {
	DocketNumber string
	CaseName     string
	Status       models.LitigationStatus // empty means draft
	Amount       float64
}

// BulkCreateRequest represents a batch of cases for one owner
type BulkCreateRequest struct {
	UserID string
	Cases  []LitigationCaseInput
}

// ListCases returns the caller's cases in creation order
func (s *LitigationService) ListCases(ctx context.Context, userID string) ([]models.LitigationCase, error) {
	if s.cases == nil {
		return nil, errors.New("litigation repository not set")
	}
	return s.cases.ListByUserID(ctx, userID), nil
}

// BulkCreate inserts every case in order and sends one notification for the batch
func (s *LitigationService) BulkCreate(ctx context.Context, req BulkCreateRequest) ([]models.LitigationCase, error) {
	if s.cases == nil {
		return nil, errors.New("litigation repository not set")
	}
	created := make([]models.LitigationCase, 0, len(req.Cases))
	for _, in := range req.Cases {
		c := &models.LitigationCase{
			UserID:       req.UserID,
			DocketNumber: in.DocketNumber,
			CaseName:     in.CaseName,
			Status:       in.Status,
			Amount:       in.Amount,
		}
		s.cases.Create(ctx, c)
		created = append(created, *c)
	}
	s.notifier.LitigationUploaded(ctx, req.UserID, len(created))
	s.metrics.LitigationCasesUploaded(len(created))
	return created, nil
}

// DeleteCase removes an owned case
func (s *LitigationService) DeleteCase(ctx context.Context, userID, caseID string) error {
	if s.cases == nil {
		return errors.New("litigation repository not set")
	}
	if !s.cases.DeleteOwned(ctx, caseID, userID) {
		return ErrCaseNotFound
	}
	logger.From(ctx).Info("litigation case deleted",
		logger.Op("litigation.delete"), logger.UserID(userID), logger.CaseID(caseID))
	return nil
}
