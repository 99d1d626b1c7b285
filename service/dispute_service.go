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

// DisputeService handles owner-scoped dispute records
type DisputeService struct {
	disputes *repository.DisputeRepository
	notifier notification.Notifier
	metrics  *metrics.Metrics
}

// DisputeServiceOption is a functional option for DisputeService
type DisputeServiceOption func(*DisputeService)

// WithDisputeRepository sets the dispute repository
func WithDisputeRepository(repo *repository.DisputeRepository) DisputeServiceOption {
	return func(s *DisputeService) {
		s.disputes = repo
	}
}

// WithDisputeNotifier sets the notifier called on creation
func WithDisputeNotifier(n notification.Notifier) DisputeServiceOption {
	return func(s *DisputeService) {
		s.notifier = n
	}
}

// WithDisputeMetrics sets the metrics sink
func WithDisputeMetrics(m *metrics.Metrics) DisputeServiceOption {
	return func(s *DisputeService) {
		s.metrics = m
	}
}

// NewDisputeService creates a new dispute service
func NewDisputeService(opts ...DisputeServiceOption) *DisputeService {
	s := &DisputeService{notifier: notification.Nop{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateDisputeRequest represents a request to create a dispute
type CreateDisputeRequest struct {
	UserID string
	Title  string
	Amount float64
}

// UpdateDisputeRequest represents a partial update of an owned dispute
type UpdateDisputeRequest struct {
	UserID    string
	DisputeID string
	Update    models.DisputeUpdate
}

// ListDisputes returns the caller's disputes in creation order
func (s *DisputeService) ListDisputes(ctx context.Context, userID string) ([]models.Dispute, error) {
	if s.disputes == nil {
		return nil, errors.New("dispute repository not set")
	}
	return s.disputes.ListByUserID(ctx, userID), nil
}

// GetDispute returns an owned dispute
func (s *DisputeService) GetDispute(ctx context.Context, userID, disputeID string) (*models.Dispute, error) {
	if s.disputes == nil {
		return nil, errors.New("dispute repository not set")
	}
	d, ok := s.disputes.GetOwned(ctx, disputeID, userID)
	if !ok {
		return nil, ErrDisputeNotFound
	}
	return d, nil
}

// CreateDispute stores an open dispute with no documents and notifies
func (s *DisputeService) CreateDispute(ctx context.Context, req CreateDisputeRequest) (*models.Dispute, error) {
	if s.disputes == nil {
		return nil, errors.New("dispute repository not set")
	}
	d := &models.Dispute{
		UserID:    req.UserID,
		Title:     req.Title,
		Status:    models.DisputeStatusOpen,
		Amount:    req.Amount,
		Documents: []models.DisputeFileMetadata{},
	}
	s.disputes.Create(ctx, d)
	s.notifier.DisputeCreated(ctx, d)
	s.metrics.DisputeCreated()
	logger.From(ctx).Debug("dispute stored", logger.DisputeID(d.ID), logger.UserID(d.UserID))
	return d, nil
}

// UpdateDispute merges the set fields into an owned dispute
func (s *DisputeService) UpdateDispute(ctx context.Context, req UpdateDisputeRequest) (*models.Dispute, error) {
	if s.disputes == nil {
		return nil, errors.New("dispute repository not set")
	}
	d, ok := s.disputes.UpdateOwned(ctx, req.DisputeID, req.UserID, req.Update)
	if !ok {
		return nil, ErrDisputeNotFound
	}
	return d, nil
}

// DeleteDispute removes an owned dispute
func (s *DisputeService) DeleteDispute(ctx context.Context, userID, disputeID string) error {
	if s.disputes == nil {
		return errors.New("dispute repository not set")
	}
	if !s.disputes.DeleteOwned(ctx, disputeID, userID) {
		return ErrDisputeNotFound
	}
	return nil
}
