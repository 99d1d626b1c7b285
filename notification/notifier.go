package notification

import (
	"context"

	"casedesk-backend/logger"
	"casedesk-backend/models"

	"go.uber.org/zap"
)

// Notifier announces domain events. Implementations are best effort and
// must not block the caller on delivery.
type Notifier interface {
	DisputeCreated(ctx context.Context, d *models.Dispute)
	LitigationUploaded(ctx context.Context, userID string, count int)
}

// LogNotifier writes one structured log line per event.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier uses l, or the global logger when l is nil.
func NewLogNotifier(l *zap.Logger) *LogNotifier {
	if l == nil {
		l = logger.Named("notify")
	}
	return &LogNotifier{log: l}
}

func (n *LogNotifier) DisputeCreated(ctx context.Context, d *models.Dispute) {
	n.log.Info("dispute created",
		logger.DisputeID(d.ID),
		logger.UserID(d.UserID),
		zap.String("title", d.Title),
		zap.Float64("amount", d.Amount),
		logger.RequestIDFrom(ctx),
	)
}

func (n *LogNotifier) LitigationUploaded(ctx context.Context, userID string, count int) {
	n.log.Info("litigation cases uploaded",
		logger.UserID(userID),
		logger.Count(count),
		logger.RequestIDFrom(ctx),
	)
}

// Nop discards every event.
type Nop struct{}

func (Nop) DisputeCreated(context.Context, *models.Dispute) {}
func (Nop) LitigationUploaded(context.Context, string, int) {}
