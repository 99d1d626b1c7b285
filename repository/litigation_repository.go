package repository

import (
	"context"
	"time"

	"casedesk-backend/models"

	"github.com/google/uuid"
)

// LitigationRepository handles storage of litigation cases
type LitigationRepository struct {
	cases *table[models.LitigationCase]
}

func NewLitigationRepository() *LitigationRepository {
	return &LitigationRepository{cases: newTable[models.LitigationCase]()}
}

// Create inserts a case, assigning id, created_at and the draft status when unset
func (r *LitigationRepository) Create(ctx context.Context, c *models.LitigationCase) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.Status == "" {
		c.Status = models.LitigationStatusDraft
	}
	r.cases.put(c.ID, *c)
}

func (r *LitigationRepository) GetByID(ctx context.Context, id string) (*models.LitigationCase, bool) {
	c, ok := r.cases.get(id)
	if !ok {
		return nil, false
	}
	return &c, true
}

// ListByUserID retrieves all cases for a user in creation order
func (r *LitigationRepository) ListByUserID(ctx context.Context, userID string) []models.LitigationCase {
	return r.cases.filter(func(c models.LitigationCase) bool { return c.UserID == userID })
}

// DeleteOwned removes the case when it belongs to userID
func (r *LitigationRepository) DeleteOwned(ctx context.Context, id, userID string) bool {
	c, ok := r.cases.get(id)
	if !ok || c.UserID != userID {
		return false
	}
	return r.cases.remove(id)
}
