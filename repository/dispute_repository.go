package repository

import (
	"context"
	"slices"
	"time"

	"casedesk-backend/models"

	"github.com/google/uuid"
)

// DisputeRepository handles storage of disputes
type DisputeRepository struct {
	disputes *table[models.Dispute]
}

// NewDisputeRepository creates a new dispute repository
func NewDisputeRepository() *DisputeRepository {
	return &DisputeRepository{disputes: newTable[models.Dispute]()}
}

// Create inserts a dispute, assigning id, created_at, status and documents defaults
func (r *DisputeRepository) Create(ctx context.Context, d *models.Dispute) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.Status == "" {
		d.Status = models.DisputeStatusOpen
	}
	if d.Documents == nil {
		d.Documents = []models.DisputeFileMetadata{}
	}
	r.disputes.put(d.ID, cloneDispute(*d))
}

// GetByID retrieves a dispute by ID regardless of owner
func (r *DisputeRepository) GetByID(ctx context.Context, id string) (*models.Dispute, bool) {
	d, ok := r.disputes.get(id)
	if !ok {
		return nil, false
	}
	d = cloneDispute(d)
	return &d, true
}

// GetOwned retrieves a dispute only when it belongs to userID
func (r *DisputeRepository) GetOwned(ctx context.Context, id, userID string) (*models.Dispute, bool) {
	d, ok := r.GetByID(ctx, id)
	if !ok || d.UserID != userID {
		return nil, false
	}
	return d, true
}

// ListByUserID retrieves all disputes for a user in creation order
func (r *DisputeRepository) ListByUserID(ctx context.Context, userID string) []models.Dispute {
	rows := r.disputes.filter(func(d models.Dispute) bool { return d.UserID == userID })
	for i := range rows {
		rows[i] = cloneDispute(rows[i])
	}
	return rows
}

// UpdateOwned merges upd into the dispute when it belongs to userID
func (r *DisputeRepository) UpdateOwned(ctx context.Context, id, userID string, upd models.DisputeUpdate) (*models.Dispute, bool) {
	return r.mutateOwned(id, userID, upd.Apply)
}

// AppendDocuments adds document metadata to the end of the dispute's list
func (r *DisputeRepository) AppendDocuments(ctx context.Context, id, userID string, docs []models.DisputeFileMetadata) (*models.Dispute, bool) {
	return r.mutateOwned(id, userID, func(d *models.Dispute) {
		d.Documents = append(slices.Clone(d.Documents), docs...)
	})
}

// DeleteOwned removes the dispute when it belongs to userID
func (r *DisputeRepository) DeleteOwned(ctx context.Context, id, userID string) bool {
	r.disputes.mu.Lock()
	defer r.disputes.mu.Unlock()
	d, ok := r.disputes.rows[id]
	if !ok || d.UserID != userID {
		return false
	}
	delete(r.disputes.rows, id)
	r.disputes.order = slices.DeleteFunc(r.disputes.order, func(k string) bool { return k == id })
	return true
}

func (r *DisputeRepository) mutateOwned(id, userID string, fn func(*models.Dispute)) (*models.Dispute, bool) {
	owned := false
	d, ok := r.disputes.update(id, func(d *models.Dispute) {
		if d.UserID != userID {
			return
		}
		owned = true
		fn(d)
	})
	if !ok || !owned {
		return nil, false
	}
	d = cloneDispute(d)
	return &d, true
}

func cloneDispute(d models.Dispute) models.Dispute {
	d.Documents = slices.Clone(d.Documents)
	if d.Documents == nil {
		d.Documents = []models.DisputeFileMetadata{}
	}
	return d
}
