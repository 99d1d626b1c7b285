package repository

import (
	"context"
	"time"

	"casedesk-backend/models"
)

// ProfileRepository stores one profile per user id
type ProfileRepository struct {
	profiles *table[models.Profile]
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: newTable[models.Profile]()}
}

func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	r.profiles.put(p.UserID, *p)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, bool) {
	p, ok := r.profiles.get(userID)
	if !ok {
		return nil, false
	}
	return &p, true
}

// Upsert merges fn into the user's profile, creating an enabled profile first if missing
func (r *ProfileRepository) Upsert(ctx context.Context, userID string, fn func(*models.Profile)) *models.Profile {
	p := r.profiles.upsert(userID, func() models.Profile {
		now := time.Now().UTC()
		return models.Profile{UserID: userID, IsEnabled: true, CreatedAt: now}
	}, func(p *models.Profile) {
		fn(p)
		p.UpdatedAt = time.Now().UTC()
	})
	return &p
}

// SetEnabled toggles the profile flag; false when no profile exists
func (r *ProfileRepository) SetEnabled(ctx context.Context, userID string, enabled bool) bool {
	_, ok := r.profiles.update(userID, func(p *models.Profile) {
		p.IsEnabled = enabled
		p.UpdatedAt = time.Now().UTC()
	})
	return ok
}

// List returns every profile in creation order
func (r *ProfileRepository) List(ctx context.Context) []models.Profile {
	return r.profiles.filter(nil)
}
