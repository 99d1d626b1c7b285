package repository

import (
	"context"
	"time"

	"casedesk-backend/models"

	gocache "github.com/patrickmn/go-cache"
)

const (
	accessKeyPrefix  = "access:"
	refreshKeyPrefix = "refresh:"
)

// SessionRepository indexes each session under both of its token strings.
// Entries are evicted once both tokens have expired.
type SessionRepository struct {
	c *gocache.Cache
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{c: gocache.New(gocache.NoExpiration, time.Minute)}
}

// Save stores the session under its access and refresh tokens
func (r *SessionRepository) Save(ctx context.Context, s *models.Session) {
	ttl := time.Until(latest(s.ExpiresAt, s.RefreshExpiresAt))
	if ttl <= 0 {
		ttl = time.Millisecond
	}
	v := *s
	r.c.Set(accessKeyPrefix+s.AccessToken, v, ttl)
	r.c.Set(refreshKeyPrefix+s.RefreshToken, v, ttl)
}

// GetByAccessToken looks a session up by its access token string
func (r *SessionRepository) GetByAccessToken(ctx context.Context, token string) (*models.Session, bool) {
	return r.get(accessKeyPrefix + token)
}

// GetByRefreshToken looks a session up by its refresh token string
func (r *SessionRepository) GetByRefreshToken(ctx context.Context, token string) (*models.Session, bool) {
	return r.get(refreshKeyPrefix + token)
}

// Revoke removes both index entries of s; absent entries are ignored
func (r *SessionRepository) Revoke(ctx context.Context, s *models.Session) {
	r.c.Delete(accessKeyPrefix + s.AccessToken)
	r.c.Delete(refreshKeyPrefix + s.RefreshToken)
}

// Count returns the number of index entries, two per live session
func (r *SessionRepository) Count() int {
	return r.c.ItemCount()
}

func (r *SessionRepository) get(key string) (*models.Session, bool) {
	v, ok := r.c.Get(key)
	if !ok {
		return nil, false
	}
	s, ok := v.(models.Session)
	if !ok {
		return nil, false
	}
	return &s, true
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
