package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"casedesk-backend/models"

	"github.com/google/uuid"
)

// ErrEmailTaken is returned when a user with the same email already exists
var ErrEmailTaken = errors.New("email already registered")

// UserRepository handles storage of user accounts
type UserRepository struct {
	users *table[models.User]
}

// NewUserRepository creates a new user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: newTable[models.User]()}
}

// NormalizeEmail is the canonical form used for uniqueness and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a user, assigning an id and timestamps when unset.
// The email check and the insert happen under one lock.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	for _, u := range r.users.rows {
		if u.Email == user.Email {
			return ErrEmailTaken
		}
	}
	r.users.putLocked(user.ID, *user)
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, bool) {
	u, ok := r.users.get(id)
	if !ok {
		return nil, false
	}
	return &u, true
}

// GetByEmail retrieves a user by case-insensitive email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool) {
	email = NormalizeEmail(email)
	matches := r.users.filter(func(u models.User) bool { return u.Email == email })
	if len(matches) == 0 {
		return nil, false
	}
	return &matches[0], true
}

// SetEnabled toggles the enabled flag; false when the user does not exist
func (r *UserRepository) SetEnabled(ctx context.Context, id string, enabled bool) bool {
	_, ok := r.users.update(id, func(u *models.User) {
		u.IsEnabled = enabled
		u.UpdatedAt = time.Now().UTC()
	})
	return ok
}

// RecordSignIn stamps the last sign-in time
func (r *UserRepository) RecordSignIn(ctx context.Context, id string, at time.Time) bool {
	_, ok := r.users.update(id, func(u *models.User) {
		at := at.UTC()
		u.LastSignInAt = &at
	})
	return ok
}

// List returns all users in creation order
func (r *UserRepository) List(ctx context.Context) []models.User {
	return r.users.filter(nil)
}

func (r *UserRepository) Count() int {
	return r.users.len()
}
