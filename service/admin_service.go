package service

import (
	"context"
	"errors"

	"casedesk-backend/logger"
	"casedesk-backend/models"
	"casedesk-backend/repository"
)

// AdminService backs the admin panel
type AdminService struct {
	store *repository.Store
}

// AdminServiceOption is a functional option for AdminService
type AdminServiceOption func(*AdminService)

// WithAdminStore sets the record store
func WithAdminStore(store *repository.Store) AdminServiceOption {
	return func(s *AdminService) {
		s.store = store
	}
}

// NewAdminService creates a new admin service
func NewAdminService(opts ...AdminServiceOption) *AdminService {
	s := &AdminService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListUsers summarises every profile with its permissions and last sign-in
func (s *AdminService) ListUsers(ctx context.Context) ([]models.AdminUserSummary, error) {
	if s.store == nil {
		return nil, errors.New("record store not set")
	}
	profiles := s.store.Profiles.List(ctx)
	out := make([]models.AdminUserSummary, 0, len(profiles))
	for _, p := range profiles {
		summary := models.AdminUserSummary{
			Profile:     p,
			Permissions: s.store.Permissions.Get(ctx, p.UserID),
		}
		if u, ok := s.store.Users.GetByID(ctx, p.UserID); ok {
			summary.LastSignIn = u.LastSignInAt
		}
		out = append(out, summary)
	}
	return out, nil
}

// SetPermissions replaces the user's permission set wholesale
func (s *AdminService) SetPermissions(ctx context.Context, userID string, permissions []string) error {
	if s.store == nil {
		return errors.New("record store not set")
	}
	if _, ok := s.store.Users.GetByID(ctx, userID); !ok {
		return ErrUserNotFound
	}
	s.store.Permissions.Replace(ctx, userID, permissions)
	logger.From(ctx).Info("permissions replaced",
		logger.Op("admin.permissions"), logger.UserID(userID), logger.Count(len(permissions)))
	return nil
}

// SetAccess toggles the enabled flag on both the user and its profile
func (s *AdminService) SetAccess(ctx context.Context, userID string, enabled bool) error {
	if s.store == nil {
		return errors.New("record store not set")
	}
	userFound := s.store.Users.SetEnabled(ctx, userID, enabled)
	profileFound := s.store.Profiles.SetEnabled(ctx, userID, enabled)
	if !userFound && !profileFound {
		return ErrUserNotFound
	}
	logger.From(ctx).Info("access toggled",
		logger.Op("admin.access"), logger.UserID(userID), logger.Bool("is_enabled", enabled))
	return nil
}
