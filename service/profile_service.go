package service

import (
	"context"
	"errors"

	"casedesk-backend/models"
	"casedesk-backend/repository"
)

// ProfileService handles self-service profile and alert preferences
type ProfileService struct {
	profiles *repository.ProfileRepository
	alerts   *repository.AlertSettingsRepository
}

// ProfileServiceOption is a functional option for ProfileService
type ProfileServiceOption func(*ProfileService)

// WithProfileRepository sets the profile repository
func WithProfileRepository(repo *repository.ProfileRepository) ProfileServiceOption {
	return func(s *ProfileService) {
		s.profiles = repo
	}
}

// WithAlertSettingsRepository sets the alert settings repository
func WithAlertSettingsRepository(repo *repository.AlertSettingsRepository) ProfileServiceOption {
	return func(s *ProfileService) {
		s.alerts = repo
	}
}

// NewProfileService creates a new profile service
func NewProfileService(opts ...ProfileServiceOption) *ProfileService {
	s := &ProfileService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateProfileRequest carries a partial profile update. An empty AvatarURL clears it.
type UpdateProfileRequest struct {
	UserID    string
	FullName  *string
	AvatarURL *string
}

// UpdateAlertsRequest carries a partial alert settings update
type UpdateAlertsRequest struct {
	UserID      string
	EmailAlerts *bool
	SMSAlerts   *bool
}

// GetProfile returns the caller's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if s.profiles == nil {
		return nil, errors.New("profile repository not set")
	}
	p, ok := s.profiles.GetByUserID(ctx, userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	return p, nil
}

// UpdateProfile merges the set fields into the caller's profile
func (s *ProfileService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.Profile, error) {
	if s.profiles == nil {
		return nil, errors.New("profile repository not set")
	}
	return s.profiles.Upsert(ctx, req.UserID, func(p *models.Profile) {
		if req.FullName != nil {
			p.FullName = *req.FullName
		}
		if req.AvatarURL != nil {
			if *req.AvatarURL == "" {
				p.AvatarURL = nil
			} else {
				url := *req.AvatarURL
				p.AvatarURL = &url
			}
		}
	}), nil
}

// GetAlerts returns the caller's alert settings, defaults when never stored
func (s *ProfileService) GetAlerts(ctx context.Context, userID string) (*models.AlertSettings, error) {
	if s.alerts == nil {
		return nil, errors.New("alert settings repository not set")
	}
	if a, ok := s.alerts.GetByUserID(ctx, userID); ok {
		return a, nil
	}
	a := repository.DefaultAlertSettings(userID)
	return &a, nil
}

// UpdateAlerts merges the set flags into the caller's alert settings
func (s *ProfileService) UpdateAlerts(ctx context.Context, req UpdateAlertsRequest) (*models.AlertSettings, error) {
	if s.alerts == nil {
		return nil, errors.New("alert settings repository not set")
	}
	return s.alerts.Upsert(ctx, req.UserID, func(a *models.AlertSettings) {
		if req.EmailAlerts != nil {
			a.EmailAlerts = *req.EmailAlerts
		}
		if req.SMSAlerts != nil {
			a.SMSAlerts = *req.SMSAlerts
		}
	}), nil
}
