package repository

import (
	"context"

	"casedesk-backend/models"
)

// AlertSettingsRepository stores notification preferences per user id
type AlertSettingsRepository struct {
	settings *table[models.AlertSettings]
}

func NewAlertSettingsRepository() *AlertSettingsRepository {
	return &AlertSettingsRepository{settings: newTable[models.AlertSettings]()}
}

// DefaultAlertSettings returns email on, sms off
func DefaultAlertSettings(userID string) models.AlertSettings {
	return models.AlertSettings{UserID: userID, EmailAlerts: true, SMSAlerts: false}
}

func (r *AlertSettingsRepository) Create(ctx context.Context, s *models.AlertSettings) {
	r.settings.put(s.UserID, *s)
}

func (r *AlertSettingsRepository) GetByUserID(ctx context.Context, userID string) (*models.AlertSettings, bool) {
	s, ok := r.settings.get(userID)
	if !ok {
		return nil, false
	}
	return &s, true
}

// Upsert merges fn into the user's settings, starting from the defaults if missing
func (r *AlertSettingsRepository) Upsert(ctx context.Context, userID string, fn func(*models.AlertSettings)) *models.AlertSettings {
	s := r.settings.upsert(userID, func() models.AlertSettings { return DefaultAlertSettings(userID) }, fn)
	return &s
}
