package models

import (
	"time"
)

// User represents an account holder
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Password     string     `json:"-"` // Stored as submitted, never serialized
	IsEnabled    bool       `json:"is_enabled"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
}

// Profile represents the public profile of a user (1:1 with User)
type Profile struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	IsEnabled bool      `json:"is_enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AlertSettings represents the notification preferences of a user
type AlertSettings struct {
	UserID      string `json:"user_id"`
	EmailAlerts bool   `json:"email_alerts"`
	SMSAlerts   bool   `json:"sms_alerts"`
}

// AdminUserSummary is the admin panel view of a user
type AdminUserSummary struct {
	Profile     Profile    `json:"profile"`
	Permissions []string   `json:"permissions"`
	LastSignIn  *time.Time `json:"last_sign_in"`
}
