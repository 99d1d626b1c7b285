package models

import (
	"time"
)

// LitigationStatus represents the filing status of a litigation case
type LitigationStatus string

const (
	LitigationStatusDraft  LitigationStatus = "draft"
	LitigationStatusFiled  LitigationStatus = "filed"
	LitigationStatusClosed LitigationStatus = "closed"
)

// LitigationCase represents a litigation case owned by a single user
type LitigationCase struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	DocketNumber string           `json:"docket_number"`
	CaseName     string           `json:"case_name"`
	Status       LitigationStatus `json:"status"`
	Amount       float64          `json:"amount"`
	CreatedAt    time.Time        `json:"created_at"`
}
