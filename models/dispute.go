package models

import (
	"time"
)

// DisputeStatus represents the status of a dispute
type DisputeStatus string

const (
	DisputeStatusOpen    DisputeStatus = "open"
	DisputeStatusPending DisputeStatus = "pending"
	DisputeStatusClosed  DisputeStatus = "closed"
)

// Dispute represents a dispute record owned by a single user
type Dispute struct {
	ID        string                `json:"id"`
	UserID    string                `json:"user_id"`
	Title     string                `json:"title"`
	Status    DisputeStatus         `json:"status"`
	Amount    float64               `json:"amount"`
	CreatedAt time.Time             `json:"created_at"`
	Documents []DisputeFileMetadata `json:"documents"`
}

// DisputeUpdate holds the fields of a partial dispute update; nil means unchanged
type DisputeUpdate struct {
	Title  *string
	Status *DisputeStatus
	Amount *float64
}

// Apply merges the set fields of u into d
func (u DisputeUpdate) Apply(d *Dispute) {
	if u.Title != nil {
		d.Title = *u.Title
	}
	if u.Status != nil {
		d.Status = *u.Status
	}
	if u.Amount != nil {
		d.Amount = *u.Amount
	}
}
