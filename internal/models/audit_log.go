package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog rows are append-only. IDs are assigned by the store and grow with
// CreatedAt.
type AuditLog struct {
	ID           int64          `gorm:"primaryKey" json:"id"`
	OrgID        int64          `gorm:"index;not null" json:"org_id"`
	UserID       int64          `gorm:"index" json:"user_id"`
	Action       string         `gorm:"size:200;not null" json:"action"` // e.g. "create", "delete"
	ResourceType string         `gorm:"size:100" json:"resource"`        // e.g. "task"
	ResourceID   int64          `gorm:"index" json:"resource_id"`
	Metadata     datatypes.JSON `gorm:"type:json" json:"metadata,omitempty"` // fields touched by an update
	IP           string         `gorm:"size:64" json:"ip,omitempty"`
	UserAgent    string         `gorm:"size:255" json:"user_agent,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"timestamp"`
}
