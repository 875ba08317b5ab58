// Package store is the persistence provider behind the task guard and the
// audit recorder.
package store

import (
	"context"
	"errors"

	"tasktrack/internal/models"
)

var ErrNotFound = errors.New("record not found")

// TaskStore filters every by-id operation on (id, orgID).
type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error
	ListTasks(ctx context.Context, orgID int64) ([]models.Task, error)
	FindTask(ctx context.Context, id, orgID int64) (*models.Task, error)
	// UpdateTask applies fields to the matching row and reports rows affected.
	UpdateTask(ctx context.Context, id, orgID int64, fields TaskFields) (int64, error)
	DeleteTask(ctx context.Context, id, orgID int64) (int64, error)
}

// TaskFields lists the mutable task columns; nil means unchanged.
type TaskFields struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Category    *string
}

// Columns returns the column/value map of the fields that are set.
func (f TaskFields) Columns() map[string]any {
	cols := map[string]any{}
	if f.Title != nil {
		cols["title"] = *f.Title
	}
	if f.Description != nil {
		cols["description"] = *f.Description
	}
	if f.Status != nil {
		cols["status"] = *f.Status
	}
	if f.Category != nil {
		cols["category"] = *f.Category
	}
	return cols
}

type AuditQuery struct {
	OrgID int64
	// Limit <= 0 means no limit.
	Limit int
	// AfterID, when > 0, returns only records older than it.
	AfterID int64
}

// AuditStore is append-only; List returns newest first. AppendAudit assigns
// ID and CreatedAt together, so ids increase with timestamps.
type AuditStore interface {
	AppendAudit(ctx context.Context, entry *models.AuditLog) error
	ListAudit(ctx context.Context, q AuditQuery) ([]models.AuditLog, error)
}

type UserStore interface {
	FindUser(ctx context.Context, id int64) (*models.User, error)
}
