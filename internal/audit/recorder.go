// Package audit appends and lists the immutable record of actions taken
// on tenant resources.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"tasktrack/internal/models"
	"tasktrack/internal/store"
)

var ErrRecordingFailed = errors.New("audit recording failed")

const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Entry describes one action to record.
type Entry struct {
	OrgID        int64
	UserID       int64
	Action       string
	ResourceType string
	ResourceID   int64
	Metadata     map[string]any
	IP           string
	UserAgent    string
}

// Recorder is created once at startup and shared by everything that audits.
// The store assigns both id and timestamp, so id order is timestamp order.
type Recorder struct {
	store store.AuditStore
}

func NewRecorder(s store.AuditStore) *Recorder {
	return &Recorder{store: s}
}

// Record appends e. Any failure is reported as ErrRecordingFailed.
func (r *Recorder) Record(ctx context.Context, e Entry) (models.AuditLog, error) {
	entry := models.AuditLog{
		OrgID:        e.OrgID,
		UserID:       e.UserID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		IP:           e.IP,
		UserAgent:    e.UserAgent,
	}
	if len(e.Metadata) > 0 {
		meta, err := json.Marshal(e.Metadata)
		if err != nil {
			return models.AuditLog{}, fmt.Errorf("%w: encode metadata: %v", ErrRecordingFailed, err)
		}
		entry.Metadata = datatypes.JSON(meta)
	}

	if err := r.store.AppendAudit(ctx, &entry); err != nil {
		return models.AuditLog{}, fmt.Errorf("%w: %v", ErrRecordingFailed, err)
	}

	zerolog.Ctx(ctx).Info().
		Int64("audit_id", entry.ID).
		Int64("user_id", entry.UserID).
		Int64("org_id", entry.OrgID).
		Str("action", entry.Action).
		Str("resource", entry.ResourceType).
		Int64("resource_id", entry.ResourceID).
		Msg("audit")

	return entry, nil
}

// List returns the organization's records, most recent first.
func (r *Recorder) List(ctx context.Context, q store.AuditQuery) ([]models.AuditLog, error) {
	logs, err := r.store.ListAudit(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
