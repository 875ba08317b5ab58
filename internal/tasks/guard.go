// Package tasks mediates all task CRUD. Every operation is checked against
// its declared policy and then confined to the caller's organization.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"tasktrack/internal/audit"
	"tasktrack/internal/models"
	"tasktrack/internal/rbac"
	"tasktrack/internal/store"
)

const ResourceKind = "task"

var (
	// ErrNotFound covers both missing tasks and tasks of another organization.
	ErrNotFound    = errors.New("task not found")
	ErrInvalidTask = errors.New("invalid task")
)

// Policies holds the requirement declared for each guarded operation.
type Policies struct {
	Create    rbac.Requirement
	List      rbac.Requirement
	Get       rbac.Requirement
	Update    rbac.Requirement
	Delete    rbac.Requirement
	AuditList rbac.Requirement
}

// Operation names a guarded operation.
type Operation string

const (
	OpCreate    Operation = "create"
	OpList      Operation = "list"
	OpGet       Operation = "get"
	OpUpdate    Operation = "update"
	OpDelete    Operation = "delete"
	OpAuditList Operation = "audit_list"
)

// For returns the requirement declared for op. An unknown op gets an empty
// role set, which nobody satisfies.
func (ps Policies) For(op Operation) rbac.Requirement {
	switch op {
	case OpCreate:
		return ps.Create
	case OpList:
		return ps.List
	case OpGet:
		return ps.Get
	case OpUpdate:
		return ps.Update
	case OpDelete:
		return ps.Delete
	case OpAuditList:
		return ps.AuditList
	default:
		return rbac.RequireRoles()
	}
}

func DefaultPolicies() Policies {
	return Policies{
		Create:    rbac.RequirePermissions(rbac.PermCreateTask),
		List:      rbac.RequirePermissions(rbac.PermReadTask),
		Get:       rbac.RequirePermissions(rbac.PermReadTask),
		Update:    rbac.RequirePermissions(rbac.PermUpdateTask),
		Delete:    rbac.RequirePermissions(rbac.PermDeleteTask),
		AuditList: rbac.RequirePermissions(rbac.PermReadAudit),
	}
}

// CreateInput is the caller-supplied part of a new task. Ownership fields are
// never taken from input.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Patch lists the fields to change; nil leaves a field untouched.
type Patch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Category    *string `json:"category"`
}

// Origin carries request details copied into audit records.
type Origin struct {
	IP        string
	UserAgent string
}

type Guard struct {
	tasks    store.TaskStore
	recorder *audit.Recorder
	policies Policies
}

func NewGuard(tasks store.TaskStore, recorder *audit.Recorder, policies Policies) *Guard {
	return &Guard{tasks: tasks, recorder: recorder, policies: policies}
}

// Authorize checks p against the policy of op. Callers run it before
// parsing any request input so a denied caller learns nothing about it.
func (g *Guard) Authorize(p *rbac.Principal, op Operation) error {
	return rbac.Check(p, g.policies.For(op))
}

// CheckAccess evaluates req for p without touching storage.
func (g *Guard) CheckAccess(p *rbac.Principal, req rbac.Requirement) rbac.Decision {
	return rbac.Evaluate(p, req)
}

func (g *Guard) Create(ctx context.Context, p *rbac.Principal, in CreateInput, o Origin) (*models.Task, error) {
	if err := g.Authorize(p, OpCreate); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = models.DefaultTaskCategory
	}

	task := &models.Task{
		Title:       title,
		Description: in.Description,
		Status:      models.TaskPending,
		Category:    category,
		CreatedByID: p.UserID,
		OrgID:       p.OrgID,
	}
	if err := g.tasks.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	g.record(ctx, p, audit.ActionCreate, task.ID, nil, o)
	return task, nil
}

// List returns every task of the caller's organization. Bulk reads are not audited.
func (g *Guard) List(ctx context.Context, p *rbac.Principal) ([]models.Task, error) {
	if err := g.Authorize(p, OpList); err != nil {
		return nil, err
	}
	return g.tasks.ListTasks(ctx, p.OrgID)
}

func (g *Guard) Get(ctx context.Context, p *rbac.Principal, id int64, o Origin) (*models.Task, error) {
	if err := g.Authorize(p, OpGet); err != nil {
		return nil, err
	}
	task, err := g.find(ctx, p, id)
	if err != nil {
		return nil, err
	}

	g.record(ctx, p, audit.ActionRead, id, nil, o)
	return task, nil
}

// Update applies patch to the task if it belongs to the caller's
// organization. The update is audited whether or not a row matched.
func (g *Guard) Update(ctx context.Context, p *rbac.Principal, id int64, patch Patch, o Origin) (*models.Task, error) {
	if err := g.Authorize(p, OpUpdate); err != nil {
		return nil, err
	}
	fields, err := patch.fields()
	if err != nil {
		return nil, err
	}

	_, err = g.tasks.UpdateTask(ctx, id, p.OrgID, fields)
	if err != nil {
		return nil, err
	}

	var meta map[string]any
	if cols := fields.Columns(); len(cols) > 0 {
		meta = map[string]any{"changes": cols}
	}
	g.record(ctx, p, audit.ActionUpdate, id, meta, o)

	return g.find(ctx, p, id)
}

// Delete removes the task if it belongs to the caller's organization.
// Deleting nothing succeeds and is still audited.
func (g *Guard) Delete(ctx context.Context, p *rbac.Principal, id int64, o Origin) error {
	if err := g.Authorize(p, OpDelete); err != nil {
		return err
	}
	if _, err := g.tasks.DeleteTask(ctx, id, p.OrgID); err != nil {
		return err
	}

	g.record(ctx, p, audit.ActionDelete, id, nil, o)
	return nil
}

// ListAuditLogs returns the audit trail of the caller's organization, newest first.
func (g *Guard) ListAuditLogs(ctx context.Context, p *rbac.Principal, limit int, afterID int64) ([]models.AuditLog, error) {
	if err := g.Authorize(p, OpAuditList); err != nil {
		return nil, err
	}
	return g.recorder.List(ctx, store.AuditQuery{OrgID: p.OrgID, Limit: limit, AfterID: afterID})
}

func (g *Guard) find(ctx context.Context, p *rbac.Principal, id int64) (*models.Task, error) {
	task, err := g.tasks.FindTask(ctx, id, p.OrgID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// record writes an audit entry. A failed write is logged and never fails
// the operation that triggered it.
func (g *Guard) record(ctx context.Context, p *rbac.Principal, action string, id int64, meta map[string]any, o Origin) {
	_, err := g.recorder.Record(ctx, audit.Entry{
		OrgID:        p.OrgID,
		UserID:       p.UserID,
		Action:       action,
		ResourceType: ResourceKind,
		ResourceID:   id,
		Metadata:     meta,
		IP:           o.IP,
		UserAgent:    o.UserAgent,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("action", action).
			Int64("resource_id", id).
			Msg("audit record dropped")
	}
}

func (p Patch) fields() (store.TaskFields, error) {
	var f store.TaskFields
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return f, fmt.Errorf("%w: title cannot be empty", ErrInvalidTask)
		}
		f.Title = &title
	}
	f.Description = p.Description
	if p.Status != nil {
		status := models.TaskStatus(*p.Status)
		if !status.Valid() {
			return f, fmt.Errorf("%w: unknown status %q", ErrInvalidTask, *p.Status)
		}
		f.Status = &status
	}
	if p.Category != nil {
		category := strings.TrimSpace(*p.Category)
		if category == "" {
			category = models.DefaultTaskCategory
		}
		f.Category = &category
	}
	return f, nil
}
