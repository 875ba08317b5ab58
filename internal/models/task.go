package models

import "time"

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

const DefaultTaskCategory = "general"

// Task is owned by exactly one organization and never moves between them.
type Task struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"size:32;not null;default:pending" json:"status"`
	Category    string     `gorm:"size:100;not null;default:general" json:"category"`
	CreatedByID int64      `gorm:"index;not null" json:"created_by_id"`
	OrgID       int64      `gorm:"index;not null" json:"org_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
