package models

import "time"

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

// User is the persisted identity behind a principal. Credentials live with
// the external login service, not here.
type User struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	OrgID     int64      `gorm:"index;not null" json:"org_id"`
	Email     string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string     `gorm:"size:200" json:"name"`
	Role      string     `gorm:"size:16;not null;default:viewer" json:"role"`
	Status    UserStatus `gorm:"size:16;default:active" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
