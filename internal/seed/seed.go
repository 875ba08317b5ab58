package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tasktrack/internal/models"
	"tasktrack/internal/rbac"
	"tasktrack/internal/store/memory"
)

// Users returns the development identities: one per role in the default
// organization, plus an owner in a second organization.
func Users(defaultOrg, otherOrg int64) []models.User {
	return []models.User{
		{OrgID: defaultOrg, Email: "owner@example.com", Name: "Owner User", Role: string(rbac.RoleOwner), Status: models.UserActive},
		{OrgID: defaultOrg, Email: "admin@example.com", Name: "Admin User", Role: string(rbac.RoleAdmin), Status: models.UserActive},
		{OrgID: defaultOrg, Email: "viewer@example.com", Name: "Viewer User", Role: string(rbac.RoleViewer), Status: models.UserActive},
		{OrgID: otherOrg, Email: "owner@other.example.com", Name: "Other Owner", Role: string(rbac.RoleOwner), Status: models.UserActive},
	}
}

// FirstSetup ensures the development organizations and users exist. It is
// safe to run on every start.
func FirstSetup(ctx context.Context, db *gorm.DB) ([]models.User, error) {
	db = db.WithContext(ctx)

	org := models.Organization{Name: "Default Organization", Slug: "default"}
	if err := db.Where("slug = ?", org.Slug).FirstOrCreate(&org).Error; err != nil {
		return nil, fmt.Errorf("seed default org: %w", err)
	}
	other := models.Organization{Name: "Other Organization", Slug: "other", ParentID: &org.ID}
	if err := db.Where("slug = ?", other.Slug).FirstOrCreate(&other).Error; err != nil {
		return nil, fmt.Errorf("seed other org: %w", err)
	}

	users := Users(org.ID, other.ID)
	for i := range users {
		if err := db.Where("email = ?", users[i].Email).FirstOrCreate(&users[i]).Error; err != nil {
			return nil, fmt.Errorf("seed user %s: %w", users[i].Email, err)
		}
	}
	return users, nil
}

// Memory puts the development users into an in-memory user store, using
// organization ids 1 and 2.
func Memory(users *memory.UserStore) []models.User {
	seeded := Users(1, 2)
	for i := range seeded {
		seeded[i].ID = int64(i + 1)
		users.Put(seeded[i])
	}
	return seeded
}
