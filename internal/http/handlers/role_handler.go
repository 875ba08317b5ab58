package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/rbac"
)

// ListRoles returns every role with its effective permissions, highest
// privilege first.
func ListRoles() gin.HandlerFunc {
	type roleResp struct {
		Role        rbac.Role         `json:"role"`
		Rank        int               `json:"rank"`
		Permissions []rbac.Permission `json:"permissions"`
	}

	return func(c *gin.Context) {
		roles := []roleResp{}
		for _, r := range []rbac.Role{rbac.RoleOwner, rbac.RoleAdmin, rbac.RoleViewer} {
			roles = append(roles, roleResp{Role: r, Rank: r.Rank(), Permissions: sortedPermissions(r)})
		}
		c.JSON(http.StatusOK, gin.H{"roles": roles})
	}
}
