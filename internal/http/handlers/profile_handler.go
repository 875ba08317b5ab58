package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/auth"
	"tasktrack/internal/rbac"
)

// MeHandler returns the current principal together with the permissions its
// role confers. The user record is the one JWT loaded for this request.
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.PrincipalFrom(c)
		user := auth.UserFrom(c)
		if p == nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":        user,
			"principal":   p,
			"permissions": sortedPermissions(p.Role),
		})
	}
}

func sortedPermissions(role rbac.Role) []rbac.Permission {
	perms := make([]rbac.Permission, 0)
	for perm := range rbac.EffectivePermissions(role) {
		perms = append(perms, perm)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}
