package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/auth"
	"tasktrack/internal/rbac"
	"tasktrack/internal/tasks"
)

// CheckAccess evaluates an arbitrary requirement for the caller, so clients
// can decide what to show without attempting the operation.
func CheckAccess(g *tasks.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req rbac.Requirement
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		decision := g.CheckAccess(auth.PrincipalFrom(c), req)
		c.JSON(http.StatusOK, gin.H{
			"decision": decision.String(),
			"allowed":  bool(decision),
		})
	}
}
