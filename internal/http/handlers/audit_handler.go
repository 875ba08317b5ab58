package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/auth"
	"tasktrack/internal/tasks"
)

func ListAudit(g *tasks.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorize(c, g, tasks.OpAuditList) {
			return
		}
		limit := 20
		if limitStr := c.Query("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		var afterID int64
		if cursorStr := c.Query("after_id"); cursorStr != "" {
			if parsed, err := strconv.ParseInt(cursorStr, 10, 64); err == nil && parsed > 0 {
				afterID = parsed
			}
		}

		// one extra row tells us whether another page exists
		logs, err := g.ListAuditLogs(c.Request.Context(), auth.PrincipalFrom(c), limit+1, afterID)
		if err != nil {
			abortWithError(c, err)
			return
		}

		var nextCursor *int64
		if len(logs) > limit {
			next := logs[limit-1].ID
			logs = logs[:limit]
			nextCursor = &next
		}

		c.JSON(http.StatusOK, gin.H{
			"logs":        logs,
			"next_cursor": nextCursor,
		})
	}
}
