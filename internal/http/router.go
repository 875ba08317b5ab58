package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tasktrack/internal/auth"
	"tasktrack/internal/http/handlers"
	"tasktrack/internal/tasks"
)

func NewRouter(logger zerolog.Logger, resolver *auth.Resolver, guard *tasks.Guard) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1", auth.JWT(resolver))
	{
		// Current user info & permissions
		api.GET("/me", handlers.MeHandler())
		api.GET("/roles", handlers.ListRoles())

		// Tasks
		api.POST("/tasks", handlers.CreateTask(guard))
		api.GET("/tasks", handlers.ListTasks(guard))
		// Audit Trail
		api.GET("/tasks/audit-log", handlers.ListAudit(guard))
		api.GET("/tasks/:id", handlers.GetTask(guard))
		api.PATCH("/tasks/:id", handlers.UpdateTask(guard))
		api.DELETE("/tasks/:id", handlers.DeleteTask(guard))

		// Access checks
		api.POST("/access/check", handlers.CheckAccess(guard))
	}

	return r
}
