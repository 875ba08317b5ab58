package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/auth"
	"tasktrack/internal/tasks"
)

func origin(c *gin.Context) tasks.Origin {
	return tasks.Origin{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return id, true
}

// authorize runs the operation's policy check before any input is parsed.
func authorize(c *gin.Context, g *tasks.Guard, op tasks.Operation) bool {
	if err := g.Authorize(auth.PrincipalFrom(c), op); err != nil {
		abortWithError(c, err)
		return false
	}
	return true
}

func CreateTask(g *tasks.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorize(c, g, tasks.OpCreate) {
			return
		}
		var in tasks.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		task, err := g.Create(c.Request.Context(), auth.PrincipalFrom(c), in, origin(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"task": task})
	}
}

func ListTasks(g *tasks.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorize(c, g, tasks.OpList) {
			return
		}
		list, err := g.List(c.Request.Context(), auth.PrincipalFrom(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tasks": list})
	}
}

func GetTask(g *tasks.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorize(c, g, tasks.OpGet) {
			return
		}
		id, ok := taskID(c)
		if !ok {
			return
		}

		task, err := g.Get(c.Request.Context(), auth.PrincipalFrom(c), id, origin(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"task": task})
	}
}

func UpdateTask(g *tasks.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorize(c, g, tasks.OpUpdate) {
			return
		}
		id, ok := taskID(c)
		if !ok {
			return
		}
		var patch tasks.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		task, err := g.Update(c.Request.Context(), auth.PrincipalFrom(c), id, patch, origin(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"task": task})
	}
}

func DeleteTask(g *tasks.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorize(c, g, tasks.OpDelete) {
			return
		}
		id, ok := taskID(c)
		if !ok {
			return
		}

		if err := g.Delete(c.Request.Context(), auth.PrincipalFrom(c), id, origin(c)); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
