package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clipdoc/clipdoc/internal/database"
)

type RunsController struct {
	db *database.Database
}

func NewRunsController(db *database.Database) *RunsController {
	return &RunsController{db: db}
}

// List returns recent extraction runs, newest first.
func (c *RunsController) List(ctx *gin.Context) {
	if c.db == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "archive database not configured"})
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	runs, err := c.db.GetRecentRuns(limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}
