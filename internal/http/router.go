package http

import (
	"github.com/gin-gonic/gin"

	"github.com/clipdoc/clipdoc/internal/database"
	"github.com/clipdoc/clipdoc/internal/services"
)

// RouterConfig carries the dependencies for the HTTP controllers.
type RouterConfig struct {
	Service  *services.ExtractService
	Database *database.Database
	Version  string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	importController := NewImportController(cfg.Service)
	router.POST("/api/import", importController.Import)

	books := NewBooksController(cfg.Database)
	router.GET("/api/books", books.List)

	runs := NewRunsController(cfg.Database)
	router.GET("/api/runs", runs.List)

	return router
}
