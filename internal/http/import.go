package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clipdoc/clipdoc/internal/services"
)

const (
	maxClippingsFileSize = 10 * 1024 * 1024 // 10 MB

	uploadSource = "upload"
)

type ImportController struct {
	service *services.ExtractService
}

func NewImportController(service *services.ExtractService) *ImportController {
	return &ImportController{
		service: service,
	}
}

type ImportResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	services.ExtractResult
}

// Import accepts a clippings file upload and runs the extraction
// pipeline, returning the structured result.
func (c *ImportController) Import(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("clippings_file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, &ImportResponse{
			Success: false,
			Error:   "Clippings file not provided",
		})
		return
	}
	defer file.Close()

	if header.Size > maxClippingsFileSize {
		ctx.JSON(http.StatusBadRequest, &ImportResponse{
			Success: false,
			Error:   fmt.Sprintf("File too large (max %d MB)", maxClippingsFileSize/(1024*1024)),
		})
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxClippingsFileSize+1))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, &ImportResponse{
			Success: false,
			Error:   fmt.Sprintf("Failed to read clippings file: %v", err),
		})
		return
	}

	result, err := c.service.Extract(string(content), uploadSource)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, &ImportResponse{
			Success: false,
			Error:   fmt.Sprintf("Failed to extract: %v", err),
		})
		return
	}

	ctx.JSON(http.StatusOK, &ImportResponse{
		Success:       true,
		ExtractResult: result,
	})
}
