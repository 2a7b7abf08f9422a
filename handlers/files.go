package handlers

import (
	"net/http"

	"file-aggregator/apierror"
	"file-aggregator/fsquery"
	"file-aggregator/models"

	"github.com/gin-gonic/gin"
)

// FileHandler exposes read-only filesystem queries.
type FileHandler struct{}

func NewFileHandler() *FileHandler {
	return &FileHandler{}
}

func (h *FileHandler) ListDirectory(c *gin.Context) {
	var req models.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.Internal(err))
		return
	}

	items, err := fsquery.ListDirectory(req.Path)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ListDirectoryResponse{Items: items})
}

func (h *FileHandler) ReadFile(c *gin.Context) {
	var req models.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.Internal(err))
		return
	}

	content, err := fsquery.ReadFile(req.Path)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ReadFileResponse{Content: content})
}
