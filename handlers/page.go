package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const IndexTemplate = "index.html"

// Index renders the main application page. The engine must have
// IndexTemplate loaded.
func Index(c *gin.Context) {
	c.HTML(http.StatusOK, IndexTemplate, gin.H{
		"title": "File Aggregator",
	})
}
