package handlers

import (
	"net/http"

	"file-aggregator/apierror"
	"file-aggregator/models"
	"file-aggregator/version"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// HealthCheck returns service health status
func HealthCheck(service string) gin.HandlerFunc {
	info := version.Get(service)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    info.Service,
			"version":    info.Version,
			"git_sha":    info.GitSHA,
			"go_version": info.GoVersion,
		})
	}
}

// respondError answers with the status mapped from err's kind and the error
// text as body.
func respondError(c *gin.Context, err error) {
	status := apierror.Status(err)
	entry := log.WithError(err).WithFields(log.Fields{
		"path":   c.Request.URL.Path,
		"status": status,
		"kind":   apierror.KindOf(err).String(),
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}
	c.JSON(status, models.ErrorResponse{Error: err.Error()})
}
