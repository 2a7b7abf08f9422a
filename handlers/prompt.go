package handlers

import (
	"context"
	"net/http"

	"file-aggregator/apierror"
	"file-aggregator/middleware"
	"file-aggregator/models"
	"file-aggregator/relay"
	"file-aggregator/summarize"
	"file-aggregator/utils"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

type PromptHandler struct {
	relay *relay.Relay
}

func NewPromptHandler(r *relay.Relay) *PromptHandler {
	return &PromptHandler{
		relay: r,
	}
}

// Summarize keeps the first sentences of the submitted text as bullets.
// Every failure, including an unreadable body, is a 500.
func (h *PromptHandler) Summarize(c *gin.Context) {
	var req models.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.Internal(err))
		return
	}

	limit := summarize.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	result := summarize.Summarize(req.Text, limit)
	c.JSON(http.StatusOK, models.SummaryResponse{
		Summary:        result.Summary,
		OriginalLength: result.OriginalLength,
		SummaryLength:  result.SummaryLength,
	})
}

// GeneratePrompt streams a structured meta-prompt for the submitted input as
// server-sent events. Validation, configuration and connection failures are
// answered with a plain JSON error; later failures end the stream with an
// error event.
func (h *PromptHandler) GeneratePrompt(c *gin.Context) {
	var req models.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.BadRequest("Invalid request format"))
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	chunks, err := h.relay.Open(ctx, req.Input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SetStreamHeaders(c.Writer)
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	outcome := relay.Forward(ctx, chunks, utils.EventWriter{W: c.Writer})

	entry := log.WithFields(log.Fields{
		"outcome":   outcome,
		"client_ip": c.ClientIP(),
	})
	if ident, ok := middleware.IdentityFrom(c); ok {
		entry = entry.WithField("user_id", ident.ID)
	}
	entry.Info("Meta-prompt stream finished")
}
