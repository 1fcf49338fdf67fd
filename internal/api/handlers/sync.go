package handlers

import (
	"errors"
	"net/http"

	"feedbridge/internal/api/middleware"
	"feedbridge/internal/connectors/walmart"
	"feedbridge/internal/events"
	"feedbridge/internal/logger"
	"feedbridge/internal/services/shopify"
	"feedbridge/internal/syncer"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	orchestrator *syncer.Orchestrator
	publisher    *events.Publisher
	logger       *logger.Logger
}

func NewSyncHandler(orchestrator *syncer.Orchestrator, publisher *events.Publisher, logger *logger.Logger) *SyncHandler {
	return &SyncHandler{
		orchestrator: orchestrator,
		publisher:    publisher,
		logger:       logger,
	}
}

// Sync runs the pipeline for the authenticated tenant. With "async" set
// the request is queued for a worker instead and a 202 comes back.
func (h *SyncHandler) Sync(c *gin.Context) {
	var request struct {
		SourceURL    string `json:"source_url" binding:"required"`
		Credential   string `json:"credential" binding:"required"`
		Export       bool   `json:"export"`
		AllowPartial bool   `json:"allow_partial"`
		Async        bool   `json:"async"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := syncer.Request{
		TenantID:     middleware.TenantID(c),
		SourceURL:    request.SourceURL,
		Credential:   request.Credential,
		Export:       request.Export,
		AllowPartial: request.AllowPartial,
	}

	if request.Async {
		if err := h.publisher.PublishSyncRequest(req); err != nil {
			h.logger.Error("Failed to queue sync: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue sync"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"message": "Sync queued"})
		return
	}

	result := h.orchestrator.Run(req)
	if result.State == syncer.StateFailed {
		h.respondFailure(c, result)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// respondFailure maps pipeline failures to statuses: upstream fetch and
// marketplace rejections come back as 502 with the upstream detail,
// blocked validation as 422 with the per-record issues.
func (h *SyncHandler) respondFailure(c *gin.Context, result *syncer.Result) {
	var fetchErr *shopify.FetchError
	if errors.As(result.Err, &fetchErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":           "Source fetch failed",
			"upstream_status": fetchErr.StatusCode,
			"upstream_body":   fetchErr.Body,
		})
		return
	}

	var exportErr *walmart.ExportError
	if errors.As(result.Err, &exportErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":            "Feed export failed",
			"upstream_status":  exportErr.StatusCode,
			"upstream_message": exportErr.Message,
			// The normalized snapshot persisted before the export is
			// retained; only the export itself failed.
			"line_items_persisted": len(result.LineItems),
		})
		return
	}

	if len(result.Issues) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Required attributes unresolved",
			"issues": result.Issues,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": result.Err.Error()})
}
