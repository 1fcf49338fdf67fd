package handlers

import (
	"net/http"

	"feedbridge/internal/api/middleware"
	"feedbridge/internal/logger"
	"feedbridge/internal/store"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exports store.ExportLogStore
	logger  *logger.Logger
}

func NewExportHandler(exports store.ExportLogStore, logger *logger.Logger) *ExportHandler {
	return &ExportHandler{
		exports: exports,
		logger:  logger,
	}
}

// List returns the tenant's feed submissions and their tracking ids.
func (h *ExportHandler) List(c *gin.Context) {
	logs, err := h.exports.List(middleware.TenantID(c))
	if err != nil {
		h.logger.Error("Failed to fetch export logs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch export logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": logs})
}
