package handlers

import (
	"net/http"

	"feedbridge/internal/api/middleware"
	"feedbridge/internal/logger"
	"feedbridge/internal/store"

	"github.com/gin-gonic/gin"
)

type SnapshotHandler struct {
	snapshots store.SnapshotStore
	logger    *logger.Logger
}

func NewSnapshotHandler(snapshots store.SnapshotStore, logger *logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshots: snapshots,
		logger:    logger,
	}
}

// List returns the tenant's current normalized snapshots, newest fetch
// first.
func (h *SnapshotHandler) List(c *gin.Context) {
	snapshots, err := h.snapshots.Get(middleware.TenantID(c))
	if err != nil {
		h.logger.Error("Failed to fetch snapshots: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch snapshots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshots})
}
