package handlers

import (
	"fmt"
	"net/http"

	"feedbridge/internal/api/middleware"
	"feedbridge/internal/feed/walmart"
	"feedbridge/internal/logger"
	"feedbridge/internal/mapping"
	"feedbridge/internal/models"
	"feedbridge/internal/store"

	"github.com/gin-gonic/gin"
)

type MappingHandler struct {
	mappings  store.MappingStore
	snapshots store.SnapshotStore
	resolver  *mapping.Resolver
	logger    *logger.Logger
}

func NewMappingHandler(mappings store.MappingStore, snapshots store.SnapshotStore, logger *logger.Logger) *MappingHandler {
	return &MappingHandler{
		mappings:  mappings,
		snapshots: snapshots,
		resolver:  mapping.New(walmart.ItemAttributes),
		logger:    logger,
	}
}

// Save overwrites the tenant's mapping for one target product. Field
// paths are checked against the fixed vocabulary up front so a bad path
// is rejected at save time, not silently "N/A"-ed at export time.
func (h *MappingHandler) Save(c *gin.Context) {
	targetProductID := c.Param("targetProductId")

	var request struct {
		Rules map[string]models.MappingRule `json:"rules" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateRules(request.Rules); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spec, err := h.mappings.Save(middleware.TenantID(c), targetProductID, request.Rules)
	if err != nil {
		h.logger.Error("Failed to save mapping: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save mapping"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": spec})
}

func (h *MappingHandler) List(c *gin.Context) {
	specs, err := h.mappings.Load(middleware.TenantID(c))
	if err != nil {
		h.logger.Error("Failed to load mappings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load mappings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       specs,
		"attributes": walmart.ItemAttributes,
		"paths":      mapping.Paths(),
	})
}

// Preview resolves the tenant's current snapshot against a stored spec
// without exporting anything, so incomplete mappings can be inspected.
func (h *MappingHandler) Preview(c *gin.Context) {
	targetProductID := c.Param("targetProductId")
	tenantID := middleware.TenantID(c)

	specs, err := h.mappings.Load(tenantID)
	if err != nil {
		h.logger.Error("Failed to load mappings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load mappings"})
		return
	}

	var spec *models.MappingSpec
	for i := range specs {
		if specs[i].TargetProductID == targetProductID {
			spec = &specs[i]
			break
		}
	}
	if spec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
		return
	}

	snapshots, err := h.snapshots.Get(tenantID)
	if err != nil {
		h.logger.Error("Failed to load snapshots: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load snapshots"})
		return
	}
	if len(snapshots) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No snapshot to preview against"})
		return
	}

	records := h.resolver.ResolveAll(*spec, snapshots[0].LineItems)

	c.JSON(http.StatusOK, gin.H{
		"data":   records,
		"issues": walmart.ValidateRequired(records),
	})
}

func validateRules(rules map[string]models.MappingRule) error {
	for attribute, rule := range rules {
		switch rule.Kind {
		case models.RuleIgnore:
			// an ignored attribute carries no value
			rule.Value = ""
			rules[attribute] = rule
		case models.RuleFreeText:
			// any literal is acceptable, including empty
		case models.RuleMapToField:
			if !mapping.ValidPath(rule.Value) {
				return fmt.Errorf("attribute %q maps to unknown field path %q", attribute, rule.Value)
			}
		default:
			return fmt.Errorf("attribute %q has unknown rule kind %q", attribute, rule.Kind)
		}
	}
	return nil
}
