package handlers

import (
	"net/http"
	"time"

	"feedbridge/internal/config"
	"feedbridge/internal/logger"
	"feedbridge/internal/models"
	"feedbridge/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type TenantHandler struct {
	tenants store.TenantStore
	config  *config.Config
	logger  *logger.Logger
}

func NewTenantHandler(tenants store.TenantStore, cfg *config.Config, logger *logger.Logger) *TenantHandler {
	return &TenantHandler{
		tenants: tenants,
		config:  cfg,
		logger:  logger,
	}
}

// Create registers a tenant account and returns a bearer token carrying
// its id. The token is the only credential the rest of the API needs.
func (h *TenantHandler) Create(c *gin.Context) {
	var request struct {
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.TenantRoleMerchant
	if request.Role == string(models.TenantRoleAdmin) {
		role = models.TenantRoleAdmin
	}

	tenant := &models.Tenant{
		Email: request.Email,
		Role:  role,
	}

	if err := h.tenants.Create(tenant); err != nil {
		h.logger.Error("Failed to create tenant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		return
	}

	token, err := h.signToken(tenant)
	if err != nil {
		h.logger.Error("Failed to sign token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":  tenant,
		"token": token,
	})
}

func (h *TenantHandler) signToken(tenant *models.Tenant) (string, error) {
	claims := jwt.MapClaims{
		"tenant_id": tenant.ID,
		"role":      string(tenant.Role),
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(30 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
