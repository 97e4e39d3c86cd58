package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sportsbook/internal/models"
	"sportsbook/internal/oddsapi"
	"sportsbook/internal/services"
)

// AdminHandler handles the admin surface: odds fetch triggers, password
// resets and the audit log.
type AdminHandler struct {
	db          *gorm.DB
	ingestion   *services.IngestionService
	authService *services.AuthService
	audit       *services.AuditService
	settlement  *services.SettlementService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(db *gorm.DB, ingestion *services.IngestionService, authService *services.AuthService, audit *services.AuditService, settlement *services.SettlementService) *AdminHandler {
	return &AdminHandler{
		db:          db,
		ingestion:   ingestion,
		authService: authService,
		audit:       audit,
		settlement:  settlement,
	}
}

// AdminMiddleware checks if the authenticated user is an admin
func (h *AdminHandler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		var user models.User
		if err := h.db.First(&user, userID.(uint)).Error; err != nil || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// FetchOdds triggers one ingestion run for a (sport, market) scope. Provider
// failures surface as a warning; nothing was written in that case.
// POST /api/admin/fetch-odds
func (h *AdminHandler) FetchOdds(c *gin.Context) {
	actorID := c.GetUint("user_id")

	var req struct {
		Sport  string `json:"sport" binding:"required"`
		Market string `json:"market" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sport := oddsapi.SportKey(req.Sport)
	market := oddsapi.MarketKey(req.Market)
	if !sport.Valid() || !market.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sport or market"})
		return
	}

	result, err := h.ingestion.Run(c.Request.Context(), sport, market, &actorID)
	if err != nil {
		if errors.Is(err, oddsapi.ErrProviderUnavailable) || errors.Is(err, oddsapi.ErrMalformedResponse) {
			c.JSON(http.StatusBadGateway, gin.H{
				"warning": "Failed to fetch odds from the provider. No markets were changed.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ingestion failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Odds fetched successfully.",
		"result":  result,
	})
}

// ResetPassword sets a new password for any user.
// POST /api/admin/users/reset-password
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	actorID := c.GetUint("user_id")

	var req struct {
		Email       string `json:"email" binding:"required,email"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.ResetPassword(actorID, req.Email, req.NewPassword); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successfully.",
	})
}

// GetUsers returns all users
// GET /api/admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("id ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
	})
}

// GetSettleableMarkets returns retired markets of completed events awaiting
// a settlement decision.
// GET /api/admin/markets/settleable
func (h *AdminHandler) GetSettleableMarkets(c *gin.Context) {
	markets, err := h.settlement.FindSettleable()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch markets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"markets": markets,
	})
}

// UpdateMarketStatus records a win/lose/push decision for a market.
// PUT /api/admin/markets/:id/status
func (h *AdminHandler) UpdateMarketStatus(c *gin.Context) {
	actorID := c.GetUint("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid market id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.MarketStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown market status"})
		return
	}

	if err := h.settlement.UpdateMarketStatus(uint(id), status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "market not found"})
		return
	}

	h.audit.Record(&actorID, "Update Market Status",
		fmt.Sprintf("Market %d set to %s", id, status), nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "Market status updated.",
	})
}

// GetLogs returns the newest audit log entries
// GET /api/admin/logs
func (h *AdminHandler) GetLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.audit.RecentEntries(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs": entries,
	})
}
