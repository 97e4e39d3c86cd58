package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"sportsbook/internal/auth"
	"sportsbook/internal/services"
)

// BetHandler handles bet placement and history endpoints.
type BetHandler struct {
	betService *services.BetService
}

// NewBetHandler creates a new BetHandler
func NewBetHandler(betService *services.BetService) *BetHandler {
	return &BetHandler{betService: betService}
}

// PlaceBet stakes an amount on a market for the authenticated user.
// POST /api/bets
func (h *BetHandler) PlaceBet(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		MarketID uint   `json:"market_id" binding:"required"`
		Amount   string `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	bet, err := h.betService.PlaceBet(userID, req.MarketID, amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMarketUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": "market is no longer available"})
		case errors.Is(err, services.ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "insufficient balance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place bet"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"bet": bet,
	})
}

// GetMyBets returns the authenticated user's bets.
// GET /api/bets
func (h *BetHandler) GetMyBets(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	bets, err := h.betService.GetUserBets(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bets": bets,
	})
}
