package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sportsbook/internal/models"
)

// MarketHandler serves the public event/market listings.
type MarketHandler struct {
	db *gorm.DB
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(db *gorm.DB) *MarketHandler {
	return &MarketHandler{db: db}
}

// GetEvents returns upcoming events with their currently available markets.
// GET /api/events?sport=soccer_epl
func (h *MarketHandler) GetEvents(c *gin.Context) {
	query := h.db.Model(&models.Event{}).
		Where("completed = ?", false).
		Preload("Markets", "available = ?", true).
		Order("commence_time ASC")

	if sport := c.Query("sport"); sport != "" {
		query = query.Where("sport_key = ?", sport)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
	})
}

// GetEventByID returns one event with all of its markets, retired included.
// GET /api/events/:id
func (h *MarketHandler) GetEventByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var event models.Event
	if err := h.db.Preload("Markets").First(&event, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event": event,
	})
}
