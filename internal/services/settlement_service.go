package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"sportsbook/internal/models"
)

// SettlementService exposes the market state the settlement process consumes.
// Payout computation and balance crediting live outside this service; it only
// answers "what is ready to settle" and records status transitions.
type SettlementService struct {
	db *gorm.DB
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(db *gorm.DB) *SettlementService {
	return &SettlementService{db: db}
}

// FindSettleable returns retired markets of completed events that still await
// a win/lose/push decision.
func (s *SettlementService) FindSettleable() ([]models.Market, error) {
	var markets []models.Market
	err := s.db.
		Joins("JOIN events ON events.id = markets.event_id").
		Where("markets.available = ? AND markets.status = ? AND events.completed = ?",
			false, models.MarketStatusTBD, true).
		Preload("Event").
		Find(&markets).Error
	return markets, err
}

// UpdateMarketStatus records a settlement decision for one market.
func (s *SettlementService) UpdateMarketStatus(marketID uint, status models.MarketStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown market status %q", status)
	}

	now := time.Now().UTC()
	result := s.db.Model(&models.Market{}).
		Where("id = ?", marketID).
		Updates(map[string]interface{}{
			"status":              status,
			"status_updated_time": now,
			"last_updated_time":   now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update market status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("market %d not found", marketID)
	}
	return nil
}
