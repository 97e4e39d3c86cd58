package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"sportsbook/internal/models"
)

func seedSettlementFixture(t *testing.T, db *gorm.DB) (models.Event, models.Market) {
	t.Helper()

	event := models.Event{
		EventID:         "evt-done",
		SportKey:        "basketball_nba",
		Completed:       true,
		CommenceTime:    time.Now().Add(-24 * time.Hour),
		LastUpdatedTime: time.Now(),
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	market := models.Market{
		EventID:         event.ID,
		Name:            "Lakers",
		Price:           -120,
		Type:            models.MarketTypeH2H,
		Available:       false,
		Status:          models.MarketStatusTBD,
		CreatedTime:     time.Now(),
		LastUpdatedTime: time.Now(),
	}
	if err := db.Create(&market).Error; err != nil {
		t.Fatalf("failed to seed market: %v", err)
	}
	return event, market
}

func TestFindSettleable(t *testing.T) {
	db := setupTestDB()
	_, market := seedSettlementFixture(t, db)

	// An available market of a live event must not show up.
	live := models.Event{
		EventID:         "evt-live",
		SportKey:        "basketball_nba",
		CommenceTime:    time.Now().Add(24 * time.Hour),
		LastUpdatedTime: time.Now(),
	}
	db.Create(&live)
	db.Create(&models.Market{
		EventID:         live.ID,
		Name:            "Celtics",
		Price:           100,
		Type:            models.MarketTypeH2H,
		Available:       true,
		Status:          models.MarketStatusTBD,
		CreatedTime:     time.Now(),
		LastUpdatedTime: time.Now(),
	})

	svc := NewSettlementService(db)
	settleable, err := svc.FindSettleable()
	if err != nil {
		t.Fatalf("FindSettleable failed: %v", err)
	}
	if len(settleable) != 1 || settleable[0].ID != market.ID {
		t.Fatalf("Expected exactly the retired market of the completed event, got %d rows", len(settleable))
	}
}

func TestUpdateMarketStatus(t *testing.T) {
	db := setupTestDB()
	_, market := seedSettlementFixture(t, db)

	svc := NewSettlementService(db)
	if err := svc.UpdateMarketStatus(market.ID, models.MarketStatusWin); err != nil {
		t.Fatalf("UpdateMarketStatus failed: %v", err)
	}

	var reloaded models.Market
	db.First(&reloaded, market.ID)
	if reloaded.Status != models.MarketStatusWin {
		t.Errorf("Expected status win, got %s", reloaded.Status)
	}
	if reloaded.StatusUpdatedTime == nil {
		t.Error("Expected status_updated_time to be stamped")
	}

	if err := svc.UpdateMarketStatus(market.ID, models.MarketStatus("void")); err == nil {
		t.Error("Expected error for unknown status")
	}
	if err := svc.UpdateMarketStatus(99999, models.MarketStatusLose); err == nil {
		t.Error("Expected error for missing market")
	}
}
