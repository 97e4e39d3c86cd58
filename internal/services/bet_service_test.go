package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sportsbook/internal/models"
)

func seedUserAndMarket(t *testing.T, db *gorm.DB, balance string, available bool) (models.User, models.Market) {
	t.Helper()

	user := models.User{
		Email:   "bettor@example.com",
		Balance: decimal.RequireFromString(balance),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	event := models.Event{
		EventID:         "evt-1",
		SportKey:        "soccer_epl",
		CommenceTime:    time.Now().Add(24 * time.Hour),
		LastUpdatedTime: time.Now(),
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	market := models.Market{
		EventID:         event.ID,
		Name:            "Arsenal",
		Price:           -110,
		Type:            models.MarketTypeH2H,
		Available:       available,
		Status:          models.MarketStatusTBD,
		CreatedTime:     time.Now(),
		LastUpdatedTime: time.Now(),
	}
	if err := db.Create(&market).Error; err != nil {
		t.Fatalf("failed to seed market: %v", err)
	}
	return user, market
}

func TestPlaceBetDebitsBalanceAndRecordsTransaction(t *testing.T) {
	db := setupTestDB()
	user, market := seedUserAndMarket(t, db, "100.00", true)

	svc := NewBetService(db)
	bet, err := svc.PlaceBet(user.ID, market.ID, decimal.RequireFromString("25.00"))
	if err != nil {
		t.Fatalf("PlaceBet failed: %v", err)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.RequireFromString("75.00")) {
		t.Errorf("Expected balance 75.00, got %s", reloaded.Balance)
	}

	var txn models.Transaction
	if err := db.Where("bet_id = ?", bet.ID).First(&txn).Error; err != nil {
		t.Fatalf("transaction not recorded: %v", err)
	}
	if txn.Type != models.TransactionBetPlaced {
		t.Errorf("Expected bet_placed transaction, got %s", txn.Type)
	}
	if !txn.Amount.Equal(decimal.RequireFromString("-25.00")) {
		t.Errorf("Expected transaction amount -25.00, got %s", txn.Amount)
	}
	if !txn.IsBet() {
		t.Error("Expected transaction to be bet related")
	}
}

func TestPlaceBetInsufficientBalance(t *testing.T) {
	db := setupTestDB()
	user, market := seedUserAndMarket(t, db, "10.00", true)

	svc := NewBetService(db)
	_, err := svc.PlaceBet(user.ID, market.ID, decimal.RequireFromString("25.00"))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Expected ErrInsufficientBalance, got %v", err)
	}

	// The rejected bet must leave no rows behind.
	var bets int64
	db.Model(&models.Bet{}).Count(&bets)
	if bets != 0 {
		t.Errorf("Expected no bets persisted, got %d", bets)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !reloaded.Balance.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("Expected balance unchanged, got %s", reloaded.Balance)
	}
}

func TestPlaceBetOnRetiredMarket(t *testing.T) {
	db := setupTestDB()
	user, market := seedUserAndMarket(t, db, "100.00", false)

	svc := NewBetService(db)
	_, err := svc.PlaceBet(user.ID, market.ID, decimal.RequireFromString("25.00"))
	if !errors.Is(err, ErrMarketUnavailable) {
		t.Fatalf("Expected ErrMarketUnavailable, got %v", err)
	}
}

func TestPlaceBetRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB()
	user, market := seedUserAndMarket(t, db, "100.00", true)

	svc := NewBetService(db)
	if _, err := svc.PlaceBet(user.ID, market.ID, decimal.Zero); err == nil {
		t.Error("Expected error for zero amount")
	}
}
