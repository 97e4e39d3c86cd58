package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sportsbook/internal/models"
)

var (
	// ErrMarketUnavailable is returned when betting on a retired market.
	ErrMarketUnavailable = errors.New("market is no longer available")
	// ErrInsufficientBalance is returned when the stake exceeds the balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// BetService handles bet placement and history.
type BetService struct {
	db *gorm.DB
}

// NewBetService creates a new BetService
func NewBetService(db *gorm.DB) *BetService {
	return &BetService{db: db}
}

// PlaceBet stakes amount on a market for a user. The balance debit, the bet
// row and its bet_placed transaction commit as one unit.
func (b *BetService) PlaceBet(userID, marketID uint, amount decimal.Decimal) (*models.Bet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("bet amount must be positive")
	}

	var bet models.Bet
	err := b.db.Transaction(func(tx *gorm.DB) error {
		var market models.Market
		if err := tx.First(&market, marketID).Error; err != nil {
			return fmt.Errorf("market not found: %w", err)
		}
		if !market.Available {
			return ErrMarketUnavailable
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return fmt.Errorf("user not found: %w", err)
		}
		if user.Balance.LessThan(amount) {
			return ErrInsufficientBalance
		}

		if err := tx.Model(&user).
			Update("balance", user.Balance.Sub(amount)).Error; err != nil {
			return fmt.Errorf("failed to debit balance: %w", err)
		}

		bet = models.Bet{
			UserID:    userID,
			MarketID:  marketID,
			Amount:    amount,
			Timestamp: time.Now().UTC(),
		}
		if err := tx.Create(&bet).Error; err != nil {
			return fmt.Errorf("failed to create bet: %w", err)
		}

		txn := models.Transaction{
			UserID:    userID,
			Amount:    amount.Neg(),
			Type:      models.TransactionBetPlaced,
			Timestamp: bet.Timestamp,
			BetID:     &bet.ID,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

// GetUserBets returns a user's bets, newest first, with their markets.
func (b *BetService) GetUserBets(userID uint) ([]models.Bet, error) {
	var bets []models.Bet
	err := b.db.Where("user_id = ?", userID).
		Preload("Market").
		Preload("Market.Event").
		Order("timestamp DESC").
		Find(&bets).Error
	return bets, err
}
