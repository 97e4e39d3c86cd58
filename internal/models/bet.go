package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bet represents a user's stake on a market.
type Bet struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	UserID             uint            `gorm:"not null;index" json:"user_id"`
	User               User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	MarketID           uint            `gorm:"not null;index" json:"market_id"`
	Market             Market          `gorm:"foreignKey:MarketID" json:"market,omitempty"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Timestamp          time.Time       `gorm:"not null" json:"timestamp"`
	IncludedInBalance  bool            `gorm:"default:false;not null" json:"included_in_balance"`
	AddedToBalanceTime *time.Time      `json:"added_to_balance_time,omitempty"`
}

// TableName specifies the table name for Bet model
func (Bet) TableName() string {
	return "bets"
}
