package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of money movement a transaction records.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionBetPlaced  TransactionType = "bet_placed"
	TransactionBetWin     TransactionType = "bet_win"
	TransactionBetPush    TransactionType = "bet_push"
)

// Transaction records one movement of a user's balance.
type Transaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	User      User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type      TransactionType `gorm:"size:20;not null;index" json:"type"`
	Timestamp time.Time       `gorm:"not null" json:"timestamp"`
	BetID     *uint           `gorm:"index" json:"bet_id,omitempty"`
	Bet       *Bet            `gorm:"foreignKey:BetID" json:"bet,omitempty"`
}

// IsBet reports whether the transaction is bet related.
func (t Transaction) IsBet() bool {
	switch t.Type {
	case TransactionBetPlaced, TransactionBetWin, TransactionBetPush:
		return true
	case TransactionDeposit, TransactionWithdrawal:
		return false
	}
	return false
}

// TableName specifies the table name for Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
