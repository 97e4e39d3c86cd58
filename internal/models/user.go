package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered bettor.
type User struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Email        string          `gorm:"size:60;uniqueIndex;not null" json:"email"`
	PasswordHash string          `gorm:"size:128" json:"-"`
	TimeZone     string          `gorm:"size:50;not null;default:UTC" json:"time_zone"`
	IsAdmin      bool            `gorm:"default:false" json:"is_admin"`
	Balance      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
