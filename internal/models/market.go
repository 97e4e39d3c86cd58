package models

import (
	"time"
)

// MarketType is the kind of line a market prices.
type MarketType string

const (
	MarketTypeH2H     MarketType = "h2h"
	MarketTypeSpreads MarketType = "spreads"
	MarketTypeTotals  MarketType = "totals"
)

// Valid reports whether t is one of the known market types.
func (t MarketType) Valid() bool {
	switch t {
	case MarketTypeH2H, MarketTypeSpreads, MarketTypeTotals:
		return true
	}
	return false
}

// MarketStatus is the settlement state of a market.
type MarketStatus string

const (
	MarketStatusWin  MarketStatus = "win"
	MarketStatusLose MarketStatus = "lose"
	MarketStatusPush MarketStatus = "push"
	MarketStatusTBD  MarketStatus = "tbd"
)

// Valid reports whether s is one of the known market statuses.
func (s MarketStatus) Valid() bool {
	switch s {
	case MarketStatusWin, MarketStatusLose, MarketStatusPush, MarketStatusTBD:
		return true
	}
	return false
}

// Market represents one priced outcome belonging to an event. Price movement
// is modelled by retiring rows instead of updating them in place: a fresh
// fetch for the same (sport, type) scope marks the old rows unavailable and
// inserts new ones, so at most one row per (event, name, point, type) is
// available at any time and the full price history is preserved.
type Market struct {
	ID                    uint         `gorm:"primaryKey" json:"id"`
	EventID               uint         `gorm:"not null;index" json:"event_id"`
	Event                 Event        `gorm:"foreignKey:EventID;references:ID" json:"event,omitempty"`
	Name                  string       `gorm:"size:200;not null" json:"name"`
	Price                 float64      `json:"price"`
	Point                 *float64     `json:"point,omitempty"`
	Type                  MarketType   `gorm:"size:20;not null;index" json:"type"`
	Available             bool         `gorm:"default:true;not null;index" json:"available"`
	Status                MarketStatus `gorm:"size:10;default:tbd;not null" json:"status"`
	CreatedTime           time.Time    `gorm:"not null" json:"created_time"`
	LastUpdatedTime       time.Time    `gorm:"not null" json:"last_updated_time"`
	MarkedUnavailableTime *time.Time   `json:"marked_unavailable_time,omitempty"`
	StatusUpdatedTime     *time.Time   `json:"status_updated_time,omitempty"`
}

// TableName specifies the table name for Market model
func (Market) TableName() string {
	return "markets"
}
