package models

import (
	"time"
)

// Event represents one sporting fixture as reported by the odds provider.
// EventID is the provider-assigned identifier and is never duplicated; the
// ingestion pipeline creates events on first sighting and only ever updates
// them afterwards. Completion and scores are written by settlement, not here.
type Event struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	EventID         string     `gorm:"uniqueIndex;not null" json:"event_id"`
	SportKey        string     `gorm:"size:50;index" json:"sport_key"`
	SportTitle      string     `gorm:"size:100" json:"sport_title"`
	CommenceTime    time.Time  `json:"commence_time"`
	HomeTeam        string     `gorm:"size:100" json:"home_team"`
	AwayTeam        string     `gorm:"size:100" json:"away_team"`
	Completed       bool       `gorm:"default:false;not null" json:"completed"`
	HomeTeamScore   *int       `json:"home_team_score,omitempty"`
	AwayTeamScore   *int       `json:"away_team_score,omitempty"`
	LastUpdatedTime time.Time  `gorm:"not null" json:"last_updated_time"`
	Markets         []Market   `gorm:"foreignKey:EventID;references:ID" json:"markets,omitempty"`
}

// TableName specifies the table name for Event model
func (Event) TableName() string {
	return "events"
}
