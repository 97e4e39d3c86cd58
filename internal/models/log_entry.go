package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSONB for PostgreSQL JSON support
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &j)
	case string:
		return json.Unmarshal([]byte(v), &j)
	}
	return nil
}

// LogEntry is one audit-trail record. Ingestion runs, registrations and admin
// actions each append one entry; the admin UI reads them newest first.
type LogEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
	ActorID     *uint     `gorm:"index" json:"actor_id,omitempty"`
	Actor       *User     `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Category    string    `gorm:"size:100;not null" json:"category"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Details     JSONB     `gorm:"type:jsonb" json:"details,omitempty"`
}

// TableName specifies the table name for LogEntry model
func (LogEntry) TableName() string {
	return "log_entries"
}
