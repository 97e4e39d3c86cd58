package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"sportsbook/internal/models"
)

// AuditService appends audit-trail entries. Writes are best effort: a failed
// audit insert is logged and swallowed so it can never fail the operation it
// describes.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditService
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one audit entry.
func (s *AuditService) Record(actorID *uint, category, description string, details models.JSONB) {
	entry := models.LogEntry{
		Timestamp:   time.Now().UTC(),
		ActorID:     actorID,
		Category:    category,
		Description: description,
		Details:     details,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Warning: failed to write audit entry %q: %v", category, err)
	}
}

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

// RecentEntries returns the newest audit entries, most recent first. The
// limit comes straight from a query parameter, so out-of-range values fall
// back to the default and large ones are capped.
func (s *AuditService) RecentEntries(limit int) ([]models.LogEntry, error) {
	if limit < 1 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}

	var entries []models.LogEntry
	err := s.db.Preload("Actor").Order("timestamp DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
