package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportsbook/internal/models"
	"sportsbook/internal/oddsapi"
)

// OddsFetcher is the provider boundary of the ingestion pipeline. The real
// implementation is oddsapi.Client; tests substitute a canned one.
type OddsFetcher interface {
	FetchOdds(ctx context.Context, sport oddsapi.SportKey, market oddsapi.MarketKey) ([]oddsapi.Game, error)
}

// scope is the unit of invalidation granularity: one fetch answers for one
// (sport, market type) pair across all of its events.
type scope struct {
	Sport  oddsapi.SportKey
	Market oddsapi.MarketKey
}

// RunResult summarizes one completed ingestion run.
type RunResult struct {
	RunID          uuid.UUID         `json:"run_id"`
	SportKey       oddsapi.SportKey  `json:"sport_key"`
	MarketKey      oddsapi.MarketKey `json:"market_key"`
	EventsUpserted int               `json:"events_upserted"`
	MarketsCreated int               `json:"markets_created"`
}

// IngestionService orchestrates one odds refresh for a scope: fetch the
// provider payload, retire every available market in the scope, then upsert
// each event and insert its best-price markets.
//
// Runs for the same scope serialize on a per-scope mutex; without it a second
// run's scope-wide invalidation could land between the first run's
// invalidation and inserts and wrongly retire the fresh rows. Distinct scopes
// proceed independently.
type IngestionService struct {
	db      *gorm.DB
	fetcher OddsFetcher
	audit   *AuditService

	mu    sync.Mutex
	locks map[scope]*sync.Mutex
}

// NewIngestionService creates a new IngestionService
func NewIngestionService(db *gorm.DB, fetcher OddsFetcher, audit *AuditService) *IngestionService {
	return &IngestionService{
		db:      db,
		fetcher: fetcher,
		audit:   audit,
		locks:   make(map[scope]*sync.Mutex),
	}
}

func (s *IngestionService) scopeLock(sc scope) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[sc]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sc] = lock
	}
	return lock
}

// Run executes one ingestion cycle for a (sport, market) scope. A fetch
// failure aborts before any write; prior markets stay available. A failing
// event rolls back as a unit while earlier events stay committed. actorID
// attributes the audit entry and is nil for scheduled runs.
func (s *IngestionService) Run(ctx context.Context, sport oddsapi.SportKey, market oddsapi.MarketKey, actorID *uint) (*RunResult, error) {
	if !sport.Valid() {
		return nil, fmt.Errorf("unknown sport key %q", sport)
	}
	if !market.Valid() {
		return nil, fmt.Errorf("unknown market key %q", market)
	}

	sc := scope{Sport: sport, Market: market}
	lock := s.scopeLock(sc)
	lock.Lock()
	defer lock.Unlock()

	result := &RunResult{
		RunID:     uuid.New(),
		SportKey:  sport,
		MarketKey: market,
	}

	games, err := s.fetcher.FetchOdds(ctx, sport, market)
	if err != nil {
		s.recordRun(result, actorID, err)
		return nil, err
	}

	// Retire the whole scope once, before any insert. Doing this per event
	// instead would wipe out a later event's fresh rows.
	if err := s.invalidateScope(sport, market); err != nil {
		err = fmt.Errorf("failed to invalidate markets for %s/%s: %w", sport, market, err)
		s.recordRun(result, actorID, err)
		return nil, err
	}

	for _, game := range games {
		created, err := s.ingestGame(game, market)
		if err != nil {
			err = fmt.Errorf("failed to ingest event %s: %w", game.ID, err)
			s.recordRun(result, actorID, err)
			return nil, err
		}
		result.EventsUpserted++
		result.MarketsCreated += created
	}

	s.recordRun(result, actorID, nil)
	log.Printf("Odds run %s: %s/%s upserted %d events, created %d markets",
		result.RunID, sport, market, result.EventsUpserted, result.MarketsCreated)
	return result, nil
}

// invalidateScope marks every available market in the scope unavailable with
// one bulk update. Completed events are left alone so settlement sees their
// final set untouched; zero matched rows just means a first fetch.
func (s *IngestionService) invalidateScope(sport oddsapi.SportKey, market oddsapi.MarketKey) error {
	now := time.Now().UTC()
	eventIDs := s.db.Model(&models.Event{}).
		Select("id").
		Where("sport_key = ? AND completed = ?", string(sport), false)

	return s.db.Model(&models.Market{}).
		Where("available = ? AND type = ?", true, models.MarketType(market)).
		Where("event_id IN (?)", eventIDs).
		Updates(map[string]interface{}{
			"available":               false,
			"marked_unavailable_time": now,
			"last_updated_time":       now,
		}).Error
}

// ingestGame upserts one event and inserts its best-price markets inside a
// single transaction, so a failure leaves neither behind.
func (s *IngestionService) ingestGame(game oddsapi.Game, market oddsapi.MarketKey) (int, error) {
	best := SelectBestPrices(game, market)

	created := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		event, err := upsertEvent(tx, game)
		if err != nil {
			return err
		}

		// A game whose bookmakers dropped every outcome still gets its event
		// refreshed; its prior markets stay retired.
		if len(best) == 0 {
			return nil
		}

		now := time.Now().UTC()
		markets := make([]models.Market, 0, len(best))
		for key, quote := range best {
			markets = append(markets, models.Market{
				EventID:         event.ID,
				Name:            key.Name,
				Price:           quote.Price,
				Point:           quote.Point,
				Type:            models.MarketType(market),
				Available:       true,
				Status:          models.MarketStatusTBD,
				CreatedTime:     now,
				LastUpdatedTime: now,
			})
		}

		if err := tx.Create(&markets).Error; err != nil {
			return fmt.Errorf("failed to create markets: %w", err)
		}
		created = len(markets)
		return nil
	})

	return created, err
}

// upsertEvent finds an event by its provider identifier, creating it on first
// sighting and refreshing commence/last-updated times afterwards. Completion
// and scores belong to settlement and are never written here.
func upsertEvent(tx *gorm.DB, game oddsapi.Game) (*models.Event, error) {
	commence := time.Unix(game.CommenceTime, 0).UTC()
	now := time.Now().UTC()

	var event models.Event
	err := tx.Where("event_id = ?", game.ID).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		event = models.Event{
			EventID:         game.ID,
			SportKey:        game.SportKey,
			SportTitle:      game.SportTitle,
			CommenceTime:    commence,
			HomeTeam:        game.HomeTeam,
			AwayTeam:        game.AwayTeam,
			Completed:       false,
			LastUpdatedTime: now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return nil, fmt.Errorf("failed to create event: %w", err)
		}
		return &event, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up event: %w", err)
	}

	// Providers reschedule fixtures; commence time follows the feed.
	if err := tx.Model(&event).Updates(map[string]interface{}{
		"commence_time":     commence,
		"last_updated_time": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return &event, nil
}

// recordRun emits the per-run audit entry, for successes and failures alike.
func (s *IngestionService) recordRun(result *RunResult, actorID *uint, runErr error) {
	outcome := "success"
	description := fmt.Sprintf("Fetched %s/%s: %d events, %d markets",
		result.SportKey, result.MarketKey, result.EventsUpserted, result.MarketsCreated)
	if runErr != nil {
		outcome = "failure"
		description = fmt.Sprintf("Fetch %s/%s failed: %v", result.SportKey, result.MarketKey, runErr)
	}

	s.audit.Record(actorID, "Fetch Odds", description, models.JSONB{
		"run_id":          result.RunID.String(),
		"sport_key":       string(result.SportKey),
		"market_key":      string(result.MarketKey),
		"events_upserted": result.EventsUpserted,
		"markets_created": result.MarketsCreated,
		"outcome":         outcome,
	})
}
