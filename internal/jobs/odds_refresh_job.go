package jobs

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"sportsbook/internal/oddsapi"
	"sportsbook/internal/services"
)

// OddsRefreshJob periodically re-ingests every (sport, market) scope so
// stored prices track the provider between admin-triggered fetches.
type OddsRefreshJob struct {
	service *services.IngestionService
	cron    *cron.Cron
}

// NewOddsRefreshJob creates a new OddsRefreshJob
func NewOddsRefreshJob(service *services.IngestionService) *OddsRefreshJob {
	return &OddsRefreshJob{
		service: service,
		cron:    cron.New(),
	}
}

// Start schedules the refresh on the given cron expression and runs one
// sweep immediately.
func (j *OddsRefreshJob) Start(spec string) error {
	if _, err := j.cron.AddFunc(spec, j.refreshAll); err != nil {
		return err
	}
	j.cron.Start()

	go j.refreshAll()
	return nil
}

// Stop halts the schedule; a sweep already in flight finishes.
func (j *OddsRefreshJob) Stop() {
	j.cron.Stop()
}

// refreshAll runs one ingestion per scope. A failing scope is logged and
// skipped; the remaining scopes still refresh.
func (j *OddsRefreshJob) refreshAll() {
	ctx := context.Background()

	for _, sport := range oddsapi.Sports {
		for _, market := range oddsapi.Markets {
			result, err := j.service.Run(ctx, sport, market, nil)
			if err != nil {
				log.Printf("Odds refresh failed for %s/%s: %v", sport, market, err)
				continue
			}
			log.Printf("Odds refresh %s/%s: %d events, %d markets",
				sport, market, result.EventsUpserted, result.MarketsCreated)
		}
	}
}
