package services

import (
	"database/sql"

	"sportsbook/internal/oddsapi"
)

// OutcomeKey identifies one logical outcome within a single market type: the
// outcome name plus its line. Point is nullable because moneyline outcomes
// carry no line; two outcomes with the same name at different points are
// distinct (the same team can appear at several spread lines).
type OutcomeKey struct {
	Name  string
	Point sql.NullFloat64
}

// BestQuote is the most favorable price found for one outcome key.
// Bookmaker records who offered it; on a price tie the first bookmaker in
// payload order is kept.
type BestQuote struct {
	Price     float64
	Point     *float64
	Bookmaker string
}

// SelectBestPrices scans every bookmaker's outcomes for one game and keeps
// the single highest american price per (name, point) key. Only bookmaker
// markets matching the requested market key are considered, so quotes from
// other market types can never collide under one key. Equal prices keep the
// first bookmaker seen in payload order.
func SelectBestPrices(game oddsapi.Game, market oddsapi.MarketKey) map[OutcomeKey]BestQuote {
	best := make(map[OutcomeKey]BestQuote)

	for _, bookmaker := range game.Bookmakers {
		for _, bm := range bookmaker.Markets {
			if bm.Key != string(market) {
				continue
			}
			for _, outcome := range bm.Outcomes {
				key := OutcomeKey{Name: outcome.Name}
				if outcome.Point != nil {
					key.Point = sql.NullFloat64{Float64: *outcome.Point, Valid: true}
				}

				current, seen := best[key]
				if seen && outcome.Price <= current.Price {
					continue
				}
				best[key] = BestQuote{
					Price:     outcome.Price,
					Point:     outcome.Point,
					Bookmaker: bookmaker.Key,
				}
			}
		}
	}

	return best
}
