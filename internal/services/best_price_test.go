package services

import (
	"database/sql"
	"testing"

	"sportsbook/internal/oddsapi"
)

func fptr(v float64) *float64 {
	return &v
}

func game(bookmakers ...oddsapi.Bookmaker) oddsapi.Game {
	return oddsapi.Game{
		ID:         "evt-1",
		SportKey:   "soccer_epl",
		HomeTeam:   "Arsenal",
		AwayTeam:   "Chelsea",
		Bookmakers: bookmakers,
	}
}

func h2hMarket(outcomes ...oddsapi.Outcome) oddsapi.BookmakerMarket {
	return oddsapi.BookmakerMarket{Key: "h2h", Outcomes: outcomes}
}

func TestSelectBestPricesPicksHighestPerOutcome(t *testing.T) {
	g := game(
		oddsapi.Bookmaker{Key: "draftkings", Markets: []oddsapi.BookmakerMarket{
			h2hMarket(
				oddsapi.Outcome{Name: "Arsenal", Price: -110},
				oddsapi.Outcome{Name: "Chelsea", Price: 120},
			),
		}},
		oddsapi.Bookmaker{Key: "fanduel", Markets: []oddsapi.BookmakerMarket{
			h2hMarket(
				oddsapi.Outcome{Name: "Arsenal", Price: -105},
				oddsapi.Outcome{Name: "Chelsea", Price: 115},
			),
		}},
	)

	best := SelectBestPrices(g, oddsapi.MarketH2H)
	if len(best) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(best))
	}

	home := best[OutcomeKey{Name: "Arsenal"}]
	if home.Price != -105 || home.Bookmaker != "fanduel" {
		t.Errorf("Expected Arsenal at -105 from fanduel, got %+v", home)
	}

	away := best[OutcomeKey{Name: "Chelsea"}]
	if away.Price != 120 || away.Bookmaker != "draftkings" {
		t.Errorf("Expected Chelsea at 120 from draftkings, got %+v", away)
	}
}

func TestSelectBestPricesTieKeepsFirstBookmaker(t *testing.T) {
	g := game(
		oddsapi.Bookmaker{Key: "draftkings", Markets: []oddsapi.BookmakerMarket{
			h2hMarket(oddsapi.Outcome{Name: "Arsenal", Price: -110}),
		}},
		oddsapi.Bookmaker{Key: "fanduel", Markets: []oddsapi.BookmakerMarket{
			h2hMarket(oddsapi.Outcome{Name: "Arsenal", Price: -110}),
		}},
	)

	best := SelectBestPrices(g, oddsapi.MarketH2H)
	quote := best[OutcomeKey{Name: "Arsenal"}]
	if quote.Bookmaker != "draftkings" {
		t.Errorf("Expected tie to keep first bookmaker, got %q", quote.Bookmaker)
	}
}

func TestSelectBestPricesDistinguishesPoints(t *testing.T) {
	g := game(
		oddsapi.Bookmaker{Key: "draftkings", Markets: []oddsapi.BookmakerMarket{
			{Key: "spreads", Outcomes: []oddsapi.Outcome{
				{Name: "Arsenal", Price: -110, Point: fptr(-3.5)},
				{Name: "Arsenal", Price: -115, Point: fptr(-2.5)},
			}},
		}},
	)

	best := SelectBestPrices(g, oddsapi.MarketSpreads)
	if len(best) != 2 {
		t.Fatalf("Expected 2 entries for distinct points, got %d", len(best))
	}

	key := OutcomeKey{Name: "Arsenal", Point: sql.NullFloat64{Float64: -3.5, Valid: true}}
	if best[key].Price != -110 {
		t.Errorf("Expected -110 at point -3.5, got %v", best[key].Price)
	}
}

func TestSelectBestPricesIgnoresOtherMarketTypes(t *testing.T) {
	g := game(
		oddsapi.Bookmaker{Key: "draftkings", Markets: []oddsapi.BookmakerMarket{
			h2hMarket(oddsapi.Outcome{Name: "Arsenal", Price: 500}),
			{Key: "totals", Outcomes: []oddsapi.Outcome{
				{Name: "Over", Price: -110, Point: fptr(2.5)},
			}},
		}},
	)

	best := SelectBestPrices(g, oddsapi.MarketTotals)
	if len(best) != 1 {
		t.Fatalf("Expected only the totals outcome, got %d entries", len(best))
	}
	if _, ok := best[OutcomeKey{Name: "Arsenal"}]; ok {
		t.Error("h2h outcome leaked into totals selection")
	}
}

func TestSelectBestPricesEmptyGame(t *testing.T) {
	best := SelectBestPrices(game(), oddsapi.MarketH2H)
	if len(best) != 0 {
		t.Errorf("Expected no entries for a game without bookmakers, got %d", len(best))
	}
}
