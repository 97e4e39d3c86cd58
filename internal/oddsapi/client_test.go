package oddsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const samplePayload = `[
  {
    "id": "abc123",
    "sport_key": "soccer_epl",
    "sport_title": "EPL",
    "commence_time": 1736000000,
    "home_team": "Arsenal",
    "away_team": "Chelsea",
    "bookmakers": [
      {
        "key": "draftkings",
        "title": "DraftKings",
        "last_update": 1735990000,
        "markets": [
          {
            "key": "h2h",
            "outcomes": [
              {"name": "Arsenal", "price": -110},
              {"name": "Chelsea", "price": 120}
            ]
          }
        ]
      }
    ]
  }
]`

func TestFetchOddsParsesResponse(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	games, err := client.FetchOdds(context.Background(), SportSoccerEPL, MarketH2H)
	if err != nil {
		t.Fatalf("FetchOdds failed: %v", err)
	}

	if gotPath != "/v4/sports/soccer_epl/odds" {
		t.Errorf("Unexpected request path %q", gotPath)
	}
	for _, want := range []string{"markets=h2h", "oddsFormat=american", "dateFormat=unix", "api_key=test-key", "regions=us"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("Query %q missing %q", gotQuery, want)
		}
	}

	if len(games) != 1 {
		t.Fatalf("Expected 1 game, got %d", len(games))
	}
	game := games[0]
	if game.ID != "abc123" || game.HomeTeam != "Arsenal" {
		t.Errorf("Unexpected game %+v", game)
	}
	if len(game.Bookmakers) != 1 || len(game.Bookmakers[0].Markets[0].Outcomes) != 2 {
		t.Fatalf("Bookmaker structure not parsed: %+v", game.Bookmakers)
	}
	if game.Bookmakers[0].Markets[0].Outcomes[0].Point != nil {
		t.Error("Expected nil point for moneyline outcome")
	}
}

func TestFetchOddsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	_, err := client.FetchOdds(context.Background(), SportSoccerEPL, MarketH2H)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("Expected ErrProviderUnavailable, got %v", err)
	}
}

func TestFetchOddsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	_, err := client.FetchOdds(context.Background(), SportSoccerEPL, MarketH2H)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("Expected ErrMalformedResponse, got %v", err)
	}
}

func TestFetchOddsConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient("test-key", server.URL)
	_, err := client.FetchOdds(context.Background(), SportSoccerEPL, MarketH2H)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("Expected ErrProviderUnavailable, got %v", err)
	}
}

func TestFetchOddsRejectsUnknownKeys(t *testing.T) {
	client := NewClient("test-key", "")

	if _, err := client.FetchOdds(context.Background(), SportKey("esports_lol"), MarketH2H); err == nil {
		t.Error("Expected error for unknown sport")
	}
	if _, err := client.FetchOdds(context.Background(), SportSoccerEPL, MarketKey("outrights")); err == nil {
		t.Error("Expected error for unknown market")
	}
}
