package oddsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://api.the-odds-api.com"

// Sentinel errors for the two recoverable failure modes of a fetch. Callers
// distinguish them with errors.Is; both abort the ingestion run with no
// partial writes.
var (
	ErrProviderUnavailable = errors.New("odds provider unavailable")
	ErrMalformedResponse   = errors.New("malformed odds response")
)

// SportKey identifies a sport in the provider's catalogue.
type SportKey string

const (
	SportSoccerEPL     SportKey = "soccer_epl"
	SportBasketballNBA SportKey = "basketball_nba"
	SportFootballNFL   SportKey = "americanfootball_nfl"
)

// Valid reports whether k is one of the supported sports.
func (k SportKey) Valid() bool {
	switch k {
	case SportSoccerEPL, SportBasketballNBA, SportFootballNFL:
		return true
	}
	return false
}

// MarketKey identifies a market type in the provider's catalogue.
type MarketKey string

const (
	MarketH2H     MarketKey = "h2h"
	MarketSpreads MarketKey = "spreads"
	MarketTotals  MarketKey = "totals"
)

// Valid reports whether k is one of the supported market types.
func (k MarketKey) Valid() bool {
	switch k {
	case MarketH2H, MarketSpreads, MarketTotals:
		return true
	}
	return false
}

// Sports and Markets enumerate the scopes the pipeline is allowed to fetch.
var (
	Sports  = []SportKey{SportSoccerEPL, SportBasketballNBA, SportFootballNFL}
	Markets = []MarketKey{MarketH2H, MarketSpreads, MarketTotals}
)

// Game is one event in a provider response. CommenceTime is epoch seconds
// (dateFormat=unix).
type Game struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime int64       `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one sportsbook's set of markets for a game.
type Bookmaker struct {
	Key        string            `json:"key"`
	Title      string            `json:"title"`
	LastUpdate int64             `json:"last_update"`
	Markets    []BookmakerMarket `json:"markets"`
}

// BookmakerMarket is one market type's outcomes at one bookmaker.
type BookmakerMarket struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is a single priced side. Price is american odds; Point is the
// spread or total line and is absent for moneyline.
type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// Client fetches odds from the provider's v4 REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates an odds API client. An empty baseURL selects the
// production endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// FetchOdds fetches the current odds for one (sport, market) scope. The
// response is a JSON array of games, each carrying every bookmaker's outcomes
// for the requested market type.
func (c *Client) FetchOdds(ctx context.Context, sport SportKey, market MarketKey) ([]Game, error) {
	if !sport.Valid() {
		return nil, fmt.Errorf("unknown sport key %q", sport)
	}
	if !market.Valid() {
		return nil, fmt.Errorf("unknown market key %q", market)
	}

	params := url.Values{}
	params.Set("regions", "us")
	params.Set("markets", string(market))
	params.Set("oddsFormat", "american")
	params.Set("dateFormat", "unix")
	params.Set("api_key", c.apiKey)

	endpoint := fmt.Sprintf("%s/v4/sports/%s/odds?%s", c.baseURL, sport, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d - %s", ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	var games []Game
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return games, nil
}
