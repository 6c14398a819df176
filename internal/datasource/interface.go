// Package datasource fetches historical match results and closing prices
// from external providers and normalizes them for ingestion.
package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DataSource defines the interface for fetching match data from external providers
type DataSource interface {
	// FetchSeason retrieves one league season's completed fixtures.
	FetchSeason(ctx context.Context, leagueCode, season string) ([]MatchData, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// MatchData represents one normalized fixture row from any data source.
// Team names are the provider's raw names; the ingestion service resolves
// them to canonical keys.
type MatchData struct {
	LeagueCode string    `json:"league_code"`
	Season     string    `json:"season"`
	Date       time.Time `json:"date"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`

	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`

	HalfTimeHomeGoals int     `json:"ht_home_goals"`
	HalfTimeAwayGoals int     `json:"ht_away_goals"`
	Referee           *string `json:"referee,omitempty"`

	HomeShotsOnTarget *int `json:"home_shots_on_target,omitempty"`
	AwayShotsOnTarget *int `json:"away_shots_on_target,omitempty"`
	HomeYellowCards   *int `json:"home_yellow_cards,omitempty"`
	AwayYellowCards   *int `json:"away_yellow_cards,omitempty"`

	// Closing 1X2 prices when the archive carried them. Parsed as exact
	// decimals; consumers convert at the last step.
	HomePrice *decimal.Decimal `json:"home_price,omitempty"`
	DrawPrice *decimal.Decimal `json:"draw_price,omitempty"`
	AwayPrice *decimal.Decimal `json:"away_price,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// HasOdds reports whether the row carries a complete set of 1X2 prices.
func (m *MatchData) HasOdds() bool {
	return m.HomePrice != nil && m.DrawPrice != nil && m.AwayPrice != nil
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
)

// Error constructors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrNotFound          = errors.New("data not found")
	ErrInvalidData       = errors.New("invalid data format")
	ErrNetworkError      = errors.New("network error")
	ErrServerError       = errors.New("server error")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
