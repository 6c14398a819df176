package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome is the realized or predicted result of a match from the home
// side's perspective.
type Outcome string

const (
	OutcomeHomeWin Outcome = "H"
	OutcomeDraw    Outcome = "D"
	OutcomeAwayWin Outcome = "A"
)

// Outcomes lists the three classes in fixed order: home, draw, away.
// The order doubles as the tie-break precedence when probabilities are equal.
var Outcomes = []Outcome{OutcomeHomeWin, OutcomeDraw, OutcomeAwayWin}

// Match is one row of the chronological match log. Goals of -1 mean the
// match has not been played; zero goals are a real result.
type Match struct {
	ID         uuid.UUID `db:"id" json:"id"`
	LeagueCode string    `db:"league_code" json:"league_code"`
	Season     string    `db:"season" json:"season"`
	Date       time.Time `db:"match_date" json:"date"`

	HomeTeam string `db:"home_team" json:"home_team"`
	AwayTeam string `db:"away_team" json:"away_team"`
	// Canonical join keys as produced by the entity resolver.
	HomeKey string `db:"home_key" json:"home_key"`
	AwayKey string `db:"away_key" json:"away_key"`

	HomeGoals int `db:"home_goals" json:"home_goals"`
	AwayGoals int `db:"away_goals" json:"away_goals"`

	HalfTimeHomeGoals int     `db:"ht_home_goals" json:"ht_home_goals"`
	HalfTimeAwayGoals int     `db:"ht_away_goals" json:"ht_away_goals"`
	Referee           *string `db:"referee" json:"referee,omitempty"`

	HomeShotsOnTarget *int `db:"home_shots_on_target" json:"home_shots_on_target,omitempty"`
	AwayShotsOnTarget *int `db:"away_shots_on_target" json:"away_shots_on_target,omitempty"`
	HomeYellowCards   *int `db:"home_yellow_cards" json:"home_yellow_cards,omitempty"`
	AwayYellowCards   *int `db:"away_yellow_cards" json:"away_yellow_cards,omitempty"`

	// Archived closing prices for this fixture, when the results archive
	// carried them. Nil when unavailable.
	Odds *MarketOdds `db:"-" json:"odds,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewMatch returns a match with goal fields set to the unplayed sentinel.
func NewMatch() *Match {
	return &Match{
		ID:                uuid.New(),
		HomeGoals:         -1,
		AwayGoals:         -1,
		HalfTimeHomeGoals: -1,
		HalfTimeAwayGoals: -1,
	}
}

// Finished reports whether the match has a full-time result.
func (m *Match) Finished() bool {
	return m.HomeGoals >= 0 && m.AwayGoals >= 0
}

// Result returns the realized outcome. Calling Result on an unfinished
// match is a programming error.
func (m *Match) Result() Outcome {
	switch {
	case m.HomeGoals > m.AwayGoals:
		return OutcomeHomeWin
	case m.HomeGoals < m.AwayGoals:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// Involves reports whether the given canonical key plays in this match.
func (m *Match) Involves(key string) bool {
	return m.HomeKey == key || m.AwayKey == key
}

// Opponent returns the canonical key of the other side, or "" when key
// does not play in this match.
func (m *Match) Opponent(key string) string {
	switch key {
	case m.HomeKey:
		return m.AwayKey
	case m.AwayKey:
		return m.HomeKey
	default:
		return ""
	}
}

// ScoreString renders the full-time score, e.g. "2 - 1".
func (m *Match) ScoreString() string {
	if !m.Finished() {
		return ""
	}
	return fmt.Sprintf("%d - %d", m.HomeGoals, m.AwayGoals)
}
