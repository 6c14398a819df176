// Package signals is the adapter boundary between loosely-shaped provider
// payloads and the strict SignalBag the scoring engine consumes. Provider
// identity is only ever branched on here; the core never sees it.
package signals

import "github.com/yourusername/matchodds/internal/models"

// Provider identifies one upstream feed.
type Provider string

const (
	ProviderRatings  Provider = "ratings"
	ProviderXG       Provider = "xg"
	ProviderOddsAPI  Provider = "odds_api"
	ProviderFixtures Provider = "fixtures"
	ProviderLineups  Provider = "lineups"
	ProviderInjuries Provider = "injuries"
	ProviderNews     Provider = "news"
)

// Payload is a small tagged union: Provider selects which of the pointer
// fields is populated. Team carries the provider-native team name, which
// still needs resolving before the payload may be merged.
type Payload struct {
	Provider Provider `json:"provider"`
	Team     string   `json:"team,omitempty"`

	Rating  *RatingPayload  `json:"rating,omitempty"`
	XG      *XGPayload      `json:"xg,omitempty"`
	Odds    *OddsPayload    `json:"odds,omitempty"`
	Fatigue *FatiguePayload `json:"fatigue,omitempty"`
	Tactics *TacticsPayload `json:"tactics,omitempty"`
	Context *ContextPayload `json:"context,omitempty"`
	Referee *RefereePayload `json:"referee,omitempty"`
	Squad   *SquadPayload   `json:"squad,omitempty"`
}

// RatingPayload mirrors the rating feed's response shape.
type RatingPayload struct {
	Rating float64 `json:"rating"`
	Source string  `json:"source"`
}

// XGPayload mirrors the expected-goals feed.
type XGPayload struct {
	SeasonFor      float64 `json:"season_xg_for"`
	SeasonAgainst  float64 `json:"season_xg_against"`
	Recent5For     float64 `json:"recent5_xg_for"`
	Recent5Against float64 `json:"recent5_xg_against"`
}

// OddsPayload mirrors the market-odds feed: three decimal prices plus the
// bookmaker label.
type OddsPayload struct {
	Home   float64 `json:"home"`
	Draw   float64 `json:"draw"`
	Away   float64 `json:"away"`
	Source string  `json:"source"`
}

// FatiguePayload mirrors the fixtures feed's congestion summary.
type FatiguePayload struct {
	DaysSinceLastMatch int `json:"days_since_last_match"`
	DaysUntilNextMatch int `json:"days_until_next_match"`
	MatchesLast30Days  int `json:"matches_last_30_days"`
}

// TacticsPayload mirrors the lineup/formation feed.
type TacticsPayload struct {
	Formation              string `json:"formation"`
	HomeWins               int    `json:"home_wins"`
	HomePlayed             int    `json:"home_played"`
	AwayWins               int    `json:"away_wins"`
	AwayPlayed             int    `json:"away_played"`
	CleanSheets            int    `json:"clean_sheets"`
	CleanSheetMatches      int    `json:"clean_sheet_matches"`
	GoalsAgainstFirstHalf  int    `json:"goals_against_first_half"`
	GoalsAgainstSecondHalf int    `json:"goals_against_second_half"`
}

// ContextPayload mirrors the news feed's stakes classification.
type ContextPayload struct {
	HomeStakes string `json:"home_stakes"`
	AwayStakes string `json:"away_stakes"`
	Derby      bool   `json:"derby"`
}

// RefereePayload mirrors the match-official feed.
type RefereePayload struct {
	Name              string  `json:"name"`
	CardsPerMatch     float64 `json:"cards_per_match"`
	PenaltiesPerMatch float64 `json:"penalties_per_match"`
	Matches           int     `json:"matches"`
}

// SquadPayload mirrors the injuries/squad feed.
type SquadPayload struct {
	Score       float64  `json:"score"`
	KeyAbsences []string `json:"key_absences"`
}

// apply converts the loose payload into the strict signal types on the
// bag. Unknown or empty payloads are ignored rather than errored.
func (p Payload) apply(bag *models.SignalBag) {
	switch p.Provider {
	case ProviderRatings:
		if p.Rating != nil {
			bag.Rating = &models.Rating{Value: p.Rating.Rating, Source: p.Rating.Source}
		}
	case ProviderXG:
		if p.XG != nil {
			bag.XG = &models.ExpectedGoals{
				SeasonFor:      p.XG.SeasonFor,
				SeasonAgainst:  p.XG.SeasonAgainst,
				Recent5For:     p.XG.Recent5For,
				Recent5Against: p.XG.Recent5Against,
			}
		}
	case ProviderOddsAPI:
		if p.Odds != nil {
			bag.Odds = &models.MarketOdds{
				Home:   p.Odds.Home,
				Draw:   p.Odds.Draw,
				Away:   p.Odds.Away,
				Source: p.Odds.Source,
			}
		}
	case ProviderFixtures:
		if p.Fatigue != nil {
			bag.Fatigue = &models.ScheduleFatigue{
				DaysSinceLastMatch: p.Fatigue.DaysSinceLastMatch,
				DaysUntilNextMatch: p.Fatigue.DaysUntilNextMatch,
				MatchesLast30Days:  p.Fatigue.MatchesLast30Days,
			}
		}
	case ProviderLineups:
		if p.Tactics != nil {
			bag.Tactics = &models.TacticalProfile{
				PreferredFormation:     p.Tactics.Formation,
				HomeWins:               p.Tactics.HomeWins,
				HomePlayed:             p.Tactics.HomePlayed,
				AwayWins:               p.Tactics.AwayWins,
				AwayPlayed:             p.Tactics.AwayPlayed,
				CleanSheets:            p.Tactics.CleanSheets,
				CleanSheetMatches:      p.Tactics.CleanSheetMatches,
				GoalsAgainstFirstHalf:  p.Tactics.GoalsAgainstFirstHalf,
				GoalsAgainstSecondHalf: p.Tactics.GoalsAgainstSecondHalf,
			}
		}
	case ProviderNews:
		if p.Context != nil {
			bag.Context = &models.MatchContext{
				HomeStakes: models.StakesTier(p.Context.HomeStakes),
				AwayStakes: models.StakesTier(p.Context.AwayStakes),
				Derby:      p.Context.Derby,
			}
		}
		if p.Referee != nil {
			bag.Referee = &models.RefereeProfile{
				Name:              p.Referee.Name,
				CardsPerMatch:     p.Referee.CardsPerMatch,
				PenaltiesPerMatch: p.Referee.PenaltiesPerMatch,
				Matches:           p.Referee.Matches,
			}
		}
	case ProviderInjuries:
		if p.Squad != nil {
			bag.Squad = &models.SquadQuality{
				Score:       p.Squad.Score,
				KeyAbsences: append([]string(nil), p.Squad.KeyAbsences...),
			}
		}
	}
}
