package models

// Typed per-provider signals. Every field on SignalBag other than the
// standings is independently nullable: nil means the provider had nothing
// for this fixture, which must never be conflated with a zero value.

// Rating is a single-float team strength rating from a rating feed.
type Rating struct {
	Value  float64 `json:"value"`
	Source string  `json:"source"`
}

// ExpectedGoals summarizes a team's xG rates for and against, over the
// season and over the most recent five matches.
type ExpectedGoals struct {
	SeasonFor      float64 `json:"season_for"`
	SeasonAgainst  float64 `json:"season_against"`
	Recent5For     float64 `json:"recent5_for"`
	Recent5Against float64 `json:"recent5_against"`
}

// MarketOdds holds three-way decimal prices from a bookmaker or exchange.
// Prices include the bookmaker's margin; consumers strip it.
type MarketOdds struct {
	Home   float64 `json:"home"`
	Draw   float64 `json:"draw"`
	Away   float64 `json:"away"`
	Source string  `json:"source"`
}

// Valid reports whether all three prices are usable decimal odds.
func (o MarketOdds) Valid() bool {
	return o.Home > 1.0 && o.Draw > 1.0 && o.Away > 1.0
}

// ScheduleFatigue summarizes fixture congestion around the match.
type ScheduleFatigue struct {
	DaysSinceLastMatch int `json:"days_since_last_match"`
	DaysUntilNextMatch int `json:"days_until_next_match"`
	MatchesLast30Days  int `json:"matches_last_30_days"`
}

// TacticalProfile carries formation and venue-split records from the
// lineup/formation feed.
type TacticalProfile struct {
	PreferredFormation     string `json:"preferred_formation"`
	HomeWins               int    `json:"home_wins"`
	HomePlayed             int    `json:"home_played"`
	AwayWins               int    `json:"away_wins"`
	AwayPlayed             int    `json:"away_played"`
	CleanSheets            int    `json:"clean_sheets"`
	CleanSheetMatches      int    `json:"clean_sheet_matches"`
	GoalsAgainstFirstHalf  int    `json:"goals_against_first_half"`
	GoalsAgainstSecondHalf int    `json:"goals_against_second_half"`
}

// StakesTier classifies what a match means for one side.
type StakesTier string

const (
	StakesNone       StakesTier = "none"
	StakesEuropean   StakesTier = "european"
	StakesTitleRace  StakesTier = "title_race"
	StakesRelegation StakesTier = "relegation"
)

// MatchContext carries stakes and rivalry flags for the fixture.
type MatchContext struct {
	HomeStakes StakesTier `json:"home_stakes"`
	AwayStakes StakesTier `json:"away_stakes"`
	Derby      bool       `json:"derby"`
}

// RefereeProfile summarizes the appointed official's historical strictness.
type RefereeProfile struct {
	Name              string  `json:"name"`
	CardsPerMatch     float64 `json:"cards_per_match"`
	PenaltiesPerMatch float64 `json:"penalties_per_match"`
	Matches           int     `json:"matches"`
}

// HeadToHead tallies prior meetings between the two sides from a fixed
// perspective (the team the bag belongs to), capped to the most recent N.
type HeadToHead struct {
	Wins     int `json:"wins"`
	Draws    int `json:"draws"`
	Losses   int `json:"losses"`
	Meetings int `json:"meetings"`
}

// SquadQuality scores squad strength in [0,100] with the list of
// high-impact players currently unavailable.
type SquadQuality struct {
	Score       float64  `json:"score"`
	KeyAbsences []string `json:"key_absences,omitempty"`
}

// ScheduleStrength is the strength-of-schedule summary over a team's five
// most recent prior matches.
type ScheduleStrength struct {
	// Difficulty is in [0,1]; facing higher-ranked opposition scores higher.
	Difficulty  float64 `json:"difficulty"`
	OpponentPPM float64 `json:"opponent_ppm"`
}

// SignalBag is the joined, per-team signal set handed to the scoring
// engine. It is immutable after construction: adapters build it, the
// engine only reads it. Standing is the one mandatory field; everything
// else degrades to a neutral factor when nil.
//
// Match-scoped signals (odds, referee, context) are attached identically
// to both bags by the adapter; the engine reads them from the home bag.
type SignalBag struct {
	Standing *Standing
	Rating   *Rating
	XG       *ExpectedGoals
	Odds     *MarketOdds
	Fatigue  *ScheduleFatigue
	Tactics  *TacticalProfile
	Context  *MatchContext
	Referee  *RefereeProfile
	H2H      *HeadToHead
	Squad    *SquadQuality
	Schedule *ScheduleStrength
}
