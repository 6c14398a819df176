package scoring

import (
	"fmt"

	"github.com/yourusername/matchodds/internal/models"
)

// factorInput is one factor's evaluation before weights are applied.
type factorInput struct {
	name      string
	label     string
	homeValue string
	awayValue string
	homeScore float64
	awayScore float64
	missing   bool
}

func neutralFactor(name, label string) factorInput {
	return factorInput{
		name:      name,
		label:     label,
		homeValue: "n/a",
		awayValue: "n/a",
		homeScore: neutralScore,
		awayScore: neutralScore,
		missing:   true,
	}
}

// evaluateFactors builds the full factor list for a fixture. Order is
// fixed so output is deterministic. Match-scoped signals (odds, referee,
// context) are read from the home bag.
func (e *Engine) evaluateFactors(home, away models.SignalBag) []factorInput {
	return []factorInput{
		e.marketOddsFactor(home),
		e.positionFactor(home, away),
		e.ppmFactor(home, away),
		e.formFactor(home, away),
		e.gdFactor(home, away),
		e.attackFactor(home, away),
		e.defenseFactor(home, away),
		e.ratingFactor(home, away),
		e.squadFactor(home, away),
		e.homeAdvantageFactor(home, away),
		e.fatigueFactor(home, away),
		e.scheduleFactor(home, away),
		e.h2hFactor(home, away),
		e.cleanSheetFactor(home, away),
	}
}

func (e *Engine) marketOddsFactor(home models.SignalBag) factorInput {
	if home.Odds == nil || !home.Odds.Valid() {
		return neutralFactor(FactorMarketOdds, "Market odds")
	}
	h, a := oddsScore(*home.Odds)
	return factorInput{
		name:      FactorMarketOdds,
		label:     "Market odds",
		homeValue: fmt.Sprintf("%.2f", home.Odds.Home),
		awayValue: fmt.Sprintf("%.2f", home.Odds.Away),
		homeScore: h,
		awayScore: a,
	}
}

func (e *Engine) positionFactor(home, away models.SignalBag) factorInput {
	h, a := home.Standing, away.Standing
	return factorInput{
		name:      FactorLeaguePosition,
		label:     "League position",
		homeValue: ordinal(h.Rank),
		awayValue: ordinal(a.Rank),
		homeScore: positionScore(h.Rank, e.cfg.LeagueSize),
		awayScore: positionScore(a.Rank, e.cfg.LeagueSize),
	}
}

func (e *Engine) ppmFactor(home, away models.SignalBag) factorInput {
	h, a := home.Standing, away.Standing
	return factorInput{
		name:      FactorPointsPerMatch,
		label:     "Points per match",
		homeValue: fmt.Sprintf("%.2f", h.PointsPerMatch()),
		awayValue: fmt.Sprintf("%.2f", a.PointsPerMatch()),
		homeScore: ppmScore(*h),
		awayScore: ppmScore(*a),
	}
}

func (e *Engine) formFactor(home, away models.SignalBag) factorInput {
	h, a := home.Standing.Form, away.Standing.Form
	if h == "" && a == "" {
		return neutralFactor(FactorRecentForm, "Recent form")
	}
	return factorInput{
		name:      FactorRecentForm,
		label:     "Recent form",
		homeValue: orDash(h),
		awayValue: orDash(a),
		homeScore: formScore(h),
		awayScore: formScore(a),
	}
}

func (e *Engine) gdFactor(home, away models.SignalBag) factorInput {
	h, a := home.Standing, away.Standing
	return factorInput{
		name:      FactorGoalDifference,
		label:     "Goal difference",
		homeValue: fmt.Sprintf("%+d", h.GoalDifference()),
		awayValue: fmt.Sprintf("%+d", a.GoalDifference()),
		homeScore: gdScore(*h),
		awayScore: gdScore(*a),
	}
}

func (e *Engine) attackFactor(home, away models.SignalBag) factorInput {
	if home.XG == nil || away.XG == nil {
		return neutralFactor(FactorAttackEfficiency, "Attack efficiency (xG)")
	}
	return factorInput{
		name:      FactorAttackEfficiency,
		label:     "Attack efficiency (xG)",
		homeValue: fmt.Sprintf("%.2f/match", home.XG.Recent5For),
		awayValue: fmt.Sprintf("%.2f/match", away.XG.Recent5For),
		homeScore: attackScore(home.XG.Recent5For),
		awayScore: attackScore(away.XG.Recent5For),
	}
}

func (e *Engine) defenseFactor(home, away models.SignalBag) factorInput {
	if home.XG == nil || away.XG == nil {
		return neutralFactor(FactorDefenseEfficiency, "Defense efficiency (xGA)")
	}
	return factorInput{
		name:      FactorDefenseEfficiency,
		label:     "Defense efficiency (xGA)",
		homeValue: fmt.Sprintf("%.2f/match", home.XG.Recent5Against),
		awayValue: fmt.Sprintf("%.2f/match", away.XG.Recent5Against),
		homeScore: defenseScore(home.XG.Recent5Against),
		awayScore: defenseScore(away.XG.Recent5Against),
	}
}

func (e *Engine) ratingFactor(home, away models.SignalBag) factorInput {
	if home.Rating == nil || away.Rating == nil {
		return neutralFactor(FactorTeamRating, "Team rating")
	}
	return factorInput{
		name:      FactorTeamRating,
		label:     "Team rating",
		homeValue: fmt.Sprintf("%.0f", home.Rating.Value),
		awayValue: fmt.Sprintf("%.0f", away.Rating.Value),
		homeScore: ratingScore(home.Rating.Value),
		awayScore: ratingScore(away.Rating.Value),
	}
}

func (e *Engine) squadFactor(home, away models.SignalBag) factorInput {
	if home.Squad == nil || away.Squad == nil {
		return neutralFactor(FactorSquadQuality, "Squad quality")
	}
	return factorInput{
		name:      FactorSquadQuality,
		label:     "Squad quality",
		homeValue: squadValue(*home.Squad),
		awayValue: squadValue(*away.Squad),
		homeScore: squadScore(*home.Squad),
		awayScore: squadScore(*away.Squad),
	}
}

func squadValue(q models.SquadQuality) string {
	if len(q.KeyAbsences) == 0 {
		return fmt.Sprintf("%.0f", q.Score)
	}
	return fmt.Sprintf("%.0f (%d out)", q.Score, len(q.KeyAbsences))
}

func (e *Engine) homeAdvantageFactor(home, away models.SignalBag) factorInput {
	if home.Tactics == nil || away.Tactics == nil {
		return neutralFactor(FactorHomeAdvantage, "Venue record")
	}
	h, hok := venueScore(home.Tactics.HomeWins, home.Tactics.HomePlayed)
	a, aok := venueScore(away.Tactics.AwayWins, away.Tactics.AwayPlayed)
	if !hok && !aok {
		return neutralFactor(FactorHomeAdvantage, "Venue record")
	}
	return factorInput{
		name:      FactorHomeAdvantage,
		label:     "Venue record",
		homeValue: fmt.Sprintf("%dW/%d at home", home.Tactics.HomeWins, home.Tactics.HomePlayed),
		awayValue: fmt.Sprintf("%dW/%d away", away.Tactics.AwayWins, away.Tactics.AwayPlayed),
		homeScore: h,
		awayScore: a,
	}
}

func (e *Engine) fatigueFactor(home, away models.SignalBag) factorInput {
	if home.Fatigue == nil || away.Fatigue == nil {
		return neutralFactor(FactorFatigue, "Schedule fatigue")
	}
	return factorInput{
		name:      FactorFatigue,
		label:     "Schedule fatigue",
		homeValue: fmt.Sprintf("%dd rest, %d in 30d", home.Fatigue.DaysSinceLastMatch, home.Fatigue.MatchesLast30Days),
		awayValue: fmt.Sprintf("%dd rest, %d in 30d", away.Fatigue.DaysSinceLastMatch, away.Fatigue.MatchesLast30Days),
		homeScore: fatigueScore(*home.Fatigue),
		awayScore: fatigueScore(*away.Fatigue),
	}
}

func (e *Engine) scheduleFactor(home, away models.SignalBag) factorInput {
	if home.Schedule == nil || away.Schedule == nil {
		return neutralFactor(FactorScheduleDifficulty, "Schedule difficulty")
	}
	return factorInput{
		name:      FactorScheduleDifficulty,
		label:     "Schedule difficulty",
		homeValue: fmt.Sprintf("%.2f", home.Schedule.Difficulty),
		awayValue: fmt.Sprintf("%.2f", away.Schedule.Difficulty),
		homeScore: clamp01(home.Schedule.Difficulty),
		awayScore: clamp01(away.Schedule.Difficulty),
	}
}

func (e *Engine) h2hFactor(home, away models.SignalBag) factorInput {
	if home.H2H == nil || away.H2H == nil || home.H2H.Meetings == 0 {
		return neutralFactor(FactorHeadToHead, "Head to head")
	}
	return factorInput{
		name:      FactorHeadToHead,
		label:     "Head to head",
		homeValue: fmt.Sprintf("%dW %dD %dL", home.H2H.Wins, home.H2H.Draws, home.H2H.Losses),
		awayValue: fmt.Sprintf("%dW %dD %dL", away.H2H.Wins, away.H2H.Draws, away.H2H.Losses),
		homeScore: h2hScore(*home.H2H),
		awayScore: h2hScore(*away.H2H),
	}
}

func (e *Engine) cleanSheetFactor(home, away models.SignalBag) factorInput {
	if home.Tactics == nil || away.Tactics == nil {
		return neutralFactor(FactorCleanSheets, "Clean sheets")
	}
	h, hok := cleanSheetScore(*home.Tactics)
	a, aok := cleanSheetScore(*away.Tactics)
	if !hok && !aok {
		return neutralFactor(FactorCleanSheets, "Clean sheets")
	}
	return factorInput{
		name:      FactorCleanSheets,
		label:     "Clean sheets",
		homeValue: fmt.Sprintf("%d/%d", home.Tactics.CleanSheets, home.Tactics.CleanSheetMatches),
		awayValue: fmt.Sprintf("%d/%d", away.Tactics.CleanSheets, away.Tactics.CleanSheetMatches),
		homeScore: h,
		awayScore: a,
	}
}

func ordinal(n int) string {
	if n <= 0 {
		return "-"
	}
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
