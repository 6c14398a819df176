package scoring

import "github.com/yourusername/matchodds/internal/models"

// Every transform in this file is pure and monotone in its input, maps
// into [0,1], and has a defined neutral value of 0.5 used when the
// backing signal is absent.

const neutralScore = 0.5

// Rating feeds publish Elo-like values; this fixed range covers every
// club side the feeds track.
const (
	ratingFloor   = 1200.0
	ratingCeiling = 2200.0
)

// Goal rates above this per-match value saturate the attack/defense
// transforms.
const goalRateCeiling = 3.0

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ratingScore maps a rating onto [0,1] by fixed-range linear clamp.
func ratingScore(rating float64) float64 {
	return clamp01((rating - ratingFloor) / (ratingCeiling - ratingFloor))
}

// ppmScore is the points-per-match ratio: fraction of available points won.
func ppmScore(s models.Standing) float64 {
	if s.Played == 0 {
		return neutralScore
	}
	return float64(s.Points) / float64(3*s.Played)
}

// formWeights favor recent results; index 0 is the most recent match.
var formWeights = [...]float64{1.0, 0.85, 0.7, 0.55, 0.4}

// formScore is the recency-weighted average of a form string such as
// "WDLWW" (most recent first): a win counts 1, a draw 0.5, a loss 0.
func formScore(form string) float64 {
	if form == "" {
		return neutralScore
	}
	sum := 0.0
	weightSum := 0.0
	for i := 0; i < len(form) && i < len(formWeights); i++ {
		var v float64
		switch form[i] {
		case 'W', 'w':
			v = 1.0
		case 'D', 'd':
			v = 0.5
		case 'L', 'l':
			v = 0.0
		default:
			continue
		}
		sum += v * formWeights[i]
		weightSum += formWeights[i]
	}
	if weightSum == 0 {
		return neutralScore
	}
	return sum / weightSum
}

// positionScore maps league rank onto [0,1], first place scoring 1.
func positionScore(rank, leagueSize int) float64 {
	if leagueSize < 2 || rank < 1 {
		return neutralScore
	}
	return clamp01(float64(leagueSize-rank) / float64(leagueSize-1))
}

// gdScore maps per-match goal difference onto [0,1] around a 0.5 center.
func gdScore(s models.Standing) float64 {
	if s.Played == 0 {
		return neutralScore
	}
	perMatch := float64(s.GoalDifference()) / float64(s.Played)
	return clamp01(0.5 + perMatch/goalRateCeiling)
}

// attackScore saturates a goals-for rate at goalRateCeiling per match.
func attackScore(rate float64) float64 {
	return clamp01(rate / goalRateCeiling)
}

// defenseScore rewards conceding little.
func defenseScore(rateAgainst float64) float64 {
	return 1 - clamp01(rateAgainst/goalRateCeiling)
}

// impliedProbabilities converts three-way decimal prices into fair
// probabilities by stripping the bookmaker's overround.
func impliedProbabilities(o models.MarketOdds) (home, draw, away float64) {
	rawH := 1.0 / o.Home
	rawD := 1.0 / o.Draw
	rawA := 1.0 / o.Away
	total := rawH + rawD + rawA
	return rawH / total, rawD / total, rawA / total
}

// oddsScore reduces fair win probabilities to a two-sided comparison.
func oddsScore(o models.MarketOdds) (home, away float64) {
	pH, _, pA := impliedProbabilities(o)
	return pH / (pH + pA), pA / (pH + pA)
}

// fatigueScore blends rest since the last match with trailing fixture
// congestion. Seven or more days of rest is fully rested; ten matches in
// thirty days is full congestion.
func fatigueScore(f models.ScheduleFatigue) float64 {
	rest := clamp01(float64(f.DaysSinceLastMatch) / 7.0)
	congestion := clamp01(float64(f.MatchesLast30Days) / 10.0)
	return clamp01(0.7*rest + 0.3*(1-congestion))
}

// venueScore is the team's win rate at the relevant venue: the home
// side's home record against the away side's away record.
func venueScore(wins, played int) (float64, bool) {
	if played == 0 {
		return neutralScore, false
	}
	return float64(wins) / float64(played), true
}

// cleanSheetScore is the fraction of tracked matches without conceding.
func cleanSheetScore(t models.TacticalProfile) (float64, bool) {
	if t.CleanSheetMatches == 0 {
		return neutralScore, false
	}
	return float64(t.CleanSheets) / float64(t.CleanSheetMatches), true
}

// squadScore maps the squad-quality score onto [0,1] and charges a fixed
// penalty per high-impact absence.
func squadScore(q models.SquadQuality) float64 {
	const absencePenalty = 0.05
	return clamp01(q.Score/100 - absencePenalty*float64(len(q.KeyAbsences)))
}

// h2hScore is the historical share of available points against this
// opponent.
func h2hScore(h models.HeadToHead) float64 {
	if h.Meetings == 0 {
		return neutralScore
	}
	return (float64(h.Wins) + 0.5*float64(h.Draws)) / float64(h.Meetings)
}
