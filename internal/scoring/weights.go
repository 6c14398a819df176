package scoring

import "fmt"

// Factor names. Each factor carries a fixed baseline weight; market odds
// is deliberately the single largest, being empirically the strongest
// predictor available.
const (
	FactorMarketOdds         = "market_odds"
	FactorLeaguePosition     = "league_position"
	FactorPointsPerMatch     = "points_per_match"
	FactorRecentForm         = "recent_form"
	FactorGoalDifference     = "goal_difference"
	FactorAttackEfficiency   = "attack_efficiency"
	FactorDefenseEfficiency  = "defense_efficiency"
	FactorTeamRating         = "team_rating"
	FactorSquadQuality       = "squad_quality"
	FactorHomeAdvantage      = "home_advantage"
	FactorFatigue            = "schedule_fatigue"
	FactorScheduleDifficulty = "schedule_difficulty"
	FactorHeadToHead         = "head_to_head"
	FactorCleanSheets        = "clean_sheets"
)

// Weights maps factor name to baseline weight.
type Weights map[string]float64

// DefaultWeights returns the baseline weights. They sum to exactly 1.0.
func DefaultWeights() Weights {
	return Weights{
		FactorMarketOdds:         0.22,
		FactorLeaguePosition:     0.08,
		FactorPointsPerMatch:     0.07,
		FactorRecentForm:         0.09,
		FactorGoalDifference:     0.06,
		FactorAttackEfficiency:   0.07,
		FactorDefenseEfficiency:  0.07,
		FactorTeamRating:         0.08,
		FactorSquadQuality:       0.06,
		FactorHomeAdvantage:      0.05,
		FactorFatigue:            0.04,
		FactorScheduleDifficulty: 0.04,
		FactorHeadToHead:         0.04,
		FactorCleanSheets:        0.03,
	}
}

// Validate checks that weights are in [0,1] and sum to 1.0 within tolerance.
func (w Weights) Validate() error {
	sum := 0.0
	for name, weight := range w {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("weight for %s out of range: %f", name, weight)
		}
		sum += weight
	}
	if sum < 1-weightTolerance || sum > 1+weightTolerance {
		return fmt.Errorf("weights sum to %f, want 1.0", sum)
	}
	return nil
}

const weightTolerance = 1e-9

// Redistribute returns the applied weights for one invocation: factors in
// the missing set get zero, and every remaining factor is scaled up
// proportionally to its own baseline so the total stays 1.0. Proportional
// (not uniform) scaling keeps noisy factors from gaining ground on strong
// ones when a signal drops out. The relative proportions among surviving
// factors are exactly those of their baselines.
func Redistribute(base Weights, missing map[string]bool) Weights {
	presentSum := 0.0
	for name, w := range base {
		if !missing[name] {
			presentSum += w
		}
	}

	applied := make(Weights, len(base))
	if presentSum <= 0 {
		for name := range base {
			applied[name] = 0
		}
		return applied
	}

	scale := 1.0 / presentSum
	for name, w := range base {
		if missing[name] {
			applied[name] = 0
			continue
		}
		applied[name] = w * scale
	}
	return applied
}
