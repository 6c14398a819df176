package models

import "time"

// Distribution is a three-way outcome probability as integer percentages.
// Invariant: Home + Draw + Away == 100 exactly.
type Distribution struct {
	Home int `json:"home"`
	Draw int `json:"draw"`
	Away int `json:"away"`
}

// Sum returns the total percentage, 100 for any valid distribution.
func (d Distribution) Sum() int {
	return d.Home + d.Draw + d.Away
}

// Predicted returns the arg-max outcome. Ties resolve in the fixed order
// home, draw, away.
func (d Distribution) Predicted() Outcome {
	best := OutcomeHomeWin
	bestPct := d.Home
	if d.Draw > bestPct {
		best, bestPct = OutcomeDraw, d.Draw
	}
	if d.Away > bestPct {
		best = OutcomeAwayWin
	}
	return best
}

// Prob returns the probability of the given class in [0,1].
func (d Distribution) Prob(o Outcome) float64 {
	switch o {
	case OutcomeHomeWin:
		return float64(d.Home) / 100
	case OutcomeAwayWin:
		return float64(d.Away) / 100
	default:
		return float64(d.Draw) / 100
	}
}

// Factor is one weighted comparison that contributed to a score. The list
// of factors returned alongside a distribution fully reproduces the
// inputs that produced it.
type Factor struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	// Human-readable raw values per side, e.g. "3rd (58 pts)".
	HomeValue string `json:"home_value"`
	AwayValue string `json:"away_value"`
	// Per-side goodness in [0,1] after the factor's transform.
	HomeScore float64 `json:"home_score"`
	AwayScore float64 `json:"away_score"`
	// Weight actually applied in this invocation, after redistribution.
	Weight float64 `json:"weight"`
	// Missing marks a factor that fell back to neutral for lack of signal.
	Missing bool `json:"missing,omitempty"`
}

// OutcomeRecord pairs a realized result with the distribution the model
// produced before seeing it. Records are append-only.
type OutcomeRecord struct {
	MatchIndex int          `json:"match_index"`
	Date       time.Time    `json:"date"`
	HomeTeam   string       `json:"home_team"`
	AwayTeam   string       `json:"away_team"`
	Dist       Distribution `json:"distribution"`
	Predicted  Outcome      `json:"predicted"`
	Actual     Outcome      `json:"actual"`
}

// Correct reports whether the predicted label matched the realized one.
func (r OutcomeRecord) Correct() bool {
	return r.Predicted == r.Actual
}
