package scoring

import (
	"math"

	"github.com/yourusername/matchodds/internal/models"
)

// Draw probability is modeled independently of the home/away split: a
// bell-shaped function of the edge peaking near the league's typical draw
// rate, pulled toward the market's implied draw when prices exist, then
// boosted additively for contexts that are known to produce draws.
const (
	drawPeakLift   = 0.03
	drawSigma      = 0.25
	drawFloor      = 0.05
	drawCeiling    = 0.40
	marketDrawBias = 0.65

	mutualRelegationBoost = 0.03
	titleDeciderBoost     = 0.02
	derbyBoost            = 0.03
	strictRefereeBoost    = 0.02

	// A referee averaging this many cards with a meaningful sample is
	// treated as statistically strict.
	strictCardsPerMatch    = 4.5
	strictRefereeMinSample = 10
)

// drawProbability computes the draw mass for a fixture. Match-scoped
// signals come from the home bag.
func (e *Engine) drawProbability(edge float64, home models.SignalBag) float64 {
	peak := e.cfg.DrawRate + drawPeakLift
	draw := peak * math.Exp(-(edge*edge)/(2*drawSigma*drawSigma))

	if home.Odds != nil && home.Odds.Valid() {
		_, marketDraw, _ := impliedProbabilities(*home.Odds)
		draw = marketDrawBias*marketDraw + (1-marketDrawBias)*draw
	}

	draw += contextDrawBoost(home.Context)
	draw += refereeDrawBoost(home.Referee)

	return clamp(draw, drawFloor, drawCeiling)
}

func contextDrawBoost(ctx *models.MatchContext) float64 {
	if ctx == nil {
		return 0
	}
	boost := 0.0
	if ctx.HomeStakes == models.StakesRelegation && ctx.AwayStakes == models.StakesRelegation {
		boost += mutualRelegationBoost
	}
	if ctx.HomeStakes == models.StakesTitleRace && ctx.AwayStakes == models.StakesTitleRace {
		boost += titleDeciderBoost
	}
	if ctx.Derby {
		boost += derbyBoost
	}
	return boost
}

func refereeDrawBoost(ref *models.RefereeProfile) float64 {
	if ref == nil || ref.Matches < strictRefereeMinSample {
		return 0
	}
	if ref.CardsPerMatch >= strictCardsPerMatch {
		return strictRefereeBoost
	}
	return 0
}

// splitRemainder divides the non-draw mass between home and away through
// a bounded saturating function of the edge, so no signal strength can
// push either side to certainty.
func splitRemainder(remaining, edge float64) (home, away float64) {
	const beta = 0.25
	share := 0.5 * (1 + math.Tanh(edge/beta))
	return remaining * share, remaining * (1 - share)
}
