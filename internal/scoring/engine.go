// Package scoring combines weighted, differently-scaled signals for two
// resolved teams into a calibrated three-way outcome distribution with an
// itemized, auditable factor breakdown. The engine is a pure function of
// its inputs: no I/O, no hidden state, no time dependence.
package scoring

import (
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/matchodds/internal/metrics"
	"github.com/yourusername/matchodds/internal/models"
)

// Plausible probability ranges applied before normalization. Without
// market odds the model's own edge is noisier, so the ranges tighten.
var (
	sideRangeWithOdds    = [2]float64{0.05, 0.85}
	sideRangeWithoutOdds = [2]float64{0.10, 0.72}
	drawRangeWithOdds    = [2]float64{0.05, 0.40}
	drawRangeWithoutOdds = [2]float64{0.12, 0.38}
)

// neutralFallback is the documented distribution substituted when a
// numerical degeneracy is detected. It keeps the customary home tilt.
var neutralFallback = models.Distribution{Home: 40, Draw: 25, Away: 35}

// Config parametrizes an Engine for one league.
type Config struct {
	// Weights are the baseline factor weights; nil uses DefaultWeights.
	Weights Weights
	// DrawRate is the league's typical draw share, e.g. 0.26.
	DrawRate float64
	// LeagueSize is the number of teams, used by the position transform.
	LeagueSize int
}

// Engine scores fixtures. Safe for concurrent use: scoring reads only
// engine configuration and its arguments.
type Engine struct {
	cfg    Config
	logger *logrus.Logger
}

// NewEngine validates the configuration and returns a ready engine.
func NewEngine(cfg Config, logger *logrus.Logger) (*Engine, error) {
	if cfg.Weights == nil {
		cfg.Weights = DefaultWeights()
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if cfg.DrawRate <= 0 {
		cfg.DrawRate = 0.26
	}
	if cfg.LeagueSize < 2 {
		cfg.LeagueSize = 20
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{cfg: cfg, logger: logger}, nil
}

// Score produces the outcome distribution and the factor breakdown for a
// fixture. Only the two standings records are mandatory; every other
// missing signal degrades its factor to neutral and redistributes its
// weight. Identical inputs always yield identical output.
func (e *Engine) Score(home, away models.SignalBag) (models.Distribution, []models.Factor, error) {
	if home.Standing == nil || away.Standing == nil {
		return models.Distribution{}, nil, models.ErrMissingStandings
	}

	inputs := e.evaluateFactors(home, away)

	missing := map[string]bool{}
	for _, f := range inputs {
		if f.missing {
			missing[f.name] = true
		}
	}
	applied := Redistribute(e.cfg.Weights, missing)

	edge := 0.0
	factors := make([]models.Factor, 0, len(inputs))
	for _, f := range inputs {
		w := applied[f.name]
		edge += w * (f.homeScore - f.awayScore)
		factors = append(factors, models.Factor{
			Name:      f.name,
			Label:     f.label,
			HomeValue: f.homeValue,
			AwayValue: f.awayValue,
			HomeScore: f.homeScore,
			AwayScore: f.awayScore,
			Weight:    w,
			Missing:   f.missing,
		})
	}

	hasOdds := home.Odds != nil && home.Odds.Valid()
	pDraw := e.drawProbability(edge, home)
	pHome, pAway := splitRemainder(1-pDraw, edge)

	sideRange, drawRange := sideRangeWithoutOdds, drawRangeWithoutOdds
	if hasOdds {
		sideRange, drawRange = sideRangeWithOdds, drawRangeWithOdds
	}

	sum := pHome + pDraw + pAway
	if !finite(edge) || !finite(sum) || sum <= 0 {
		e.logger.WithFields(logrus.Fields{
			"edge": edge,
			"home": pHome,
			"draw": pDraw,
			"away": pAway,
		}).Warn("Non-finite intermediate in scoring, using neutral fallback")
		metrics.ScoringAnomaliesTotal.Inc()
		return neutralFallback, factors, nil
	}

	pHome, pDraw, pAway = fitRanges(pHome, pDraw, pAway, sideRange, drawRange)
	dist := toDistribution(pHome, pDraw, pAway)
	metrics.PredictionsScoredTotal.Inc()
	return dist, factors, nil
}

// fitRanges normalizes the three probabilities and forces each into its
// plausible range, handing the surplus or deficit to the outcomes with
// headroom. The ranges are jointly feasible (lower bounds sum below 1,
// upper bounds above), so redistribution converges inside the ranges and
// the result still sums to 1.
func fitRanges(pHome, pDraw, pAway float64, sideRange, drawRange [2]float64) (float64, float64, float64) {
	sum := pHome + pDraw + pAway
	probs := [3]float64{pHome / sum, pDraw / sum, pAway / sum}
	ranges := [3][2]float64{sideRange, drawRange, sideRange}

	for iter := 0; iter < 4; iter++ {
		for i := range probs {
			probs[i] = clamp(probs[i], ranges[i][0], ranges[i][1])
		}
		diff := 1 - (probs[0] + probs[1] + probs[2])
		if math.Abs(diff) < 1e-9 {
			break
		}

		var headroom [3]float64
		total := 0.0
		for i := range probs {
			if diff > 0 {
				headroom[i] = ranges[i][1] - probs[i]
			} else {
				headroom[i] = probs[i] - ranges[i][0]
			}
			total += headroom[i]
		}
		if total <= 0 {
			break
		}
		for i := range probs {
			probs[i] += diff * headroom[i] / total
		}
	}
	return probs[0], probs[1], probs[2]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
