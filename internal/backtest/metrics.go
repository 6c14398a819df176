package backtest

import (
	"math"

	"github.com/yourusername/matchodds/internal/models"
)

// logLossFloor keeps a zero predicted probability from producing an
// infinite log-loss.
const logLossFloor = 1e-15

// Metrics summarizes how honest and how accurate a run's predictions were.
type Metrics struct {
	Fixtures int     `json:"fixtures"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
	// PerOutcome holds, for each realized outcome class, how often the
	// model predicted that class when it occurred.
	PerOutcome map[models.Outcome]OutcomeAccuracy `json:"per_outcome"`
	// Brier is the mean squared error between the probability vector and
	// the one-hot realized outcome, summed across all three classes.
	Brier float64 `json:"brier"`
	// LogLoss is the mean negative log-likelihood of the realized class.
	LogLoss float64 `json:"log_loss"`
	// Reliability buckets every per-class predicted probability and
	// compares mean prediction with observed hit rate.
	Reliability []ReliabilityBucket `json:"reliability"`
}

// OutcomeAccuracy is per-class recall.
type OutcomeAccuracy struct {
	Occurred  int     `json:"occurred"`
	Predicted int     `json:"predicted"`
	Correct   int     `json:"correct"`
	Recall    float64 `json:"recall"`
}

// Compute derives all metrics from an append-only record list.
func Compute(records []models.OutcomeRecord) Metrics {
	m := Metrics{
		Fixtures:   len(records),
		PerOutcome: map[models.Outcome]OutcomeAccuracy{},
	}
	if len(records) == 0 {
		return m
	}

	brierSum := 0.0
	logLossSum := 0.0
	for _, r := range records {
		if r.Correct() {
			m.Correct++
		}

		actual := m.PerOutcome[r.Actual]
		actual.Occurred++
		if r.Correct() {
			actual.Correct++
		}
		m.PerOutcome[r.Actual] = actual

		predicted := m.PerOutcome[r.Predicted]
		predicted.Predicted++
		m.PerOutcome[r.Predicted] = predicted

		for _, class := range models.Outcomes {
			p := r.Dist.Prob(class)
			onehot := 0.0
			if class == r.Actual {
				onehot = 1.0
			}
			brierSum += (p - onehot) * (p - onehot)
		}

		pActual := r.Dist.Prob(r.Actual)
		if pActual < logLossFloor {
			pActual = logLossFloor
		}
		logLossSum += -math.Log(pActual)
	}

	n := float64(len(records))
	m.Accuracy = float64(m.Correct) / n
	m.Brier = brierSum / n
	m.LogLoss = logLossSum / n

	for class, acc := range m.PerOutcome {
		if acc.Occurred > 0 {
			acc.Recall = float64(acc.Correct) / float64(acc.Occurred)
		}
		m.PerOutcome[class] = acc
	}

	m.Reliability = BuildReliability(records)
	return m
}
