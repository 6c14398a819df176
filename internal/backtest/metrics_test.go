package backtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/matchodds/internal/models"
)

func record(home, draw, away int, actual models.Outcome) models.OutcomeRecord {
	dist := models.Distribution{Home: home, Draw: draw, Away: away}
	return models.OutcomeRecord{
		Dist:      dist,
		Predicted: dist.Predicted(),
		Actual:    actual,
	}
}

// TestComputeEmpty tests the zero-record case
func TestComputeEmpty(t *testing.T) {
	m := Compute(nil)
	assert.Zero(t, m.Fixtures)
	assert.Zero(t, m.Accuracy)
	assert.Empty(t, m.PerOutcome)
}

// TestComputePerfectPredictions tests the best-case scores
func TestComputePerfectPredictions(t *testing.T) {
	records := []models.OutcomeRecord{
		record(100, 0, 0, models.OutcomeHomeWin),
		record(0, 100, 0, models.OutcomeDraw),
		record(0, 0, 100, models.OutcomeAwayWin),
	}

	m := Compute(records)
	assert.Equal(t, 3, m.Fixtures)
	assert.Equal(t, 3, m.Correct)
	assert.Equal(t, 1.0, m.Accuracy)
	assert.InDelta(t, 0.0, m.Brier, 1e-12)
	assert.InDelta(t, 0.0, m.LogLoss, 1e-12)
}

// TestComputeBrierAndLogLoss tests the hand-computed scoring rules
func TestComputeBrierAndLogLoss(t *testing.T) {
	// Home realized at 50%: (0.5-1)^2 + 0.3^2 + 0.2^2 = 0.38.
	m := Compute([]models.OutcomeRecord{record(50, 30, 20, models.OutcomeHomeWin)})

	assert.InDelta(t, 0.38, m.Brier, 1e-12)
	assert.InDelta(t, -math.Log(0.5), m.LogLoss, 1e-12)
}

// TestComputeLogLossFloor tests that a zero on the realized class stays
// finite
func TestComputeLogLossFloor(t *testing.T) {
	m := Compute([]models.OutcomeRecord{record(0, 100, 0, models.OutcomeHomeWin)})

	assert.False(t, math.IsInf(m.LogLoss, 1))
	assert.InDelta(t, -math.Log(logLossFloor), m.LogLoss, 1e-6)
}

// TestComputePerOutcome tests per-class occurrence, prediction and recall
// tallies
func TestComputePerOutcome(t *testing.T) {
	records := []models.OutcomeRecord{
		record(60, 25, 15, models.OutcomeHomeWin),
		record(55, 25, 20, models.OutcomeDraw),
		record(20, 30, 50, models.OutcomeAwayWin),
		record(45, 30, 25, models.OutcomeHomeWin),
	}

	m := Compute(records)
	require.Equal(t, 4, m.Fixtures)
	assert.Equal(t, 3, m.Correct)
	assert.InDelta(t, 0.75, m.Accuracy, 1e-12)

	homes := m.PerOutcome[models.OutcomeHomeWin]
	assert.Equal(t, 2, homes.Occurred)
	assert.Equal(t, 3, homes.Predicted)
	assert.Equal(t, 2, homes.Correct)
	assert.Equal(t, 1.0, homes.Recall)

	draws := m.PerOutcome[models.OutcomeDraw]
	assert.Equal(t, 1, draws.Occurred)
	assert.Equal(t, 0, draws.Predicted)
	assert.Zero(t, draws.Recall)

	aways := m.PerOutcome[models.OutcomeAwayWin]
	assert.Equal(t, 1, aways.Occurred)
	assert.Equal(t, 1, aways.Predicted)
	assert.Equal(t, 1.0, aways.Recall)
}

// TestBuildReliabilityPartition tests that every per-class probability
// lands in exactly one bucket
func TestBuildReliabilityPartition(t *testing.T) {
	records := []models.OutcomeRecord{
		record(50, 30, 20, models.OutcomeHomeWin),
		record(45, 28, 27, models.OutcomeDraw),
		record(10, 20, 70, models.OutcomeAwayWin),
		record(100, 0, 0, models.OutcomeHomeWin),
	}

	buckets := BuildReliability(records)
	require.Len(t, buckets, 10)

	total := 0
	for i, b := range buckets {
		total += b.Observations
		assert.InDelta(t, float64(i)/10, b.Lo, 1e-12)
		assert.InDelta(t, float64(i+1)/10, b.Hi, 1e-12)
		if b.Observations > 0 {
			assert.GreaterOrEqual(t, b.MeanPredicted, b.Lo)
			assert.GreaterOrEqual(t, b.HitRate, 0.0)
			assert.LessOrEqual(t, b.HitRate, 1.0)
		}
	}
	assert.Equal(t, 3*len(records), total)
}

// TestBuildReliabilityTopBucket tests that probability 1.0 closes into
// the last bucket rather than overflowing
func TestBuildReliabilityTopBucket(t *testing.T) {
	buckets := BuildReliability([]models.OutcomeRecord{record(100, 0, 0, models.OutcomeHomeWin)})

	last := buckets[len(buckets)-1]
	assert.Equal(t, 1, last.Observations)
	assert.Equal(t, 1.0, last.MeanPredicted)
	assert.Equal(t, 1.0, last.HitRate)
}
