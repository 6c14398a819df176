package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/matchodds/internal/models"
	"github.com/yourusername/matchodds/internal/scoring"
	"github.com/yourusername/matchodds/internal/signals"
)

func replayMatch(day int, home, away string, hg, ag int) *models.Match {
	return &models.Match{
		LeagueCode: "E0",
		Season:     "2023/24",
		Date:       time.Date(2023, 8, 1, 15, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		HomeTeam:   home,
		AwayTeam:   away,
		HomeKey:    home,
		AwayKey:    away,
		HomeGoals:  hg,
		AwayGoals:  ag,
	}
}

// replayLog is a four-team double round robin, twelve matches in
// chronological order. alpha wins everything at home, the rest mixes
// wins and draws so every outcome class occurs.
func replayLog() []*models.Match {
	return []*models.Match{
		replayMatch(0, "alpha", "beta", 2, 0),
		replayMatch(1, "gamma", "delta", 1, 1),
		replayMatch(7, "alpha", "gamma", 3, 1),
		replayMatch(8, "beta", "delta", 0, 2),
		replayMatch(14, "alpha", "delta", 2, 1),
		replayMatch(15, "beta", "gamma", 1, 1),
		replayMatch(21, "beta", "alpha", 0, 1),
		replayMatch(22, "delta", "gamma", 2, 0),
		replayMatch(28, "gamma", "alpha", 0, 0),
		replayMatch(29, "delta", "beta", 3, 1),
		replayMatch(35, "delta", "alpha", 1, 2),
		replayMatch(36, "gamma", "beta", 2, 1),
	}
}

func newHarness(t *testing.T, minPrior int) *Harness {
	t.Helper()
	engine, err := scoring.NewEngine(scoring.Config{DrawRate: 0.26, LeagueSize: 4}, nil)
	require.NoError(t, err)
	h, err := NewHarness(Config{
		LeagueCode:      "E0",
		Season:          "2023/24",
		MinPriorMatches: minPrior,
		HeadToHeadCap:   6,
	}, engine, nil, nil)
	require.NoError(t, err)
	return h
}

// TestNewHarnessRequiresEngine tests constructor validation
func TestNewHarnessRequiresEngine(t *testing.T) {
	_, err := NewHarness(Config{}, nil, nil, nil)
	assert.Error(t, err)
}

// TestRunEvaluatesAndSkips tests the prior-appearance gate accounting
func TestRunEvaluatesAndSkips(t *testing.T) {
	h := newHarness(t, 2)
	log := replayLog()

	result, err := h.Run(log)
	require.NoError(t, err)

	assert.Equal(t, len(log), result.Evaluated+result.Skipped)
	assert.Greater(t, result.Evaluated, 0)
	assert.Greater(t, result.Skipped, 0)
	assert.Len(t, result.Records, result.Evaluated)

	// With a threshold of 2, each side needs two completed matches. The
	// first evaluable fixture is index 4 (alpha and delta both on two
	// appearances), so exactly the first four fixtures are skipped.
	assert.Equal(t, 4, result.Skipped)
}

// TestRunRecordsChronological tests record ordering and shape
func TestRunRecordsChronological(t *testing.T) {
	h := newHarness(t, 1)

	result, err := h.Run(replayLog())
	require.NoError(t, err)

	prev := -1
	for _, r := range result.Records {
		assert.Greater(t, r.MatchIndex, prev)
		prev = r.MatchIndex
		assert.Equal(t, 100, r.Dist.Sum())
		assert.Equal(t, r.Dist.Predicted(), r.Predicted)
		assert.NotEmpty(t, r.HomeTeam)
		assert.NotEmpty(t, r.AwayTeam)
	}
}

// TestRunMetricsFinite tests the metric aggregation on a full replay
func TestRunMetricsFinite(t *testing.T) {
	h := newHarness(t, 2)

	result, err := h.Run(replayLog())
	require.NoError(t, err)

	m := result.Metrics
	assert.Equal(t, result.Evaluated, m.Fixtures)
	assert.GreaterOrEqual(t, m.Accuracy, 0.0)
	assert.LessOrEqual(t, m.Accuracy, 1.0)
	assert.GreaterOrEqual(t, m.Brier, 0.0)
	assert.LessOrEqual(t, m.Brier, 2.0)
	assert.Greater(t, m.LogLoss, 0.0)
	assert.Len(t, m.Reliability, 10)
}

// TestRunDeterministic tests repeat replays of the same log
func TestRunDeterministic(t *testing.T) {
	h := newHarness(t, 2)

	first, err := h.Run(replayLog())
	require.NoError(t, err)
	second, err := h.Run(replayLog())
	require.NoError(t, err)

	assert.Equal(t, first.Evaluated, second.Evaluated)
	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.Metrics.Brier, second.Metrics.Brier)
}

// TestRunIgnoresUnfinished tests that future fixtures never count
func TestRunIgnoresUnfinished(t *testing.T) {
	h := newHarness(t, 2)
	log := append(replayLog(), &models.Match{
		LeagueCode: "E0",
		Season:     "2023/24",
		Date:       time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC),
		HomeTeam:   "alpha",
		AwayTeam:   "beta",
		HomeKey:    "alpha",
		AwayKey:    "beta",
		HomeGoals:  -1,
		AwayGoals:  -1,
	})

	result, err := h.Run(log)
	require.NoError(t, err)
	assert.Equal(t, len(log)-1, result.Evaluated+result.Skipped)
}

// TestRunNoSnapshotsNoBias tests the bias flag without snapshot payloads
func TestRunNoSnapshotsNoBias(t *testing.T) {
	h := newHarness(t, 2)

	result, err := h.Run(replayLog())
	require.NoError(t, err)
	assert.False(t, result.PresentDayBias)
}

// TestRunWithSnapshotsFlagsBias tests that a snapshot source marks the
// result as present-day biased and its payloads reach the engine
func TestRunWithSnapshotsFlagsBias(t *testing.T) {
	src := signals.NewStaticSource()
	src.Add("E0", "gamma", signals.Payload{
		Provider: signals.ProviderRatings,
		Rating:   &signals.RatingPayload{Rating: 1980, Source: "elo"},
	})
	src.Add("E0", "delta", signals.Payload{
		Provider: signals.ProviderRatings,
		Rating:   &signals.RatingPayload{Rating: 1250, Source: "elo"},
	})

	engine, err := scoring.NewEngine(scoring.Config{DrawRate: 0.26, LeagueSize: 4}, nil)
	require.NoError(t, err)
	h, err := NewHarness(Config{
		LeagueCode:      "E0",
		Season:          "2023/24",
		MinPriorMatches: 2,
		HeadToHeadCap:   6,
	}, engine, src, nil)
	require.NoError(t, err)

	with, err := h.Run(replayLog())
	require.NoError(t, err)
	assert.True(t, with.PresentDayBias)

	// The rating gap tilts delta-vs-gamma toward the highly rated away
	// side compared with a log-only run of the same fixtures.
	without, err := newHarness(t, 2).Run(replayLog())
	require.NoError(t, err)
	require.Equal(t, without.Evaluated, with.Evaluated)
	shifted := false
	for i, r := range with.Records {
		if r.HomeTeam == "delta" && r.AwayTeam == "gamma" {
			assert.Greater(t, r.Dist.Away, without.Records[i].Dist.Away)
			shifted = true
		}
	}
	assert.True(t, shifted)
}

// TestRunFullLeagueReplay tests a complete small-league round robin with
// the appearance gate disabled: every finished fixture is evaluated with
// finite losses and the reliability buckets partition all observations
func TestRunFullLeagueReplay(t *testing.T) {
	h := newHarness(t, 0)
	log := []*models.Match{
		replayMatch(0, "ajax", "feyenoord", 2, 0),
		replayMatch(1, "ajax", "psv", 1, 1),
		replayMatch(7, "feyenoord", "psv", 0, 1),
		replayMatch(8, "feyenoord", "ajax", 2, 2),
		replayMatch(14, "psv", "ajax", 0, 2),
		replayMatch(15, "psv", "feyenoord", 3, 1),
	}

	result, err := h.Run(log)
	require.NoError(t, err)

	assert.Equal(t, 6, result.Evaluated)
	assert.Zero(t, result.Skipped)
	require.Len(t, result.Records, 6)

	for _, r := range result.Records {
		assert.Equal(t, 100, r.Dist.Sum())
		entryBrier := 0.0
		for _, class := range models.Outcomes {
			p := r.Dist.Prob(class)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			onehot := 0.0
			if class == r.Actual {
				onehot = 1.0
			}
			entryBrier += (p - onehot) * (p - onehot)
		}
		assert.False(t, math.IsNaN(entryBrier))
		assert.LessOrEqual(t, entryBrier, 2.0)
	}

	m := result.Metrics
	assert.False(t, math.IsNaN(m.Brier) || math.IsInf(m.Brier, 0))
	assert.False(t, math.IsNaN(m.LogLoss) || math.IsInf(m.LogLoss, 0))

	// Three observations per fixture, each in exactly one bucket, with
	// contiguous bucket bounds covering [0,1].
	observations := 0
	for i, b := range m.Reliability {
		observations += b.Observations
		if i > 0 {
			assert.Equal(t, m.Reliability[i-1].Hi, b.Lo)
		}
	}
	assert.Equal(t, 18, observations)
	assert.Equal(t, 0.0, m.Reliability[0].Lo)
	assert.Equal(t, 1.0, m.Reliability[len(m.Reliability)-1].Hi)
}

// TestRunEmptyLog tests the empty-input error
func TestRunEmptyLog(t *testing.T) {
	h := newHarness(t, 2)

	_, err := h.Run(nil)
	assert.Error(t, err)
}

// TestRunNothingEvaluated tests that an unreachable threshold errors
// instead of reporting empty metrics
func TestRunNothingEvaluated(t *testing.T) {
	h := newHarness(t, 50)

	_, err := h.Run(replayLog())
	assert.Error(t, err)
}

// TestNewHarnessDefaults tests threshold and cap defaulting
func TestNewHarnessDefaults(t *testing.T) {
	engine, err := scoring.NewEngine(scoring.Config{DrawRate: 0.26, LeagueSize: 4}, nil)
	require.NoError(t, err)

	h, err := NewHarness(Config{MinPriorMatches: -1}, engine, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, h.cfg.MinPriorMatches)
	assert.Greater(t, h.cfg.HeadToHeadCap, 0)

	// Zero is a real setting: it disables the appearance gate.
	h, err = NewHarness(Config{}, engine, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, h.cfg.MinPriorMatches)
}
