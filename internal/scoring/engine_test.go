package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/matchodds/internal/models"
)

func standing(rank, played, points, gf, ga int, form string) *models.Standing {
	won := points / 3
	return &models.Standing{
		Rank:         rank,
		Played:       played,
		Won:          won,
		Points:       points,
		GoalsFor:     gf,
		GoalsAgainst: ga,
		Form:         form,
	}
}

func strongBag() models.SignalBag {
	return models.SignalBag{Standing: standing(2, 20, 45, 40, 15, "WWWWD")}
}

func weakBag() models.SignalBag {
	return models.SignalBag{Standing: standing(18, 20, 14, 15, 38, "LLDLL")}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(Config{DrawRate: 0.26, LeagueSize: 20}, nil)
	require.NoError(t, err)
	return engine
}

// TestScoreSumsToHundred tests the distribution invariant across inputs
func TestScoreSumsToHundred(t *testing.T) {
	engine := newTestEngine(t)

	pairs := []struct {
		name string
		home models.SignalBag
		away models.SignalBag
	}{
		{"Strong vs weak", strongBag(), weakBag()},
		{"Weak vs strong", weakBag(), strongBag()},
		{"Even", strongBag(), strongBag()},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			dist, factors, err := engine.Score(tt.home, tt.away)
			require.NoError(t, err)
			assert.Equal(t, 100, dist.Sum())
			assert.Len(t, factors, 14)
		})
	}
}

// TestScoreDeterministic tests identical inputs produce identical output
func TestScoreDeterministic(t *testing.T) {
	engine := newTestEngine(t)

	first, _, err := engine.Score(strongBag(), weakBag())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		dist, _, err := engine.Score(strongBag(), weakBag())
		require.NoError(t, err)
		assert.Equal(t, first, dist)
	}
}

// TestScoreFavorsStrongerSide tests edge direction
func TestScoreFavorsStrongerSide(t *testing.T) {
	engine := newTestEngine(t)

	dist, _, err := engine.Score(strongBag(), weakBag())
	require.NoError(t, err)
	assert.Greater(t, dist.Home, dist.Away)
	assert.Equal(t, models.OutcomeHomeWin, dist.Predicted())

	dist, _, err = engine.Score(weakBag(), strongBag())
	require.NoError(t, err)
	assert.Greater(t, dist.Away, dist.Home)
	assert.Equal(t, models.OutcomeAwayWin, dist.Predicted())
}

// TestScoreMissingStandings tests the one hard input requirement
func TestScoreMissingStandings(t *testing.T) {
	engine := newTestEngine(t)

	_, _, err := engine.Score(models.SignalBag{}, weakBag())
	assert.ErrorIs(t, err, models.ErrMissingStandings)

	_, _, err = engine.Score(strongBag(), models.SignalBag{})
	assert.ErrorIs(t, err, models.ErrMissingStandings)
}

// TestScoreMissingFactorsNeutral tests degradation and redistribution
func TestScoreMissingFactorsNeutral(t *testing.T) {
	engine := newTestEngine(t)

	_, factors, err := engine.Score(strongBag(), weakBag())
	require.NoError(t, err)

	presentSum := 0.0
	for _, f := range factors {
		if f.Missing {
			assert.Zero(t, f.Weight, f.Name)
			assert.Equal(t, 0.5, f.HomeScore, f.Name)
			assert.Equal(t, 0.5, f.AwayScore, f.Name)
		} else {
			assert.Greater(t, f.Weight, 0.0, f.Name)
		}
		presentSum += f.Weight
	}
	assert.InDelta(t, 1.0, presentSum, 1e-9)

	// With standings-only bags exactly the standings-derived factors
	// survive.
	missingByName := map[string]bool{}
	for _, f := range factors {
		missingByName[f.Name] = f.Missing
	}
	assert.False(t, missingByName[FactorLeaguePosition])
	assert.False(t, missingByName[FactorPointsPerMatch])
	assert.False(t, missingByName[FactorRecentForm])
	assert.False(t, missingByName[FactorGoalDifference])
	assert.True(t, missingByName[FactorMarketOdds])
	assert.True(t, missingByName[FactorTeamRating])
	assert.True(t, missingByName[FactorHeadToHead])
}

// TestScoreMarketOddsPullProbabilities tests that short home prices lift
// the home probability
func TestScoreMarketOddsPullProbabilities(t *testing.T) {
	engine := newTestEngine(t)

	without, _, err := engine.Score(strongBag(), strongBag())
	require.NoError(t, err)

	home := strongBag()
	away := strongBag()
	odds := &models.MarketOdds{Home: 1.40, Draw: 4.50, Away: 8.00, Source: "closing"}
	home.Odds, away.Odds = odds, odds

	with, _, err := engine.Score(home, away)
	require.NoError(t, err)
	assert.Greater(t, with.Home, without.Home)
}

// TestScoreClampRanges tests that the plausibility ranges hold on the
// returned percentages, not just on intermediates
func TestScoreClampRanges(t *testing.T) {
	engine := newTestEngine(t)

	// A first-vs-last fixture without market odds is the maximal
	// mismatch; the favorite still caps at 72% and the underdog floors
	// at 10% in the final distribution.
	home := models.SignalBag{Standing: standing(1, 20, 58, 60, 8, "WWWWW")}
	away := models.SignalBag{Standing: standing(20, 20, 2, 6, 55, "LLLLL")}

	dist, _, err := engine.Score(home, away)
	require.NoError(t, err)

	assert.Equal(t, 100, dist.Sum())
	assert.LessOrEqual(t, dist.Home, 72)
	assert.GreaterOrEqual(t, dist.Away, 10)
	assert.GreaterOrEqual(t, dist.Draw, 12)
	assert.LessOrEqual(t, dist.Draw, 38)
}

// TestScoreClampRangesWithOdds tests the looser caps when prices exist
func TestScoreClampRangesWithOdds(t *testing.T) {
	engine := newTestEngine(t)

	home := models.SignalBag{Standing: standing(1, 20, 58, 60, 8, "WWWWW")}
	away := models.SignalBag{Standing: standing(20, 20, 2, 6, 55, "LLLLL")}
	odds := &models.MarketOdds{Home: 1.05, Draw: 15.0, Away: 30.0, Source: "closing"}
	home.Odds, away.Odds = odds, odds

	dist, _, err := engine.Score(home, away)
	require.NoError(t, err)

	assert.Equal(t, 100, dist.Sum())
	assert.LessOrEqual(t, dist.Home, 85)
	assert.GreaterOrEqual(t, dist.Away, 5)
	assert.GreaterOrEqual(t, dist.Draw, 5)
}

// TestScoreEvenMatchDrawHeavy tests that even sides produce a meaningful
// draw share near the league rate
func TestScoreEvenMatchDrawHeavy(t *testing.T) {
	engine := newTestEngine(t)

	dist, _, err := engine.Score(strongBag(), strongBag())
	require.NoError(t, err)
	assert.InDelta(t, dist.Home, dist.Away, 1)
	assert.GreaterOrEqual(t, dist.Draw, 20)
}
