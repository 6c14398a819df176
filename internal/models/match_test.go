package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMatchFinished tests the unplayed sentinel semantics
func TestMatchFinished(t *testing.T) {
	m := NewMatch()
	assert.False(t, m.Finished())

	// A goalless result is still a result.
	m.HomeGoals, m.AwayGoals = 0, 0
	assert.True(t, m.Finished())
	assert.Equal(t, OutcomeDraw, m.Result())
}

// TestMatchResult tests outcome derivation
func TestMatchResult(t *testing.T) {
	tests := []struct {
		name string
		hg   int
		ag   int
		want Outcome
	}{
		{"Home win", 3, 1, OutcomeHomeWin},
		{"Away win", 0, 2, OutcomeAwayWin},
		{"Draw", 1, 1, OutcomeDraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Match{HomeGoals: tt.hg, AwayGoals: tt.ag}
			assert.Equal(t, tt.want, m.Result())
		})
	}
}

// TestMatchOpponent tests key-based participant helpers
func TestMatchOpponent(t *testing.T) {
	m := &Match{HomeKey: "arsenal", AwayKey: "chelsea"}

	assert.True(t, m.Involves("arsenal"))
	assert.False(t, m.Involves("leeds"))
	assert.Equal(t, "chelsea", m.Opponent("arsenal"))
	assert.Equal(t, "arsenal", m.Opponent("chelsea"))
	assert.Empty(t, m.Opponent("leeds"))
}

// TestScoreString tests score rendering for played and unplayed fixtures
func TestScoreString(t *testing.T) {
	m := &Match{HomeGoals: 2, AwayGoals: 1}
	assert.Equal(t, "2 - 1", m.ScoreString())
	assert.Empty(t, NewMatch().ScoreString())
}

// TestDistributionPredicted tests arg-max with fixed tie precedence
func TestDistributionPredicted(t *testing.T) {
	assert.Equal(t, OutcomeHomeWin, Distribution{Home: 50, Draw: 30, Away: 20}.Predicted())
	assert.Equal(t, OutcomeAwayWin, Distribution{Home: 20, Draw: 30, Away: 50}.Predicted())
	assert.Equal(t, OutcomeDraw, Distribution{Home: 30, Draw: 40, Away: 30}.Predicted())

	// Ties resolve home before draw before away.
	assert.Equal(t, OutcomeHomeWin, Distribution{Home: 40, Draw: 40, Away: 20}.Predicted())
	assert.Equal(t, OutcomeDraw, Distribution{Home: 20, Draw: 40, Away: 40}.Predicted())
}

// TestDistributionProb tests per-class probability extraction
func TestDistributionProb(t *testing.T) {
	d := Distribution{Home: 45, Draw: 30, Away: 25}
	assert.InDelta(t, 0.45, d.Prob(OutcomeHomeWin), 1e-12)
	assert.InDelta(t, 0.30, d.Prob(OutcomeDraw), 1e-12)
	assert.InDelta(t, 0.25, d.Prob(OutcomeAwayWin), 1e-12)
}
