package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/matchodds/internal/models"
)

// TestToDistributionSumsToHundred tests the largest-remainder invariant
func TestToDistributionSumsToHundred(t *testing.T) {
	tests := []struct {
		name string
		home float64
		draw float64
		away float64
		want models.Distribution
	}{
		{"Exact integers", 0.40, 0.25, 0.35, models.Distribution{Home: 40, Draw: 25, Away: 35}},
		{"Thirds round by remainder", 1.0 / 3, 1.0 / 3, 1.0 / 3, models.Distribution{Home: 34, Draw: 33, Away: 33}},
		{"Largest remainder gains", 0.45, 0.275, 0.275, models.Distribution{Home: 45, Draw: 28, Away: 27}},
		{"Certainty", 1.0, 0.0, 0.0, models.Distribution{Home: 100, Draw: 0, Away: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toDistribution(tt.home, tt.draw, tt.away)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 100, got.Sum())
		})
	}
}

// TestToDistributionTieOrder tests that equal remainders resolve in the
// fixed home, draw, away order
func TestToDistributionTieOrder(t *testing.T) {
	got := toDistribution(0.405, 0.405, 0.19)
	assert.Equal(t, 100, got.Sum())
	assert.Equal(t, 41, got.Home)
	assert.Equal(t, 40, got.Draw)
}
