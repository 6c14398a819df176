package scoring

import (
	"math"

	"github.com/yourusername/matchodds/internal/models"
)

// toDistribution converts normalized probabilities to integer percentages
// by largest-remainder allocation, so the three values always sum to
// exactly 100. Ties on equal remainders resolve in the fixed order home,
// draw, away.
func toDistribution(pHome, pDraw, pAway float64) models.Distribution {
	values := [3]float64{pHome * 100, pDraw * 100, pAway * 100}
	floors := [3]int{}
	remainders := [3]float64{}
	total := 0
	for i, v := range values {
		floors[i] = int(math.Floor(v))
		remainders[i] = v - math.Floor(v)
		total += floors[i]
	}

	for total < 100 {
		best := -1
		bestRem := -1.0
		for i := 0; i < 3; i++ {
			if remainders[i] > bestRem {
				best, bestRem = i, remainders[i]
			}
		}
		floors[best]++
		remainders[best] = -2 // consumed
		total++
	}

	return models.Distribution{Home: floors[0], Draw: floors[1], Away: floors[2]}
}
