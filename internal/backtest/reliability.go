package backtest

import "github.com/yourusername/matchodds/internal/models"

// reliabilityBuckets is the fixed bucket count. Buckets are half-open
// [lo, hi) except the last, which closes at 1.0, so every observation
// lands in exactly one bucket.
const reliabilityBuckets = 10

// ReliabilityBucket compares mean predicted probability with observed hit
// rate inside one fixed probability range. A calibrated model's "70%"
// predictions come true about 70% of the time.
type ReliabilityBucket struct {
	Lo            float64 `json:"lo"`
	Hi            float64 `json:"hi"`
	Observations  int     `json:"observations"`
	MeanPredicted float64 `json:"mean_predicted"`
	HitRate       float64 `json:"hit_rate"`
}

// BuildReliability buckets every per-class predicted probability: each
// record contributes three observations, one per outcome class.
func BuildReliability(records []models.OutcomeRecord) []ReliabilityBucket {
	buckets := make([]ReliabilityBucket, reliabilityBuckets)
	sums := make([]float64, reliabilityBuckets)
	hits := make([]int, reliabilityBuckets)
	for i := range buckets {
		buckets[i].Lo = float64(i) / reliabilityBuckets
		buckets[i].Hi = float64(i+1) / reliabilityBuckets
	}

	for _, r := range records {
		for _, class := range models.Outcomes {
			p := r.Dist.Prob(class)
			idx := int(p * reliabilityBuckets)
			if idx >= reliabilityBuckets {
				idx = reliabilityBuckets - 1
			}
			buckets[idx].Observations++
			sums[idx] += p
			if class == r.Actual {
				hits[idx]++
			}
		}
	}

	for i := range buckets {
		if buckets[i].Observations > 0 {
			buckets[i].MeanPredicted = sums[i] / float64(buckets[i].Observations)
			buckets[i].HitRate = float64(hits[i]) / float64(buckets[i].Observations)
		}
	}
	return buckets
}
