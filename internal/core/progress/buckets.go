package progress

import "fmt"

// Bucket thresholds and midpoints are tuning constants, kept together so the
// bucketing shape can change without touching the algorithm.
const (
	bucketLightMax  = 4.0
	bucketMediumMax = 6.0
	bucketHeavyMax  = 8.0

	// SweetSpotMinDays is the statistical floor: a single-day bucket cannot
	// be trusted as a sweet spot.
	SweetSpotMinDays = 2
)

var bucketDefs = []struct {
	label    string
	midpoint float64
}{
	{"1-3", 2},
	{"4-5", 4.5},
	{"6-7", 6.5},
	{"8+", 8},
}

func bucketIndex(plannedCU float64) int {
	switch {
	case plannedCU < bucketLightMax:
		return 0
	case plannedCU < bucketMediumMax:
		return 1
	case plannedCU < bucketHeavyMax:
		return 2
	default:
		return 3
	}
}

// BuildLoadBuckets groups the daily points by planned load and computes a
// participation-weighted success rate per bucket. Days without planned load
// are excluded; days without an observed success rate count toward the
// bucket size but not its rate.
func BuildLoadBuckets(days []DailyPoint) ([]LoadBucket, *SweetSpot) {
	type acc struct {
		days      int
		weightSum float64
		rateSum   float64
	}
	accs := make([]acc, len(bucketDefs))

	for _, d := range days {
		if d.PlannedCU <= 0 {
			continue
		}
		i := bucketIndex(d.PlannedCU)
		accs[i].days++
		if d.SuccessRate == nil {
			continue
		}
		weight := float64(d.PlannedCount)
		if weight < 1 {
			weight = 1
		}
		accs[i].weightSum += weight
		accs[i].rateSum += *d.SuccessRate * weight
	}

	buckets := make([]LoadBucket, len(bucketDefs))
	var sweet *SweetSpot
	var bestRate float64

	for i, def := range bucketDefs {
		b := LoadBucket{Label: def.label, Days: accs[i].days}
		if accs[i].weightSum > 0 {
			b.SuccessRate = ptrF(round1(accs[i].rateSum / accs[i].weightSum))
		}
		buckets[i] = b

		// ties break in declaration order, so strictly greater only
		if b.Days >= SweetSpotMinDays && b.SuccessRate != nil && (sweet == nil || *b.SuccessRate > bestRate) {
			bestRate = *b.SuccessRate
			sweet = &SweetSpot{
				Bucket: def.label,
				CU:     def.midpoint,
				Label:  fmt.Sprintf("sweet spot ≈ %g CU/day", def.midpoint),
			}
		}
	}

	return buckets, sweet
}
