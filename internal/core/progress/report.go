package progress

import "fmt"

// Insight kinds.
const (
	InsightLoadWarning  = "load_warning"
	InsightSteady       = "steady"
	InsightNotEnough    = "not_enough_data"
	insightMinDays      = 4
	insightGapThreshold = 8.0
)

// BuildReport composes the full analytics response from already-fetched rows.
// Pure and deterministic: same input, same output, no clock reads.
func BuildReport(in Input) Report {
	rng := in.Range

	daily := BuildDailyPoints(in.Planned, in.Entries, rng.Start, rng.End, rng.Today)
	completion := ComputeCompletion(in.Planned, in.Entries, rng.Today)

	// the previous period is always fully in the past, so it resolves
	// against its own end date
	prevCompletion := ComputeCompletion(in.PrevPlanned, in.PrevEntries, rng.PreviousEnd)

	buckets, sweet := BuildLoadBuckets(daily)

	report := Report{
		Range: rng,
		Summary: Summary{
			Capacity:     ComputeCapacity(in.Planned, in.Entries, rng.Start, rng.End, in.CapacityByWeek, in.DefaultCapacity),
			Completion:   completion,
			Momentum:     CompareMomentum(completion, prevCompletion),
			SlipRecovery: ComputeSlipRecovery(in.Planned, in.Entries, rng.Today),
		},
		Insight:      buildInsight(daily, sweet),
		Daily:        daily,
		Buckets:      buckets,
		SweetSpot:    sweet,
		TopAttention: RankAttention(in.Habits, in.Planned, in.HistoryPlanned, in.Entries, in.HistoryEntries, rng),
	}

	for _, h := range in.Habits {
		if h.IsActive {
			report.States.HasHabits = true
			break
		}
	}
	report.States.HasEntriesInRange = len(in.Entries) > 0
	for _, d := range daily {
		if d.HasMissingData {
			report.States.HasPartialMissing = true
			break
		}
	}

	return report
}

// buildInsight compares success above vs at-or-below the sweet-spot-plus-one
// CU threshold. Heavy days lagging by insightGapThreshold points or more
// trigger the load warning.
func buildInsight(daily []DailyPoint, sweet *SweetSpot) Insight {
	var observed int
	for _, d := range daily {
		if d.SuccessRate != nil {
			observed++
		}
	}
	if sweet == nil || observed < insightMinDays {
		return Insight{
			Kind:     InsightNotEnough,
			Headline: "Not enough data yet. Keep logging to unlock insights.",
		}
	}

	threshold := sweet.CU + 1
	var aboveSum, belowSum float64
	var aboveN, belowN int
	for _, d := range daily {
		if d.SuccessRate == nil || d.PlannedCU <= 0 {
			continue
		}
		if d.PlannedCU > threshold {
			aboveSum += *d.SuccessRate
			aboveN++
		} else {
			belowSum += *d.SuccessRate
			belowN++
		}
	}

	if aboveN > 0 && belowN > 0 {
		gap := belowSum/float64(belowN) - aboveSum/float64(aboveN)
		if gap >= insightGapThreshold {
			return Insight{
				Kind:     InsightLoadWarning,
				Headline: fmt.Sprintf("Days above %g CU complete %g points less often. Lighter days are winning.", threshold, round1(gap)),
			}
		}
	}

	return Insight{
		Kind:     InsightSteady,
		Headline: "Load and completion look balanced this period.",
	}
}
