package progress

// Capacity statuses.
const (
	CapacityWithin  = "within"
	CapacityOver    = "over"
	CapacityUnknown = "unknown"
)

// ComputeCapacity sums actual usage and the pro-rated weekly budget over
// [start, end].
//
// Usage rule: an unresolved planned occurrence still counts its planned CU
// (the load is assumed pending); a matching entry replaces it with the
// actual CU unless skipped; ad-hoc entries add their actual CU unless
// skipped.
//
// Budget rule: each day contributes weeklyCapacity/7 for its week. If any
// day in range has neither an override nor a default, the whole budget is
// nil rather than a partial sum.
func ComputeCapacity(planned []PlannedRow, entries []EntryRow, start, end string, byWeek map[string]float64, defaultCapacity *float64) CapacitySummary {
	pm := plannedMap(planned)
	em := entryMap(entries)

	var used float64
	for key, p := range pm {
		e, ok := em[key]
		if !ok {
			used += p.PlannedCU
			continue
		}
		if e.Status != StatusSkipped {
			used += e.ActualCU
		}
	}
	for key, e := range em {
		if _, matched := pm[key]; matched {
			continue
		}
		if e.Status != StatusSkipped {
			used += e.ActualCU
		}
	}

	var budget float64
	budgetKnown := true
	for _, day := range EnumerateDates(start, end) {
		weekCap, ok := byWeek[WeekStart(day)]
		if !ok {
			if defaultCapacity == nil {
				budgetKnown = false
				break
			}
			weekCap = *defaultCapacity
		}
		budget += weekCap / 7
	}

	summary := CapacitySummary{UsedCU: round1(used), Status: CapacityUnknown}
	if !budgetKnown {
		return summary
	}

	summary.BudgetCU = ptrF(round1(budget))
	if summary.UsedCU > *summary.BudgetCU {
		summary.Status = CapacityOver
	} else {
		summary.Status = CapacityWithin
	}
	return summary
}
