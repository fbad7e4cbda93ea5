package progress

import "sort"

// Attention heuristics. Weights are design constants, not derived.
const (
	attentionMissedWeight    = 3.0
	attentionPlannedCUWeight = 0.25
	attentionRateDivisor     = 25.0
	attentionNoRatePenalty   = 1.0

	// HistoryDays is the fixed sparkline width, independent of the selected
	// range length.
	HistoryDays = 21

	// TopAttentionCount caps the ranked list.
	TopAttentionCount = 5

	tipMissedThreshold        = 3
	tipLowRateThreshold       = 45.0
	tipHeavyLoadThreshold     = 8.0
	suggestMissedThreshold    = 3
	suggestLowRateThreshold   = 50.0
	suggestMicroUsesThreshold = 2
)

// History cell values for the 21-day sparkline.
const (
	CellDone      = "done"
	CellMicroDone = "micro_done"
	CellMissed    = "missed"
	CellEmpty     = "empty"
)

// RankAttention scores every active habit over the primary range and returns
// the top habits needing attention, each with a fixed-width history.
func RankAttention(habits []HabitRow, planned, historyPlanned []PlannedRow, entries, historyEntries []EntryRow, rng DateRange) []HabitAttention {
	pm := plannedMap(planned)
	em := entryMap(entries)
	hpm := plannedMap(historyPlanned)
	hem := entryMap(historyEntries)

	var ranked []HabitAttention
	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		a := scoreHabit(h, pm, em, rng.Today)
		a.History = buildHistory(h.ID, hpm, hem, rng.End, rng.Today)
		ranked = append(ranked, a)
	}

	withSignal := ranked[:0:0]
	for _, a := range ranked {
		if a.PlannedCU > 0 || a.Done > 0 || a.Micro > 0 || a.Missed > 0 {
			withSignal = append(withSignal, a)
		}
	}
	if len(withSignal) > 0 {
		ranked = withSignal
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].Title < ranked[j].Title
	})

	if len(ranked) > TopAttentionCount {
		ranked = ranked[:TopAttentionCount]
	}
	return ranked
}

func scoreHabit(h HabitRow, pm map[rowKey]PlannedRow, em map[rowKey]EntryRow, today string) HabitAttention {
	a := HabitAttention{HabitID: h.ID, Title: h.Title}

	var microUses int
	for key, p := range pm {
		if key.habitID != h.ID {
			continue
		}
		a.PlannedCU += p.PlannedCU

		var entry *EntryRow
		if e, ok := em[key]; ok {
			entry = &e
		}
		switch classify(entry, key.date, today) {
		case outcomeUnresolved, outcomeSkipped:
			a.Missed++
		case outcomeMicro:
			a.Micro++
			microUses++
		case outcomeDone:
			a.Done++
		}
	}
	for key, e := range em {
		if key.habitID != h.ID {
			continue
		}
		if _, matched := pm[key]; matched {
			continue
		}
		entry := e
		switch classify(&entry, key.date, today) {
		case outcomeSkipped:
			a.Missed++
		case outcomeMicro:
			a.Micro++
			microUses++
		case outcomeDone:
			a.Done++
		}
	}

	a.PlannedCU = round1(a.PlannedCU)
	if total := a.Done + a.Micro + a.Missed; total > 0 {
		a.SuccessRate = ptrF(round1(clamp(float64(a.Done+a.Micro)/float64(total)*100, 0, 100)))
	}

	ratePenalty := attentionNoRatePenalty
	if a.SuccessRate != nil {
		ratePenalty = (100 - *a.SuccessRate) / attentionRateDivisor
	}
	a.score = float64(a.Missed)*attentionMissedWeight + a.PlannedCU*attentionPlannedCUWeight + ratePenalty

	a.Tip = pickTip(a, microUses)
	a.Suggestion = pickSuggestion(a, microUses)
	return a
}

// pickTip returns the first matching tip, priority order.
func pickTip(a HabitAttention, microUses int) string {
	rate := 100.0
	if a.SuccessRate != nil {
		rate = *a.SuccessRate
	}
	switch {
	case a.Missed >= tipMissedThreshold:
		return "Lighten the load: drop or shrink one planned day."
	case a.SuccessRate != nil && rate < tipLowRateThreshold:
		return "Shrink the first step until starting feels trivial."
	case a.PlannedCU >= tipHeavyLoadThreshold:
		return "Split long sessions into two shorter blocks."
	case microUses > 0:
		return "Micro-steps are working for you. Keep them in rotation."
	default:
		return "Keep the rhythm: protect the slots that already work."
	}
}

func pickSuggestion(a HabitAttention, microUses int) Suggestion {
	rate := 100.0
	if a.SuccessRate != nil {
		rate = *a.SuccessRate
	}
	switch {
	case a.Missed >= suggestMissedThreshold:
		return Suggestion{
			Text:   "This habit slipped several times this period. A lighter plan is easier to defend.",
			Action: "Reduce load",
		}
	case a.SuccessRate != nil && rate < suggestLowRateThreshold:
		return Suggestion{
			Text:   "Completion is below half. Starting smaller usually restores the habit.",
			Action: "Try a micro-step",
		}
	case microUses >= suggestMicroUsesThreshold:
		return Suggestion{
			Text:   "Micro-steps carried this habit through the period.",
			Action: "Keep micro-steps",
		}
	default:
		return Suggestion{
			Text:   "This habit is holding steady.",
			Action: "Keep it up",
		}
	}
}

// buildHistory classifies the HistoryDays calendar days ending at rangeEnd.
func buildHistory(habitID string, pm map[rowKey]PlannedRow, em map[rowKey]EntryRow, rangeEnd, today string) []string {
	cells := make([]string, 0, HistoryDays)
	for _, date := range EnumerateDates(ShiftDate(rangeEnd, -(HistoryDays-1)), rangeEnd) {
		key := rowKey{habitID, date}
		if e, ok := em[key]; ok {
			switch e.Status {
			case StatusMicroDone:
				cells = append(cells, CellMicroDone)
			case StatusSkipped:
				cells = append(cells, CellMissed)
			default:
				cells = append(cells, CellDone)
			}
			continue
		}
		if _, planned := pm[key]; planned && date <= today {
			cells = append(cells, CellMissed)
		} else {
			cells = append(cells, CellEmpty)
		}
	}
	return cells
}
