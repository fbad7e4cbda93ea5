package progress

// Completion notes shown next to the range breakdown.
const (
	noteConsistent = "You stayed consistent this period."
	noteRecovering = "Recoveries are keeping your momentum."
	noteHeavyDays  = "Consider reducing your heavy days."
)

type dayOutcome int

const (
	outcomeFuture dayOutcome = iota
	outcomeUnresolved
	outcomeSkipped
	outcomeMicro
	outcomeDone
)

// classify applies the shared classification rule for a planned occurrence
// with an optional matching entry.
func classify(entry *EntryRow, date, today string) dayOutcome {
	if entry == nil {
		if date > today {
			return outcomeFuture
		}
		return outcomeUnresolved
	}
	switch entry.Status {
	case StatusSkipped:
		return outcomeSkipped
	case StatusMicroDone:
		return outcomeMicro
	default:
		// done and recovered both count as done
		return outcomeDone
	}
}

// BuildDailyPoints produces one chart point per calendar day in range.
// Future unresolved occurrences are excluded from the counts but their
// planned CU still shows as upcoming load.
func BuildDailyPoints(planned []PlannedRow, entries []EntryRow, start, end, today string) []DailyPoint {
	pm := plannedMap(planned)
	em := entryMap(entries)

	byDate := make(map[string][]rowKey)
	for key := range pm {
		byDate[key.date] = append(byDate[key.date], key)
	}
	adhocByDate := make(map[string][]EntryRow)
	for key, e := range em {
		if _, matched := pm[key]; !matched {
			adhocByDate[key.date] = append(adhocByDate[key.date], e)
		}
	}

	var points []DailyPoint
	for _, date := range EnumerateDates(start, end) {
		pt := DailyPoint{Date: date, Label: dayLabel(date)}

		for _, key := range byDate[date] {
			p := pm[key]
			pt.PlannedCU += p.PlannedCU

			var entry *EntryRow
			if e, ok := em[key]; ok {
				entry = &e
			}
			switch classify(entry, date, today) {
			case outcomeFuture:
				continue
			case outcomeUnresolved:
				pt.SkippedCount++
				pt.HasMissingData = true
			case outcomeSkipped:
				pt.SkippedCount++
			case outcomeMicro:
				pt.MicroCount++
				pt.MicroCU += entry.ActualCU
			case outcomeDone:
				pt.DoneCount++
				pt.DoneCU += entry.ActualCU
			}
			pt.PlannedCount++
		}

		for _, e := range adhocByDate[date] {
			entry := e
			switch classify(&entry, date, today) {
			case outcomeSkipped:
				pt.SkippedCount++
			case outcomeMicro:
				pt.MicroCount++
				pt.MicroCU += entry.ActualCU
			case outcomeDone:
				pt.DoneCount++
				pt.DoneCU += entry.ActualCU
			}
		}

		pt.PlannedCU = round1(pt.PlannedCU)
		pt.DoneCU = round1(pt.DoneCU)
		pt.MicroCU = round1(pt.MicroCU)
		if pt.PlannedCount > 0 {
			rate := float64(pt.DoneCount+pt.MicroCount) / float64(pt.PlannedCount) * 100
			pt.SuccessRate = ptrF(round1(clamp(rate, 0, 100)))
		}

		points = append(points, pt)
	}
	return points
}

// ComputeCompletion aggregates the same classification over the whole range.
func ComputeCompletion(planned []PlannedRow, entries []EntryRow, today string) CompletionBreakdown {
	pm := plannedMap(planned)
	em := entryMap(entries)

	var b CompletionBreakdown
	count := func(outcome dayOutcome, actualCU float64) {
		switch outcome {
		case outcomeFuture:
			return
		case outcomeUnresolved, outcomeSkipped:
			b.Skipped++
		case outcomeMicro:
			b.Micro++
			b.MicroCU += actualCU
		case outcomeDone:
			b.Done++
			b.DoneCU += actualCU
		}
		b.Total++
	}

	for key := range pm {
		var entry *EntryRow
		var cu float64
		if e, ok := em[key]; ok {
			entry = &e
			cu = e.ActualCU
		}
		count(classify(entry, key.date, today), cu)
	}
	for key, e := range em {
		if _, matched := pm[key]; matched {
			continue
		}
		entry := e
		count(classify(&entry, key.date, today), e.ActualCU)
	}

	b.DoneCU = round1(b.DoneCU)
	b.MicroCU = round1(b.MicroCU)
	if b.Total > 0 {
		rate := float64(b.Done+b.Micro) / float64(b.Total) * 100
		b.SuccessRate = ptrF(round1(clamp(rate, 0, 100)))
	}

	switch {
	case b.Skipped == 0:
		b.Note = noteConsistent
	case b.Done+b.Micro >= b.Skipped:
		b.Note = noteRecovering
	default:
		b.Note = noteHeavyDays
	}
	return b
}
