package progress

// RecoveryWindowDays is how many days after a miss still count as catching
// up.
const RecoveryWindowDays = 3

// ComputeSlipRecovery detects missed occurrences and how many were caught up
// within the recovery window.
//
// Explicitly tagged recovered entries are counted on top of the heuristic
// window hits. The two can describe the same event; the sum is intentional
// (see DESIGN.md) so dashboards keep the arithmetic they were built against.
func ComputeSlipRecovery(planned []PlannedRow, entries []EntryRow, today string) SlipRecovery {
	pm := plannedMap(planned)
	em := entryMap(entries)

	var r SlipRecovery
	for key := range pm {
		if key.date > today {
			continue
		}
		e, ok := em[key]
		if ok && e.Status != StatusSkipped {
			continue
		}
		r.Missed++

		for offset := 1; offset <= RecoveryWindowDays; offset++ {
			followUp, ok := em[rowKey{key.habitID, ShiftDate(key.date, offset)}]
			if !ok {
				continue
			}
			if followUp.Status == StatusDone || followUp.Status == StatusMicroDone || followUp.Status == StatusRecovered {
				r.Recovered++
				break
			}
		}
	}

	for _, e := range em {
		if e.Status == StatusRecovered {
			r.Recovered++
		}
	}

	if r.Missed > 0 {
		r.RecoveryRate = ptrF(round1(float64(r.Recovered) / float64(r.Missed) * 100))
	}
	return r
}
