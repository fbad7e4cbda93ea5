package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucabarzi/ritmo/internal/core/progress"
)

func fullWeekRange(t *testing.T, today string) progress.DateRange {
	t.Helper()
	rng, err := progress.ResolveRange(progress.PresetThisWeek, today, "", "")
	require.NoError(t, err)
	return rng
}

func TestBuildReport(t *testing.T) {
	t.Run("Composes all sections from one input", func(t *testing.T) {
		rng := fullWeekRange(t, "2026-02-11")

		in := progress.Input{
			Range:  rng,
			Habits: []progress.HabitRow{activeHabit("h1", "Stretch")},
			Planned: []progress.PlannedRow{
				{HabitID: "h1", Date: "2026-02-09", PlannedCU: 3},
				{HabitID: "h1", Date: "2026-02-10", PlannedCU: 3},
			},
			Entries: []progress.EntryRow{
				{HabitID: "h1", Date: "2026-02-09", ActualCU: 3, Status: progress.StatusDone},
			},
			CapacityByWeek: map[string]float64{"2026-02-09": 40},
		}

		report := progress.BuildReport(in)

		assert.Equal(t, rng, report.Range)
		assert.Len(t, report.Daily, 7)
		assert.Len(t, report.Buckets, 4)
		require.NotNil(t, report.Summary.Capacity.BudgetCU)
		assert.Equal(t, 40.0, *report.Summary.Capacity.BudgetCU)
		assert.Equal(t, 1, report.Summary.Completion.Done)
		assert.Equal(t, 1, report.Summary.Completion.Skipped) // unresolved 02-10
		require.Len(t, report.TopAttention, 1)
		assert.Equal(t, "h1", report.TopAttention[0].HabitID)

		assert.True(t, report.States.HasHabits)
		assert.True(t, report.States.HasEntriesInRange)
		assert.True(t, report.States.HasPartialMissing)
	})

	t.Run("Empty input produces empty states", func(t *testing.T) {
		rng := fullWeekRange(t, "2026-02-11")

		report := progress.BuildReport(progress.Input{Range: rng})

		assert.False(t, report.States.HasHabits)
		assert.False(t, report.States.HasEntriesInRange)
		assert.False(t, report.States.HasPartialMissing)
		assert.Equal(t, progress.TrendNew, report.Summary.Momentum.Trend)
		assert.Equal(t, progress.CapacityUnknown, report.Summary.Capacity.Status)
		assert.Equal(t, progress.InsightNotEnough, report.Insight.Kind)
	})

	t.Run("Inactive habits never set HasHabits", func(t *testing.T) {
		rng := fullWeekRange(t, "2026-02-11")

		report := progress.BuildReport(progress.Input{
			Range:  rng,
			Habits: []progress.HabitRow{{ID: "h1", Title: "Paused", IsActive: false}},
		})

		assert.False(t, report.States.HasHabits)
	})

	t.Run("Previous period resolves against its own end date", func(t *testing.T) {
		rng := fullWeekRange(t, "2026-02-11")

		in := progress.Input{
			Range:  rng,
			Habits: []progress.HabitRow{activeHabit("h1", "Stretch")},
			Planned: []progress.PlannedRow{
				{HabitID: "h1", Date: "2026-02-09", PlannedCU: 3},
			},
			Entries: []progress.EntryRow{
				{HabitID: "h1", Date: "2026-02-09", ActualCU: 3, Status: progress.StatusDone},
			},
			// previous week planned but never logged: all misses, not future
			PrevPlanned: []progress.PlannedRow{
				{HabitID: "h1", Date: "2026-02-02", PlannedCU: 3},
				{HabitID: "h1", Date: "2026-02-07", PlannedCU: 3},
			},
		}

		report := progress.BuildReport(in)

		m := report.Summary.Momentum
		require.NotNil(t, m.PreviousRate)
		assert.Equal(t, 0.0, *m.PreviousRate)
		require.NotNil(t, m.Delta)
		assert.Equal(t, 100.0, *m.Delta)
		assert.Equal(t, progress.TrendUp, m.Trend)
	})
}

func TestBuildReport_Insight(t *testing.T) {
	// a Sunday, so the whole week is observable
	rng := fullWeekRange(t, "2026-02-15")
	habits := []progress.HabitRow{activeHabit("h1", "Stretch"), activeHabit("h2", "Deep work")}

	t.Run("Heavy days lagging trigger the load warning", func(t *testing.T) {
		planned := []progress.PlannedRow{
			{HabitID: "h1", Date: "2026-02-09", PlannedCU: 2},
			{HabitID: "h1", Date: "2026-02-10", PlannedCU: 2},
			{HabitID: "h2", Date: "2026-02-11", PlannedCU: 6},
			{HabitID: "h2", Date: "2026-02-12", PlannedCU: 6},
		}
		entries := []progress.EntryRow{
			{HabitID: "h1", Date: "2026-02-09", ActualCU: 2, Status: progress.StatusDone},
			{HabitID: "h1", Date: "2026-02-10", ActualCU: 2, Status: progress.StatusDone},
		}

		report := progress.BuildReport(progress.Input{
			Range:   rng,
			Habits:  habits,
			Planned: planned,
			Entries: entries,
		})

		require.NotNil(t, report.SweetSpot)
		assert.Equal(t, "1-3", report.SweetSpot.Bucket)
		assert.Equal(t, progress.InsightLoadWarning, report.Insight.Kind)
		assert.Equal(t, "Days above 3 CU complete 100 points less often. Lighter days are winning.", report.Insight.Headline)
	})

	t.Run("Balanced loads read steady", func(t *testing.T) {
		planned := []progress.PlannedRow{
			{HabitID: "h1", Date: "2026-02-09", PlannedCU: 2},
			{HabitID: "h1", Date: "2026-02-10", PlannedCU: 2},
			{HabitID: "h2", Date: "2026-02-11", PlannedCU: 6},
			{HabitID: "h2", Date: "2026-02-12", PlannedCU: 6},
		}
		entries := []progress.EntryRow{
			{HabitID: "h1", Date: "2026-02-09", ActualCU: 2, Status: progress.StatusDone},
			{HabitID: "h1", Date: "2026-02-10", ActualCU: 2, Status: progress.StatusDone},
			{HabitID: "h2", Date: "2026-02-11", ActualCU: 6, Status: progress.StatusDone},
			{HabitID: "h2", Date: "2026-02-12", ActualCU: 6, Status: progress.StatusDone},
		}

		report := progress.BuildReport(progress.Input{
			Range:   rng,
			Habits:  habits,
			Planned: planned,
			Entries: entries,
		})

		assert.Equal(t, progress.InsightSteady, report.Insight.Kind)
	})

	t.Run("Too few observed days falls back", func(t *testing.T) {
		planned := []progress.PlannedRow{
			{HabitID: "h1", Date: "2026-02-09", PlannedCU: 2},
			{HabitID: "h1", Date: "2026-02-10", PlannedCU: 2},
		}
		entries := []progress.EntryRow{
			{HabitID: "h1", Date: "2026-02-09", ActualCU: 2, Status: progress.StatusDone},
			{HabitID: "h1", Date: "2026-02-10", ActualCU: 2, Status: progress.StatusDone},
		}

		report := progress.BuildReport(progress.Input{
			Range:   rng,
			Habits:  habits,
			Planned: planned,
			Entries: entries,
		})

		assert.Equal(t, progress.InsightNotEnough, report.Insight.Kind)
	})
}
