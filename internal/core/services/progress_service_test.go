package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucabarzi/ritmo/internal/core/domain"
	"github.com/lucabarzi/ritmo/internal/core/progress"
	"github.com/lucabarzi/ritmo/internal/core/services"
)

type progressFixture struct {
	service      *services.ProgressService
	habitRepo    *MockHabitRepo
	plannedRepo  *MockPlannedRepo
	entryRepo    *MockEntryRepo
	capacityRepo *MockCapacityRepo
	userRepo     *MockUserRepo
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	f := &progressFixture{
		habitRepo:    NewMockHabitRepo(),
		plannedRepo:  NewMockPlannedRepo(),
		entryRepo:    NewMockEntryRepo(),
		capacityRepo: NewMockCapacityRepo(),
		userRepo:     NewMockUserRepo(),
	}
	f.service = services.NewProgressService(f.habitRepo, f.plannedRepo, f.entryRepo, f.capacityRepo, f.userRepo)

	user, err := domain.NewUser("user-1", "luca@example.com")
	require.NoError(t, err)
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	return f
}

func TestProgressService_GetReport(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Pulls every collection into one report", func(t *testing.T) {
		f := newProgressFixture(t)

		habit, err := domain.NewHabit("user-1", "Stretch", "", 3, 0, nil)
		require.NoError(t, err)
		require.NoError(t, f.habitRepo.Create(ctx, habit))

		planned, err := domain.NewPlannedOccurrence("user-1", habit.ID, "2026-02-09", 3, "")
		require.NoError(t, err)
		require.NoError(t, f.plannedRepo.Create(ctx, planned))

		entry := domain.NewEntry(habit.ID, "user-1", "2026-02-09", domain.EntryDone, 3)
		require.NoError(t, entry.Validate())
		require.NoError(t, f.entryRepo.Create(ctx, entry))

		capacity, err := domain.NewWeeklyCapacity("user-1", "2026-02-09", 35)
		require.NoError(t, err)
		require.NoError(t, f.capacityRepo.Upsert(ctx, capacity))

		report, err := f.service.GetReport(ctx, services.ProgressInput{
			UserID: "user-1",
			Preset: progress.PresetThisWeek,
			Today:  "2026-02-11",
		})

		require.NoError(t, err)
		assert.Equal(t, "2026-02-09", report.Range.Start)
		assert.Equal(t, "2026-02-15", report.Range.End)
		assert.Len(t, report.Daily, 7)
		assert.Equal(t, 1, report.Summary.Completion.Done)
		require.NotNil(t, report.Summary.Capacity.BudgetCU)
		assert.Equal(t, 35.0, *report.Summary.Capacity.BudgetCU)
		assert.True(t, report.States.HasHabits)
	})

	t.Run("Success: Default capacity covers missing weeks", func(t *testing.T) {
		f := newProgressFixture(t)

		user, err := f.userRepo.GetByID(ctx, "user-1")
		require.NoError(t, err)
		require.NoError(t, user.SetDefaultCapacity(ptr(42.0)))
		require.NoError(t, f.userRepo.Update(ctx, user))

		report, err := f.service.GetReport(ctx, services.ProgressInput{
			UserID: "user-1",
			Preset: progress.PresetThisWeek,
			Today:  "2026-02-11",
		})

		require.NoError(t, err)
		require.NotNil(t, report.Summary.Capacity.BudgetCU)
		assert.Equal(t, 42.0, *report.Summary.Capacity.BudgetCU)
	})

	t.Run("Success: Inactive habits stay out of the report", func(t *testing.T) {
		f := newProgressFixture(t)

		habit, err := domain.NewHabit("user-1", "Paused", "", 3, 0, nil)
		require.NoError(t, err)
		habit.Deactivate()
		require.NoError(t, f.habitRepo.Create(ctx, habit))

		report, err := f.service.GetReport(ctx, services.ProgressInput{
			UserID: "user-1",
			Preset: progress.PresetThisWeek,
			Today:  "2026-02-11",
		})

		require.NoError(t, err)
		assert.False(t, report.States.HasHabits)
		assert.Empty(t, report.TopAttention)
	})

	t.Run("Fail: Invalid range", func(t *testing.T) {
		f := newProgressFixture(t)

		_, err := f.service.GetReport(ctx, services.ProgressInput{
			UserID: "user-1",
			Preset: "last_century",
			Today:  "2026-02-11",
		})
		assert.ErrorIs(t, err, progress.ErrInvalidRange)
	})

	t.Run("Fail: Repository errors bubble up", func(t *testing.T) {
		f := newProgressFixture(t)
		f.entryRepo.simulateError = errors.New("db connection lost")

		_, err := f.service.GetReport(ctx, services.ProgressInput{
			UserID: "user-1",
			Preset: progress.PresetThisWeek,
			Today:  "2026-02-11",
		})
		assert.EqualError(t, err, "db connection lost")
	})
}
