package services

import (
	"context"

	"github.com/lucabarzi/ritmo/internal/core/domain"
	"github.com/lucabarzi/ritmo/internal/core/progress"
)

// ProgressService owns the I/O side of the analytics pipeline: it resolves
// the range, fetches the row collections and hands everything to the pure
// engine.
type ProgressService struct {
	habitRepo    domain.HabitRepository
	plannedRepo  domain.PlannedRepository
	entryRepo    domain.EntryRepository
	capacityRepo domain.CapacityRepository
	userRepo     domain.UserRepository
}

func NewProgressService(
	habitRepo domain.HabitRepository,
	plannedRepo domain.PlannedRepository,
	entryRepo domain.EntryRepository,
	capacityRepo domain.CapacityRepository,
	userRepo domain.UserRepository,
) *ProgressService {
	return &ProgressService{
		habitRepo:    habitRepo,
		plannedRepo:  plannedRepo,
		entryRepo:    entryRepo,
		capacityRepo: capacityRepo,
		userRepo:     userRepo,
	}
}

type ProgressInput struct {
	UserID string
	Preset string
	Start  string
	End    string

	// Today is the user's local calendar day, supplied by the client so
	// the engine never reads a wall clock.
	Today string
}

func (s *ProgressService) GetReport(ctx context.Context, input ProgressInput) (*progress.Report, error) {
	rng, err := progress.ResolveRange(input.Preset, input.Today, input.Start, input.End)
	if err != nil {
		return nil, err
	}

	habits, err := s.habitRepo.ListActiveByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	planned, err := s.plannedRepo.ListByUserIDAndDateRange(ctx, input.UserID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListByUserIDAndDateRange(ctx, input.UserID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	prevPlanned, err := s.plannedRepo.ListByUserIDAndDateRange(ctx, input.UserID, rng.PreviousStart, rng.PreviousEnd)
	if err != nil {
		return nil, err
	}
	prevEntries, err := s.entryRepo.ListByUserIDAndDateRange(ctx, input.UserID, rng.PreviousStart, rng.PreviousEnd)
	if err != nil {
		return nil, err
	}

	// the sparkline window is always HistoryDays wide, whatever range the
	// user selected
	historyStart := progress.ShiftDate(rng.End, -(progress.HistoryDays - 1))
	historyPlanned, err := s.plannedRepo.ListByUserIDAndDateRange(ctx, input.UserID, historyStart, rng.End)
	if err != nil {
		return nil, err
	}
	historyEntries, err := s.entryRepo.ListByUserIDAndDateRange(ctx, input.UserID, historyStart, rng.End)
	if err != nil {
		return nil, err
	}

	overrides, err := s.capacityRepo.ListByUserIDAndRange(ctx, input.UserID, progress.WeekStart(rng.Start), progress.WeekStart(rng.End))
	if err != nil {
		return nil, err
	}
	byWeek := make(map[string]float64, len(overrides))
	for _, c := range overrides {
		byWeek[c.WeekStart] = c.CapacityCU
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	report := progress.BuildReport(progress.Input{
		Range:           rng,
		Habits:          toHabitRows(habits),
		Planned:         toPlannedRows(planned),
		Entries:         toEntryRows(entries),
		PrevPlanned:     toPlannedRows(prevPlanned),
		PrevEntries:     toEntryRows(prevEntries),
		HistoryPlanned:  toPlannedRows(historyPlanned),
		HistoryEntries:  toEntryRows(historyEntries),
		CapacityByWeek:  byWeek,
		DefaultCapacity: user.DefaultCapacityCU,
	})

	return &report, nil
}

func toHabitRows(habits []*domain.Habit) []progress.HabitRow {
	rows := make([]progress.HabitRow, 0, len(habits))
	for _, h := range habits {
		row := progress.HabitRow{
			ID:            h.ID,
			Title:         h.Title,
			WeightCU:      h.WeightCU,
			MicroWeightCU: h.MicroWeightCU,
			ContextTags:   h.ContextTags,
			HasMicro:      h.HasMicro,
			IsActive:      h.IsActive,
		}
		if h.MicroTitle != nil {
			row.MicroTitle = *h.MicroTitle
		}
		rows = append(rows, row)
	}
	return rows
}

func toPlannedRows(planned []*domain.PlannedOccurrence) []progress.PlannedRow {
	rows := make([]progress.PlannedRow, 0, len(planned))
	for _, p := range planned {
		rows = append(rows, progress.PlannedRow{
			ID:         p.ID,
			HabitID:    p.HabitID,
			Date:       p.Date,
			PlannedCU:  p.PlannedCU,
			ContextTag: p.ContextTag,
		})
	}
	return rows
}

func toEntryRows(entries []*domain.Entry) []progress.EntryRow {
	rows := make([]progress.EntryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, progress.EntryRow{
			ID:       e.ID,
			HabitID:  e.HabitID,
			Date:     e.Date,
			ActualCU: e.ActualCU,
			Status:   e.Status,
			Note:     e.Note,
		})
	}
	return rows
}
