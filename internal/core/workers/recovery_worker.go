package workers

import (
	"context"
	"log"
	"time"

	"github.com/lucabarzi/ritmo/internal/core/domain"
	"github.com/lucabarzi/ritmo/internal/core/progress"
)

type PlannedRepository interface {
	ListByHabitIDAndDateRange(ctx context.Context, habitID, from, to string) ([]*domain.PlannedOccurrence, error)
}

type EntryRepository interface {
	ListByHabitIDAndDateRange(ctx context.Context, habitID, from, to string) ([]*domain.Entry, error)
	Update(ctx context.Context, entry *domain.Entry) error
}

// lookbackDays bounds how far back the worker scans for misses.
const lookbackDays = 30

type RecoveryJob struct {
	HabitID string
}

// RecoveryWorker re-tags done entries as recovered when they land inside the
// recovery window after a missed planned day. It keeps the explicit
// "recovered" status in sync with what the analytics engine would detect
// heuristically, so exports and clients see it too.
type RecoveryWorker struct {
	plannedRepo PlannedRepository
	entryRepo   EntryRepository
	jobs        chan RecoveryJob
	now         func() time.Time
}

func NewRecoveryWorker(pRepo PlannedRepository, eRepo EntryRepository) *RecoveryWorker {
	return &RecoveryWorker{
		plannedRepo: pRepo,
		entryRepo:   eRepo,
		jobs:        make(chan RecoveryJob, 100),
		now:         time.Now,
	}
}

func (w *RecoveryWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Recovery Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Recovery Worker shutting down...")
				return
			}
		}
	}()
}

func (w *RecoveryWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- RecoveryJob{HabitID: habitID}:
	default:
		log.Printf("Recovery Worker queue full! Dropping job for habit %s", habitID)
	}
}

func (w *RecoveryWorker) processJob(ctx context.Context, job RecoveryJob) {
	today := w.now().UTC().Format("2006-01-02")
	from := progress.ShiftDate(today, -lookbackDays)

	planned, err := w.plannedRepo.ListByHabitIDAndDateRange(ctx, job.HabitID, from, today)
	if err != nil {
		log.Printf("Worker error fetching plan for %s: %v", job.HabitID, err)
		return
	}
	entries, err := w.entryRepo.ListByHabitIDAndDateRange(ctx, job.HabitID, from, today)
	if err != nil {
		log.Printf("Worker error fetching entries for %s: %v", job.HabitID, err)
		return
	}

	entryByDate := make(map[string]*domain.Entry, len(entries))
	for _, e := range entries {
		entryByDate[e.Date] = e
	}
	plannedByDate := make(map[string]bool, len(planned))
	for _, p := range planned {
		plannedByDate[p.Date] = true
	}

	for _, p := range planned {
		if p.Date > today {
			continue
		}
		if e, ok := entryByDate[p.Date]; ok && e.Status != domain.EntrySkipped {
			continue
		}

		// the day was missed; a plain done entry inside the window means
		// the user caught up off-plan
		for offset := 1; offset <= progress.RecoveryWindowDays; offset++ {
			day := progress.ShiftDate(p.Date, offset)
			e, ok := entryByDate[day]
			if !ok || e.Status != domain.EntryDone || plannedByDate[day] {
				continue
			}

			e.Status = domain.EntryRecovered
			e.Version++
			e.UpdatedAt = w.now().UTC()
			if err := w.entryRepo.Update(ctx, e); err != nil {
				log.Printf("Worker failed to tag recovery for %s on %s: %v", job.HabitID, day, err)
			} else {
				log.Printf("Entry for habit %s on %s tagged as recovered (missed %s)", job.HabitID, day, p.Date)
			}
			break
		}
	}
}
