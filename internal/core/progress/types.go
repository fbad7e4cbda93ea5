package progress

// Entry statuses as stored by the entry log. The engine only inspects these
// values, it never writes them.
const (
	StatusDone      = "done"
	StatusMicroDone = "micro_done"
	StatusSkipped   = "skipped"
	StatusRecovered = "recovered"
)

// PlannedRow is one planned occurrence of a habit on one calendar day.
// At most one per (habit, date) pair; duplicates resolve last-write-wins.
type PlannedRow struct {
	ID         string  `json:"id"`
	HabitID    string  `json:"habit_id"`
	Date       string  `json:"date"`
	PlannedCU  float64 `json:"planned_cu"`
	ContextTag string  `json:"context_tag,omitempty"`
}

// EntryRow is the recorded outcome for a habit on one calendar day.
type EntryRow struct {
	ID       string  `json:"id"`
	HabitID  string  `json:"habit_id"`
	Date     string  `json:"date"`
	ActualCU float64 `json:"actual_cu"`
	Status   string  `json:"status"`
	Note     string  `json:"note,omitempty"`
}

// HabitRow is the habit definition slice the engine needs for attention
// ranking.
type HabitRow struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	WeightCU      float64  `json:"weight_cu"`
	MicroTitle    string   `json:"micro_title,omitempty"`
	MicroWeightCU float64  `json:"micro_weight_cu"`
	ContextTags   []string `json:"context_tags,omitempty"`
	HasMicro      bool     `json:"has_micro"`
	IsActive      bool     `json:"is_active"`
}

// DailyPoint is one chart row per calendar day in range.
type DailyPoint struct {
	Date           string   `json:"date"`
	Label          string   `json:"label"`
	PlannedCU      float64  `json:"planned_cu"`
	DoneCU         float64  `json:"done_cu"`
	MicroCU        float64  `json:"micro_cu"`
	DoneCount      int      `json:"done_count"`
	MicroCount     int      `json:"micro_count"`
	SkippedCount   int      `json:"skipped_count"`
	PlannedCount   int      `json:"planned_count"`
	SuccessRate    *float64 `json:"success_rate"`
	HasMissingData bool     `json:"has_missing_data"`
}

// CompletionBreakdown aggregates the classification over a whole range.
type CompletionBreakdown struct {
	Done        int      `json:"done"`
	Micro       int      `json:"micro"`
	Skipped     int      `json:"skipped"`
	Total       int      `json:"total"`
	DoneCU      float64  `json:"done_cu"`
	MicroCU     float64  `json:"micro_cu"`
	SuccessRate *float64 `json:"success_rate"`
	Note        string   `json:"note"`
}

// CapacitySummary compares used CU against the weekly budgets in range.
// BudgetCU is nil when capacity is unknown for any day in range.
type CapacitySummary struct {
	UsedCU   float64  `json:"used_cu"`
	BudgetCU *float64 `json:"budget_cu"`
	Status   string   `json:"status"`
}

// LoadBucket groups days by planned load.
type LoadBucket struct {
	Label       string   `json:"label"`
	Days        int      `json:"days"`
	SuccessRate *float64 `json:"success_rate"`
}

// SweetSpot is the bucket empirically associated with the best success rate.
type SweetSpot struct {
	Bucket string  `json:"bucket"`
	CU     float64 `json:"cu"`
	Label  string  `json:"label"`
}

// SlipRecovery measures how many missed occurrences were caught up.
type SlipRecovery struct {
	Missed       int      `json:"missed"`
	Recovered    int      `json:"recovered"`
	RecoveryRate *float64 `json:"recovery_rate"`
}

// Momentum compares the current completion rate against the previous period.
type Momentum struct {
	CurrentRate  *float64 `json:"current_rate"`
	PreviousRate *float64 `json:"previous_rate"`
	Delta        *float64 `json:"delta"`
	Trend        string   `json:"trend"`
}

// Suggestion pairs explanatory text with a call-to-action label.
type Suggestion struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

// HabitAttention is the per-habit rollup surfaced on the dashboard.
// The ranking score itself stays internal.
type HabitAttention struct {
	HabitID     string     `json:"habit_id"`
	Title       string     `json:"title"`
	PlannedCU   float64    `json:"planned_cu"`
	Done        int        `json:"done"`
	Micro       int        `json:"micro"`
	Missed      int        `json:"missed"`
	SuccessRate *float64   `json:"success_rate"`
	Tip         string     `json:"tip"`
	Suggestion  Suggestion `json:"suggestion"`
	History     []string   `json:"history"`

	score float64
}

// Insight is the report headline.
type Insight struct {
	Kind     string `json:"kind"`
	Headline string `json:"headline"`
}

// States tells the consuming UI which rendering path to take.
type States struct {
	HasHabits         bool `json:"has_habits"`
	HasEntriesInRange bool `json:"has_entries_in_range"`
	HasPartialMissing bool `json:"has_partial_missing"`
}

// Summary is the top block of the report.
type Summary struct {
	Capacity     CapacitySummary     `json:"capacity"`
	Completion   CompletionBreakdown `json:"completion"`
	Momentum     Momentum            `json:"momentum"`
	SlipRecovery SlipRecovery        `json:"slip_recovery"`
}

// Report is the full analytics response.
type Report struct {
	Range        DateRange        `json:"range"`
	Summary      Summary          `json:"summary"`
	Insight      Insight          `json:"insight"`
	Daily        []DailyPoint     `json:"daily"`
	Buckets      []LoadBucket     `json:"buckets"`
	SweetSpot    *SweetSpot       `json:"sweet_spot"`
	TopAttention []HabitAttention `json:"top_attention"`
	States       States           `json:"states"`
}

// Input is the full row contract from the data-fetch layer. The engine never
// mutates any of these collections.
type Input struct {
	Range           DateRange
	Habits          []HabitRow
	Planned         []PlannedRow
	Entries         []EntryRow
	PrevPlanned     []PlannedRow
	PrevEntries     []EntryRow
	HistoryPlanned  []PlannedRow
	HistoryEntries  []EntryRow
	CapacityByWeek  map[string]float64
	DefaultCapacity *float64
}

type rowKey struct {
	habitID string
	date    string
}

// entryMap dedups entries by (habit, date), last-write-wins.
func entryMap(entries []EntryRow) map[rowKey]EntryRow {
	m := make(map[rowKey]EntryRow, len(entries))
	for _, e := range entries {
		m[rowKey{e.HabitID, e.Date}] = e
	}
	return m
}

// plannedMap dedups planned rows by (habit, date), last-write-wins.
func plannedMap(planned []PlannedRow) map[rowKey]PlannedRow {
	m := make(map[rowKey]PlannedRow, len(planned))
	for _, p := range planned {
		m[rowKey{p.HabitID, p.Date}] = p
	}
	return m
}

func ptrF(v float64) *float64 { return &v }
