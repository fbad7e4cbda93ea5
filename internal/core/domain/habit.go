package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitTitleEmpty      = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong    = errors.New("habit title is too long (max 100 chars)")
	ErrHabitInvalidUserID   = errors.New("invalid user id")
	ErrInvalidWeightCU      = errors.New("weight must be between 0 and 24 CU")
	ErrInvalidMicroWeightCU = errors.New("micro weight must be positive and smaller than the full weight")
	ErrTooManyContextTags   = errors.New("too many context tags (max 5)")
	ErrHabitInactive        = errors.New("cannot update an inactive habit")
)

const (
	MaxTitleLen    = 100
	MaxWeightCU    = 24.0
	MaxContextTags = 5
)

// Habit is a recurring activity priced in capacity units (CU). An optional
// micro variant carries a smaller weight for partial completion.
type Habit struct {
	ID            string     `json:"id" db:"id"`
	UserID        string     `json:"user_id" db:"user_id"`
	Title         string     `json:"title" db:"title"`
	WeightCU      float64    `json:"weight_cu" db:"weight_cu"`
	MicroTitle    *string    `json:"micro_title,omitempty" db:"micro_title"`
	MicroWeightCU float64    `json:"micro_weight_cu" db:"micro_weight_cu"`
	ContextTags   []string   `json:"context_tags,omitempty" db:"-"`
	HasMicro      bool       `json:"has_micro" db:"has_micro"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	SortOrder     int        `json:"sort_order" db:"sort_order"`
	Version       int        `json:"version" db:"version"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var unique []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		unique = append(unique, t)
	}

	sort.Strings(unique)
	return unique
}

func validateHabit(title, microTitle string, weight, microWeight float64, tags []string) (string, []string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", nil, ErrHabitTitleEmpty
	}
	if len(trimmed) > MaxTitleLen {
		return "", nil, ErrHabitTitleTooLong
	}

	if weight <= 0 || weight > MaxWeightCU {
		return "", nil, ErrInvalidWeightCU
	}

	if microTitle != "" {
		if microWeight <= 0 || microWeight >= weight {
			return "", nil, ErrInvalidMicroWeightCU
		}
	}

	clean := normalizeTags(tags)
	if len(clean) > MaxContextTags {
		return "", nil, ErrTooManyContextTags
	}

	return trimmed, clean, nil
}

func NewHabit(userID, title, microTitle string, weight, microWeight float64, tags []string) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	mt := strings.TrimSpace(microTitle)

	cleanTitle, cleanTags, err := validateHabit(title, mt, weight, microWeight, tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	h := &Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       cleanTitle,
		WeightCU:    weight,
		ContextTags: cleanTags,
		IsActive:    true,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if mt != "" {
		h.MicroTitle = &mt
		h.MicroWeightCU = microWeight
		h.HasMicro = true
	}

	return h, nil
}

func (h *Habit) Update(title, microTitle string, weight, microWeight float64, tags []string) error {
	if !h.IsActive {
		return ErrHabitInactive
	}

	mt := strings.TrimSpace(microTitle)

	cleanTitle, cleanTags, err := validateHabit(title, mt, weight, microWeight, tags)
	if err != nil {
		return err
	}

	h.Title = cleanTitle
	h.WeightCU = weight
	h.ContextTags = cleanTags

	if mt != "" {
		h.MicroTitle = &mt
		h.MicroWeightCU = microWeight
		h.HasMicro = true
	} else {
		h.MicroTitle = nil
		h.MicroWeightCU = 0
		h.HasMicro = false
	}

	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) ChangePosition(newOrder int) error {
	if !h.IsActive {
		return ErrHabitInactive
	}

	h.SortOrder = newOrder
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) Deactivate() {
	if !h.IsActive {
		return
	}
	h.IsActive = false
	h.UpdatedAt = time.Now().UTC()
}

func (h *Habit) Activate() {
	if h.IsActive {
		return
	}
	h.IsActive = true
	h.UpdatedAt = time.Now().UTC()
}
