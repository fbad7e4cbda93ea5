package progress

import (
	"errors"
	"fmt"
)

var ErrInvalidRange = errors.New("invalid date range")

// Range presets accepted by the resolver.
const (
	PresetThisWeek    = "this_week"
	PresetLastWeek    = "last_week"
	PresetFourWeeks   = "four_weeks"
	PresetThreeMonths = "three_months"
	PresetCustom      = "custom"
)

// DateRange is a resolved inclusive [Start, End] window plus the
// equal-length period immediately preceding it.
type DateRange struct {
	Preset        string `json:"preset"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Today         string `json:"today"`
	Label         string `json:"label"`
	PreviousStart string `json:"previous_start"`
	PreviousEnd   string `json:"previous_end"`
}

// ResolveRange turns a preset plus today into a concrete range. Custom
// ranges require both bounds; anything malformed or inverted fails with
// ErrInvalidRange, never a silent clamp.
func ResolveRange(preset, today, start, end string) (DateRange, error) {
	if _, ok := parseISO(today); !ok {
		return DateRange{}, fmt.Errorf("%w: bad today %q", ErrInvalidRange, today)
	}

	var label string
	switch preset {
	case PresetThisWeek:
		start = WeekStart(today)
		end = ShiftDate(start, 6)
		label = "This week"
	case PresetLastWeek:
		start = ShiftDate(WeekStart(today), -7)
		end = ShiftDate(WeekStart(today), -1)
		label = "Last week"
	case PresetFourWeeks:
		start = ShiftDate(today, -27)
		end = today
		label = "Last 4 weeks"
	case PresetThreeMonths:
		start = ShiftDate(today, -89)
		end = today
		label = "Last 3 months"
	case PresetCustom:
		s, okS := parseISO(start)
		e, okE := parseISO(end)
		if !okS || !okE {
			return DateRange{}, fmt.Errorf("%w: custom preset requires valid start and end", ErrInvalidRange)
		}
		if s.After(e) {
			return DateRange{}, fmt.Errorf("%w: start %s after end %s", ErrInvalidRange, start, end)
		}
		label = start + " to " + end
	default:
		return DateRange{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidRange, preset)
	}

	days := DaysBetween(start, end)
	return DateRange{
		Preset:        preset,
		Start:         start,
		End:           end,
		Today:         today,
		Label:         label,
		PreviousStart: ShiftDate(start, -(days + 1)),
		PreviousEnd:   ShiftDate(start, -1),
	}, nil
}
