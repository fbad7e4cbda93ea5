package http

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucabarzi/ritmo/internal/adapters/handler/http/middleware"
	"github.com/lucabarzi/ritmo/internal/core/progress"
	"github.com/lucabarzi/ritmo/internal/core/services"
)

// ExportHandler serves the two download formats. The CSV flattens the
// analytics report; the ICS consumes planned occurrences directly.
type ExportHandler struct {
	progressSvc *services.ProgressService
	plannedSvc  *services.PlannedService
	habitSvc    *services.HabitService
}

func NewExportHandler(progressSvc *services.ProgressService, plannedSvc *services.PlannedService, habitSvc *services.HabitService) *ExportHandler {
	return &ExportHandler{
		progressSvc: progressSvc,
		plannedSvc:  plannedSvc,
		habitSvc:    habitSvc,
	}
}

func (h *ExportHandler) RegisterRoutes(r *gin.RouterGroup) {
	export := r.Group("/export")
	{
		export.GET("/progress.csv", h.ProgressCSV)
		export.GET("/plan.ics", h.PlanICS)
	}
}

var csvHeader = []string{
	"row_type", "date", "planned_cu", "done_cu", "micro_cu",
	"done_count", "micro_count", "skipped_count", "success_rate",
	"habit", "habit_planned_cu", "habit_done", "habit_micro", "habit_missed", "habit_tip",
}

func (h *ExportHandler) ProgressCSV(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	preset := c.Query("preset")
	if preset == "" {
		preset = progress.PresetThisWeek
	}
	today := c.Query("today")
	if today == "" {
		today = time.Now().UTC().Format("2006-01-02")
	}

	report, err := h.progressSvc.GetReport(c.Request.Context(), services.ProgressInput{
		UserID: userID,
		Preset: preset,
		Start:  c.Query("start"),
		End:    c.Query("end"),
		Today:  today,
	})
	if err != nil {
		if errors.Is(err, progress.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="progress_%s_%s.csv"`, report.Range.Start, report.Range.End))

	w := csv.NewWriter(c.Writer)
	_ = w.Write(csvHeader)

	for _, d := range report.Daily {
		_ = w.Write([]string{
			"daily", d.Date,
			formatCU(d.PlannedCU), formatCU(d.DoneCU), formatCU(d.MicroCU),
			strconv.Itoa(d.DoneCount), strconv.Itoa(d.MicroCount), strconv.Itoa(d.SkippedCount),
			formatRate(d.SuccessRate),
			"", "", "", "", "", "",
		})
	}

	for _, a := range report.TopAttention {
		_ = w.Write([]string{
			"habit", "",
			"", "", "",
			"", "", "",
			formatRate(a.SuccessRate),
			a.Title, formatCU(a.PlannedCU),
			strconv.Itoa(a.Done), strconv.Itoa(a.Micro), strconv.Itoa(a.Missed),
			a.Tip,
		})
	}

	w.Flush()
}

func (h *ExportHandler) PlanICS(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}
	if _, err := time.Parse("2006-01-02", from); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
		return
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
		return
	}

	planned, err := h.plannedSvc.ListByDateRange(c.Request.Context(), userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	habits, err := h.habitSvc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	titleByID := make(map[string]string, len(habits))
	for _, habit := range habits {
		titleByID[habit.ID] = habit.Title
	}

	var b strings.Builder
	writeICSLine(&b, "BEGIN:VCALENDAR")
	writeICSLine(&b, "VERSION:2.0")
	writeICSLine(&b, "PRODID:-//ritmo//plan//EN")
	writeICSLine(&b, "CALSCALE:GREGORIAN")

	stamp := time.Now().UTC().Format("20060102T150405Z")

	for _, p := range planned {
		title, ok := titleByID[p.HabitID]
		if !ok {
			title = "Planned habit"
		}

		writeICSLine(&b, "BEGIN:VEVENT")
		writeICSLine(&b, "UID:"+p.ID+"@ritmo")
		writeICSLine(&b, "DTSTAMP:"+stamp)
		writeICSLine(&b, "DTSTART;VALUE=DATE:"+icsDate(p.Date))
		// all-day events end on the following day, exclusive
		writeICSLine(&b, "DTEND;VALUE=DATE:"+icsDate(progress.ShiftDate(p.Date, 1)))
		writeICSLine(&b, fmt.Sprintf("SUMMARY:%s (%s CU)", icsEscape(title), formatCU(p.PlannedCU)))
		if p.ContextTag != "" {
			writeICSLine(&b, "CATEGORIES:"+icsEscape(p.ContextTag))
		}
		writeICSLine(&b, "END:VEVENT")
	}

	writeICSLine(&b, "END:VCALENDAR")

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="plan_%s_%s.ics"`, from, to))
	c.String(http.StatusOK, b.String())
}

func formatCU(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// icsDate converts YYYY-MM-DD to the RFC 5545 compact form.
func icsDate(iso string) string {
	return strings.ReplaceAll(iso, "-", "")
}

// icsEscape escapes text values per RFC 5545 §3.3.11.
func icsEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

func writeICSLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}
