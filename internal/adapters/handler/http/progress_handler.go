package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucabarzi/ritmo/internal/adapters/handler/http/middleware"
	"github.com/lucabarzi/ritmo/internal/core/progress"
	"github.com/lucabarzi/ritmo/internal/core/services"
)

type ProgressHandler struct {
	svc *services.ProgressService
}

func NewProgressHandler(svc *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

func (h *ProgressHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/progress", h.GetReport)
}

// GetReport godoc
// @Summary Progress analytics report for a date range
// @Tags progress
// @Produce json
// @Param preset query string true "this_week | last_week | four_weeks | three_months | custom"
// @Param start query string false "YYYY-MM-DD, custom preset only"
// @Param end query string false "YYYY-MM-DD, custom preset only"
// @Param today query string false "client's local calendar day, defaults to server UTC day"
// @Success 200 {object} progress.Report
// @Router /progress [get]
func (h *ProgressHandler) GetReport(c *gin.Context) {
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

	input := services.ProgressInput{
		UserID: userID,
		Preset: preset,
		Start:  c.Query("start"),
		End:    c.Query("end"),
		Today:  today,
	}

	report, err := h.svc.GetReport(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, progress.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
