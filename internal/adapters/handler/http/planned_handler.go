package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucabarzi/ritmo/internal/adapters/handler/http/middleware"
	"github.com/lucabarzi/ritmo/internal/core/services"
)

type PlannedHandler struct {
	svc *services.PlannedService
}

func NewPlannedHandler(svc *services.PlannedService) *PlannedHandler {
	return &PlannedHandler{
		svc: svc,
	}
}

type createPlannedRequest struct {
	HabitID    string  `json:"habit_id" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	PlannedCU  float64 `json:"planned_cu"`
	ContextTag string  `json:"context_tag"`
}

func (h *PlannedHandler) RegisterRoutes(router *gin.RouterGroup) {
	planned := router.Group("/planned")
	{
		planned.POST("", h.Create)
		planned.GET("", h.ListByRange)
		planned.DELETE("/:id", h.Delete)
	}
}

func (h *PlannedHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createPlannedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.CreatePlannedInput{
		UserID:     userID,
		HabitID:    req.HabitID,
		Date:       req.Date,
		PlannedCU:  req.PlannedCU,
		ContextTag: req.ContextTag,
	}

	planned, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, planned)
}

func (h *PlannedHandler) ListByRange(c *gin.Context) {
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

	list, err := h.svc.ListByDateRange(c.Request.Context(), userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *PlannedHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	err := h.svc.Delete(c.Request.Context(), id, userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
