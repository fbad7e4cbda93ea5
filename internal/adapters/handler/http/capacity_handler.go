package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucabarzi/ritmo/internal/adapters/handler/http/middleware"
	"github.com/lucabarzi/ritmo/internal/core/services"
)

type CapacityHandler struct {
	svc *services.CapacityService
}

func NewCapacityHandler(svc *services.CapacityService) *CapacityHandler {
	return &CapacityHandler{
		svc: svc,
	}
}

type setCapacityRequest struct {
	WeekStart  string  `json:"week_start" binding:"required"`
	CapacityCU float64 `json:"capacity_cu" binding:"required"`
}

type setDefaultCapacityRequest struct {
	// null clears the default, making capacity unknown again
	CapacityCU *float64 `json:"capacity_cu"`
}

func (h *CapacityHandler) RegisterRoutes(router *gin.RouterGroup) {
	capacity := router.Group("/capacity")
	{
		capacity.PUT("/weeks", h.SetWeek)
		capacity.GET("/weeks", h.ListByRange)
		capacity.PUT("/default", h.SetDefault)
	}
}

func (h *CapacityHandler) SetWeek(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req setCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.SetCapacityInput{
		UserID:     userID,
		WeekStart:  req.WeekStart,
		CapacityCU: req.CapacityCU,
	}

	capacity, err := h.svc.SetWeek(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, capacity)
}

func (h *CapacityHandler) ListByRange(c *gin.Context) {
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

	list, err := h.svc.ListByRange(c.Request.Context(), userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *CapacityHandler) SetDefault(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req setDefaultCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	user, err := h.svc.SetDefault(c.Request.Context(), userID, req.CapacityCU)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"default_capacity_cu": user.DefaultCapacityCU,
	})
}
