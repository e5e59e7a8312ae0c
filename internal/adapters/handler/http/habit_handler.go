package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaneapp/vane/internal/core/domain"
)

type HabitHandler struct {
	repo domain.HabitRepository
}

func NewHabitHandler(repo domain.HabitRepository) *HabitHandler {
	return &HabitHandler{repo: repo}
}

type createHabitRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Days        []string `json:"days"`
}

type updateHabitRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Days        []string          `json:"days"`
	Done        bool              `json:"done"`
	Stats       domain.HabitStats `json:"stats"`
}

func parseDays(raw []string) ([]domain.Weekday, error) {
	days := make([]domain.Weekday, 0, len(raw))
	for _, d := range raw {
		day, err := domain.ParseWeekday(d)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrHabitNameEmpty) ||
		errors.Is(err, domain.ErrHabitNameTooLong) ||
		errors.Is(err, domain.ErrHabitDescTooLong) ||
		errors.Is(err, domain.ErrInvalidWeekday)
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	days, err := parseDays(req.Days)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := domain.NewHabit(req.Name, req.Description, days)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if err := h.repo.Create(c.Request.Context(), habit); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if list == nil {
		list = []*domain.Habit{}
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	days, err := parseDays(req.Days)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := habit.Update(req.Name, req.Description, days); err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	habit.Done = req.Done
	habit.Stats = req.Stats
	if habit.Stats.TotalCompleted < 0 {
		habit.Stats.TotalCompleted = 0
	}
	if habit.Stats.Streak < 0 {
		habit.Stats.Streak = 0
	}

	if err := h.repo.Update(c.Request.Context(), habit); err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
