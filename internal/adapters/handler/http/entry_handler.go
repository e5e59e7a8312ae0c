package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vaneapp/vane/internal/core/domain"
)

type EntryHandler struct {
	repo domain.EntryRepository
}

func NewEntryHandler(repo domain.EntryRepository) *EntryHandler {
	return &EntryHandler{repo: repo}
}

type upsertEntryRequest struct {
	ScheduledHabits []domain.ScheduledHabit `json:"scheduledHabits"`
	CompletedHabits []domain.CompletedHabit `json:"completedHabits"`
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.GET("/month/:year/:month", h.ListByMonth)
		entries.GET("/:date", h.Get)
		entries.PUT("/:date", h.Upsert)
	}
}

func (h *EntryHandler) Get(c *gin.Context) {
	date := c.Param("date")
	if !domain.IsValidDateString(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	entry, err := h.repo.GetByDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) Upsert(c *gin.Context) {
	date := c.Param("date")
	if !domain.IsValidDateString(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	var req upsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &domain.Entry{
		Date:            date,
		ScheduledHabits: req.ScheduledHabits,
		CompletedHabits: req.CompletedHabits,
	}
	if entry.ScheduledHabits == nil {
		entry.ScheduledHabits = []domain.ScheduledHabit{}
	}
	if entry.CompletedHabits == nil {
		entry.CompletedHabits = []domain.CompletedHabit{}
	}
	entry.Recalculate()

	if err := entry.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.Upsert(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) ListByMonth(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	entries, err := h.repo.ListByMonth(c.Request.Context(), year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if entries == nil {
		entries = []*domain.Entry{}
	}

	c.JSON(http.StatusOK, entries)
}

func parseYearMonth(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, false
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected 1-12"})
		return 0, 0, false
	}

	return year, month, true
}
