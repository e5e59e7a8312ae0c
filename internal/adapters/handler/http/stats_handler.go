package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vaneapp/vane/internal/core/domain"
	"github.com/vaneapp/vane/internal/core/stats"
)

type StatsHandler struct {
	repo domain.EntryRepository
	now  func() time.Time
}

func NewStatsHandler(repo domain.EntryRepository) *StatsHandler {
	return &StatsHandler{repo: repo, now: time.Now}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats/monthly/:year/:month", h.GetMonthly)
}

func (h *StatsHandler) GetMonthly(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	entries, err := h.repo.ListByMonth(c.Request.Context(), year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats.ComputeMonthly(entries, h.trendAnchor(year, month)))
}

// trendAnchor ends the weekly trend at today for the current month and at
// the month's last day for past months.
func (h *StatsHandler) trendAnchor(year, month int) time.Time {
	now := h.now().UTC()
	if now.Year() == year && int(now.Month()) == month {
		return now
	}
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}
