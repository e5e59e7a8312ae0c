package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/vaneapp/vane/internal/adapters/handler/http"
	"github.com/vaneapp/vane/internal/adapters/repository"
	"github.com/vaneapp/vane/internal/core/domain"
)

func setupStatsRouter() (*gin.Engine, *repository.InMemoryEntryRepository) {
	gin.SetMode(gin.TestMode)
	repo := repository.NewInMemoryEntryRepository()
	handler := adapterHTTP.NewStatsHandler(repo)

	r := gin.New()
	api := r.Group("/api")
	handler.RegisterRoutes(api)
	return r, repo
}

func seedStatsEntry(t *testing.T, repo *repository.InMemoryEntryRepository, date string, completed []string, scheduled ...string) {
	t.Helper()
	e := &domain.Entry{Date: date}
	for _, id := range scheduled {
		e.ScheduledHabits = append(e.ScheduledHabits, domain.ScheduledHabit{ID: id, Name: id})
	}
	for _, id := range completed {
		e.CompletedHabits = append(e.CompletedHabits, domain.CompletedHabit{ID: id, Name: id})
	}
	e.Recalculate()
	require.NoError(t, repo.Upsert(context.Background(), e))
}

func TestGetMonthlyStats(t *testing.T) {
	t.Run("Success: 200 with aggregates for a past month", func(t *testing.T) {
		router, repo := setupStatsRouter()
		seedStatsEntry(t, repo, "2024-01-29", []string{"gym", "read"}, "gym", "read")
		seedStatsEntry(t, repo, "2024-01-30", []string{"gym"}, "gym", "read")
		seedStatsEntry(t, repo, "2024-01-31", []string{"gym"}, "gym", "read")

		req, _ := http.NewRequest("GET", "/api/stats/monthly/2024/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got domain.MonthlyStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

		assert.Equal(t, 1, got.PerfectDays)
		assert.Equal(t, 3, got.LongestStreak)
		assert.InDelta(t, 66.666, got.MonthlyCompletion, 0.01)
		require.NotNil(t, got.MostConsistent)
		assert.Equal(t, "gym", got.MostConsistent.ID)

		// For a past month the trend ends at the month's last day.
		require.Len(t, got.WeeklyTrend, 7)
		assert.Equal(t, "2024-01-31", got.WeeklyTrend[6].Date)
		assert.InDelta(t, 50.0, got.WeeklyTrend[6].Percentage, 0.001)
	})

	t.Run("Success: empty month still returns a full payload", func(t *testing.T) {
		router, _ := setupStatsRouter()

		req, _ := http.NewRequest("GET", "/api/stats/monthly/2024/6", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got domain.MonthlyStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 0, got.PerfectDays)
		assert.Nil(t, got.MostConsistent)
		assert.Len(t, got.WeeklyTrend, 7)
	})

	t.Run("Fail: 400 on invalid year or month", func(t *testing.T) {
		router, _ := setupStatsRouter()

		for _, path := range []string{
			"/api/stats/monthly/abc/1",
			"/api/stats/monthly/2024/0",
			"/api/stats/monthly/2024/13",
		} {
			req, _ := http.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code, path)
		}
	})
}
