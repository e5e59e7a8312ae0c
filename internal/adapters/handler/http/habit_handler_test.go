package http_test

import (
	"bytes"
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

func setupHabitRouter() (*gin.Engine, *repository.InMemoryHabitRepository) {
	gin.SetMode(gin.TestMode)
	repo := repository.NewInMemoryHabitRepository()
	handler := adapterHTTP.NewHabitHandler(repo)

	r := gin.New()
	api := r.Group("/api")
	handler.RegisterRoutes(api)
	return r, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateHabit(t *testing.T) {
	t.Run("Success: 201 Created", func(t *testing.T) {
		router, _ := setupHabitRouter()

		w := doJSON(t, router, "POST", "/api/habits", map[string]any{
			"name":        "Gym",
			"description": "before work",
			"days":        []string{"mon", "fri"},
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var created domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Gym", created.Name)
		assert.Equal(t, []domain.Weekday{domain.Monday, domain.Friday}, created.Days)
		assert.False(t, created.Done)
	})

	t.Run("Fail: 400 on missing name", func(t *testing.T) {
		router, _ := setupHabitRouter()
		w := doJSON(t, router, "POST", "/api/habits", map[string]any{"days": []string{"mon"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 on bad weekday key", func(t *testing.T) {
		router, _ := setupHabitRouter()
		w := doJSON(t, router, "POST", "/api/habits", map[string]any{
			"name": "Gym",
			"days": []string{"monday"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListHabits(t *testing.T) {
	t.Run("Success: 200 with empty array, never null", func(t *testing.T) {
		router, _ := setupHabitRouter()

		req, _ := http.NewRequest("GET", "/api/habits", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("Success: 200 with created habits", func(t *testing.T) {
		router, _ := setupHabitRouter()
		doJSON(t, router, "POST", "/api/habits", map[string]any{"name": "Gym"})
		doJSON(t, router, "POST", "/api/habits", map[string]any{"name": "Read"})

		req, _ := http.NewRequest("GET", "/api/habits", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var list []*domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 2)
	})
}

func TestUpdateHabit(t *testing.T) {
	t.Run("Success: 200 replaces fields and stats", func(t *testing.T) {
		router, _ := setupHabitRouter()

		w := doJSON(t, router, "POST", "/api/habits", map[string]any{"name": "Gym"})
		var created domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = doJSON(t, router, "PUT", "/api/habits/"+created.ID, map[string]any{
			"name": "Gym (morning)",
			"days": []string{"tue"},
			"done": true,
			"stats": map[string]any{
				"totalCompleted":    6,
				"lastCompletedDate": "2024-01-08",
				"streak":            3,
			},
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var updated domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "Gym (morning)", updated.Name)
		assert.True(t, updated.Done)
		assert.Equal(t, 6, updated.Stats.TotalCompleted)
		assert.Equal(t, 3, updated.Stats.Streak)
		require.NotNil(t, updated.Stats.LastCompletedDate)
		assert.Equal(t, "2024-01-08", *updated.Stats.LastCompletedDate)
	})

	t.Run("Negative stats are floored at zero", func(t *testing.T) {
		router, _ := setupHabitRouter()

		w := doJSON(t, router, "POST", "/api/habits", map[string]any{"name": "Gym"})
		var created domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = doJSON(t, router, "PUT", "/api/habits/"+created.ID, map[string]any{
			"name":  "Gym",
			"stats": map[string]any{"totalCompleted": -3, "streak": -1},
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var updated domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, 0, updated.Stats.TotalCompleted)
		assert.Equal(t, 0, updated.Stats.Streak)
	})

	t.Run("Fail: 404 on unknown id", func(t *testing.T) {
		router, _ := setupHabitRouter()
		w := doJSON(t, router, "PUT", "/api/habits/nope", map[string]any{"name": "X"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: 400 on empty name", func(t *testing.T) {
		router, _ := setupHabitRouter()

		w := doJSON(t, router, "POST", "/api/habits", map[string]any{"name": "Gym"})
		var created domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = doJSON(t, router, "PUT", "/api/habits/"+created.ID, map[string]any{"name": ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteHabit(t *testing.T) {
	t.Run("Success: 204 No Content", func(t *testing.T) {
		router, repo := setupHabitRouter()

		w := doJSON(t, router, "POST", "/api/habits", map[string]any{"name": "Gym"})
		var created domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		req, _ := http.NewRequest("DELETE", "/api/habits/"+created.ID, nil)
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, req)

		assert.Equal(t, http.StatusNoContent, w2.Code)

		list, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Fail: 404 on unknown id", func(t *testing.T) {
		router, _ := setupHabitRouter()

		req, _ := http.NewRequest("DELETE", "/api/habits/nope", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
