package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/lucabarzi/ritmo/internal/adapters/handler/http"
	"github.com/lucabarzi/ritmo/internal/adapters/handler/http/middleware"
	"github.com/lucabarzi/ritmo/internal/adapters/repository"
	"github.com/lucabarzi/ritmo/internal/core/domain"
	"github.com/lucabarzi/ritmo/internal/core/services"
	"github.com/lucabarzi/ritmo/internal/core/workers"
)

// testEnv wires every handler against the in-memory repositories, with a
// header-based stand-in for the auth middleware.
type testEnv struct {
	router       *gin.Engine
	habitRepo    *repository.InMemoryHabitRepository
	plannedRepo  *repository.InMemoryPlannedRepository
	entryRepo    *repository.InMemoryEntryRepository
	capacityRepo *repository.InMemoryCapacityRepository
	userRepo     *repository.InMemoryUserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		habitRepo:    repository.NewInMemoryHabitRepository(),
		plannedRepo:  repository.NewInMemoryPlannedRepository(),
		entryRepo:    repository.NewInMemoryEntryRepository(),
		capacityRepo: repository.NewInMemoryCapacityRepository(),
		userRepo:     repository.NewInMemoryUserRepository(),
	}

	worker := workers.NewRecoveryWorker(env.plannedRepo, env.entryRepo)

	habitSvc := services.NewHabitService(env.habitRepo)
	plannedSvc := services.NewPlannedService(env.plannedRepo, env.habitRepo)
	entrySvc := services.NewEntryService(env.entryRepo, env.habitRepo, worker)
	capacitySvc := services.NewCapacityService(env.capacityRepo, env.userRepo)
	progressSvc := services.NewProgressService(env.habitRepo, env.plannedRepo, env.entryRepo, env.capacityRepo, env.userRepo)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(middleware.ContextUserIDKey, userID)
		}
		c.Next()
	})

	api := r.Group("/api/v1")
	adapterHTTP.NewHabitHandler(habitSvc).RegisterRoutes(api)
	adapterHTTP.NewPlannedHandler(plannedSvc).RegisterRoutes(api)
	adapterHTTP.NewEntryHandler(entrySvc).RegisterRoutes(api)
	adapterHTTP.NewCapacityHandler(capacitySvc).RegisterRoutes(api)
	adapterHTTP.NewProgressHandler(progressSvc).RegisterRoutes(api)
	adapterHTTP.NewExportHandler(progressSvc, plannedSvc, habitSvc).RegisterRoutes(api)

	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedUser(t *testing.T, id string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(id, id+"@example.com")
	require.NoError(t, err)
	require.NoError(t, e.userRepo.Create(context.Background(), user))
	return user
}

func (e *testEnv) seedHabit(t *testing.T, userID, title string) *domain.Habit {
	t.Helper()
	habit, err := domain.NewHabit(userID, title, "", 3, 0, nil)
	require.NoError(t, err)
	require.NoError(t, e.habitRepo.Create(context.Background(), habit))
	return habit
}

func (e *testEnv) seedPlanned(t *testing.T, userID, habitID, date string, cu float64) *domain.PlannedOccurrence {
	t.Helper()
	planned, err := domain.NewPlannedOccurrence(userID, habitID, date, cu, "")
	require.NoError(t, err)
	require.NoError(t, e.plannedRepo.Create(context.Background(), planned))
	return planned
}

func (e *testEnv) seedEntry(t *testing.T, userID, habitID, date, status string, cu float64) *domain.Entry {
	t.Helper()
	entry := domain.NewEntry(habitID, userID, date, status, cu)
	require.NoError(t, entry.Validate())
	require.NoError(t, e.entryRepo.Create(context.Background(), entry))
	return entry
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
