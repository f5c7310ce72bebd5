package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"crudbase/internal/companion"
	"crudbase/internal/database"
	"crudbase/internal/handlers"
	"crudbase/internal/metadata"
	"crudbase/internal/models"
	"crudbase/internal/responses"
	"crudbase/internal/routes"
)

func isDockerRunning(ctx context.Context) bool {
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

func setupRouter(t *testing.T, ctx context.Context) *gin.Engine {
	t.Helper()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("crudbase_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(ctx, pool, zap.NewNop()))

	registry := metadata.NewRegistry(pool)
	log := zap.NewNop()

	contacts := companion.New(pool, registry, log, companion.Config[*models.Contact]{
		New:           func() *models.Contact { return &models.Contact{} },
		FilterColumns: []string{"name", "email", "phone"},
		DefaultOrder:  "id",
	})
	tasks := companion.New(pool, registry, log, companion.Config[*models.Task]{
		New:           func() *models.Task { return &models.Task{} },
		FilterColumns: []string{"title", "status"},
		DefaultOrder:  "id",
	})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.RegisterRoutes(router,
		handlers.NewCRUDHandler(contacts, log, "email"),
		handlers.NewCRUDHandler(tasks, log),
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, responses.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp responses.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestCRUDHandler_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	if !isDockerRunning(ctx) {
		t.Skip("Docker is not running, skipping integration test")
	}

	router := setupRouter(t, ctx)

	var createdID int64

	t.Run("Create", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPost, "/api/v1/contacts", map[string]any{
			"name":  "Ann Archer",
			"email": "ann@example.com",
			"phone": "555-0101",
			"age":   34,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "success", resp.Status)

		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var created models.Contact
		require.NoError(t, json.Unmarshal(data, &created))
		require.NotZero(t, created.Id)
		createdID = created.Id
	})

	t.Run("CreateInvalidBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CreateValidationFailure", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPost, "/api/v1/contacts", map[string]any{
			"email": "not-an-address",
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "Validation failed", resp.Message)
		assert.NotNil(t, resp.Data)
	})

	t.Run("CreateDuplicateEmail", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPost, "/api/v1/contacts", map[string]any{
			"name":  "Ann Again",
			"email": "ann@example.com",
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Validation failed", resp.Message)
	})

	t.Run("Get", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/contacts/%d", createdID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", resp.Status)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodGet, "/api/v1/contacts/999999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GetInvalidID", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodGet, "/api/v1/contacts/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("List", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodGet, "/api/v1/contacts?page=1&length=10&filter=ann", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var page companion.Page[*models.Contact]
		require.NoError(t, json.Unmarshal(data, &page))
		require.Len(t, page.Records, 1)
		assert.Equal(t, "Ann Archer", page.Records[0].Name)
		assert.Equal(t, int64(1), page.TotalItems)
	})

	t.Run("Update", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/contacts/%d", createdID), map[string]any{
			"name":  "Ann A. Archer",
			"email": "ann@example.com",
			"phone": "555-0102",
			"age":   35,
		})
		require.Equal(t, http.StatusOK, w.Code)

		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var updated models.Contact
		require.NoError(t, json.Unmarshal(data, &updated))
		assert.Equal(t, "Ann A. Archer", updated.Name)
		assert.Equal(t, 35, updated.Age)
	})

	t.Run("UpdateNotFound", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPut, "/api/v1/contacts/999999", map[string]any{
			"name":  "Nobody",
			"email": "nobody@example.com",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/contacts/%d", createdID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w, _ = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/contacts/%d", createdID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Tasks", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPost, "/api/v1/tasks", map[string]any{
			"title":    "write report",
			"priority": 2,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var created models.Task
		require.NoError(t, json.Unmarshal(data, &created))
		// Prepare fills the default status before insert
		assert.Equal(t, models.TaskStatusOpen, created.Status)

		w, _ = doJSON(t, router, http.MethodGet, "/api/v1/tasks?search=status:open", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
