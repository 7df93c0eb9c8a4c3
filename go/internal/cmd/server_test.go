package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/lineupdraft/go/internal/config"
	"github.com/mcdev12/lineupdraft/go/internal/draft/repository"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	cfg := &config.Config{StoreDriver: config.StoreMemory, Tuning: config.DefaultTuning()}
	services, err := setupServices(t.Context(), cfg, repository.NewMemoryStore())
	require.NoError(t, err)
	return services
}

func TestHealthCheck(t *testing.T) {
	srv := setupServer("0", newTestServices(t))
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "OK", string(body))
}

func TestAPIMountedWithCORS(t *testing.T) {
	srv := setupServer("0", newTestServices(t))
	req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Body.String(), `"teams"`)
}

func TestSetupStoreMemory(t *testing.T) {
	store, err := setupStore(t.Context(), &config.Config{StoreDriver: config.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &repository.MemoryStore{}, store)
}

func TestSetupStoreSQLite(t *testing.T) {
	store, err := setupStore(t.Context(), &config.Config{StoreDriver: config.StoreSQLite, SQLitePath: repository.MemoryDSN})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	assert.IsType(t, &repository.SQLStore{}, store)
}
