package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/franciscosanchezn/pizza-restaurant-api/internal/controllers"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/database"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T, metricsEnabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	catalogService := services.NewCatalogService(db)
	seedDatabase(db, catalogService)

	reg := prometheus.NewRegistry()
	return setupRouter(routerDeps{
		db:             db,
		restaurants:    controllers.NewRestaurantController(catalogService),
		registerer:     reg,
		gatherer:       reg,
		metricsEnabled: metricsEnabled,
	})
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(t, false)

	w := serve(router, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "pizza-restaurant-api", body["service"])
}

func TestSeededCatalogIsServed(t *testing.T) {
	router := setupTestRouter(t, false)

	w := serve(router, http.MethodGet, "/restuarants")
	require.Equal(t, http.StatusOK, w.Code)

	var restaurants []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restaurants))
	assert.Len(t, restaurants, len(services.DefaultSampleCatalog().Restaurants))
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupTestRouter(t, true)

	serve(router, http.MethodGet, "/restuarants")
	w := serve(router, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `http_requests_total{method="GET",path="/restuarants",status="200"} 1`))
}

func TestMetricsEndpointDisabled(t *testing.T) {
	router := setupTestRouter(t, false)

	w := serve(router, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwaggerDocs(t *testing.T) {
	router := setupTestRouter(t, false)

	w := serve(router, http.MethodGet, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/restuarants/{id}")
}
