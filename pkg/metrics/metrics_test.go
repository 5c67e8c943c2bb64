package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, registry)

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/recipes/:id", func(ctx *gin.Context) {
		ctx.Status(http.StatusNotFound)
	})

	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		request, err := http.NewRequest(http.MethodGet, "/recipes/123", nil)
		require.NoError(t, err)
		router.ServeHTTP(recorder, request)
	}

	count := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodGet, "/recipes/:id", "404"))
	require.Equal(t, float64(2), count)
	require.Zero(t, testutil.ToFloat64(m.httpRequestsInFlight))
}

func TestCacheCounters(t *testing.T) {
	m := New()

	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	m.CacheError("set")

	require.Equal(t, float64(1), testutil.ToFloat64(m.cacheLookupsTotal.WithLabelValues("hit")))
	require.Equal(t, float64(2), testutil.ToFloat64(m.cacheLookupsTotal.WithLabelValues("miss")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.cacheErrorsTotal.WithLabelValues("set")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.CacheHit()

	recorder := httptest.NewRecorder()
	request, err := http.NewRequest(http.MethodGet, "/metrics", nil)
	require.NoError(t, err)
	m.Handler().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), "recipebook_cache_lookups_total")
	require.Contains(t, recorder.Body.String(), "go_goroutines")
}
