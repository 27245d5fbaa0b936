package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TienDung030704/datlichkhambenh/internal/config"
)

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		Prefix:       "test:cache",
		MaxBodyBytes: 1 << 20,
	}
}

func TestResponseCache_ServesSecondRequestFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	calls := 0
	e := echo.New()
	e.GET("/api/admin/patients/count", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"success": true, "count": 42})
	}, ResponseCache(cacheTestConfig(), rdb))

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/admin/patients/count", nil))
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, 1, calls)

	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/admin/patients/count", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, calls, "second request must be served from cache")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestResponseCache_StoresAfterRequestContextExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	calls := 0
	e := echo.New()
	e.GET("/api/admin/statistics/growth", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": []int{1, 2, 3}})
	}, ResponseCache(cacheTestConfig(), rdb))

	// A handler slower than the lookup deadline leaves the request context
	// expired by the time the response is stored; model that with a context
	// that is already done when the request comes in.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	expired := httptest.NewRequest(http.MethodGet, "/api/admin/statistics/growth", nil).WithContext(ctx)
	first := httptest.NewRecorder()
	e.ServeHTTP(first, expired)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, 1, calls)

	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/admin/statistics/growth", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, calls, "response produced under an expired request context must still be cached")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestResponseCache_DistinctQueriesAreDistinctEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	calls := 0
	e := echo.New()
	e.GET("/api/admin/patients/list", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"offset": c.QueryParam("offset")})
	}, ResponseCache(cacheTestConfig(), rdb))

	for _, target := range []string{
		"/api/admin/patients/list?offset=0",
		"/api/admin/patients/list?offset=10",
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 2, calls)
}

func TestResponseCache_NilClientIsPassThrough(t *testing.T) {
	calls := 0
	e := echo.New()
	e.GET("/api/admin/statistics", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}, ResponseCache(cacheTestConfig(), nil))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/statistics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 2, calls)
}

func TestResponseCache_SkipsNonConfiguredMethods(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	calls := 0
	e := echo.New()
	e.PUT("/api/admin/patients/1/status", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}, ResponseCache(cacheTestConfig(), rdb))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/patients/1/status", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 2, calls)
}
