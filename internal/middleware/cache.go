package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/TienDung030704/datlichkhambenh/internal/config"
)

// cachedResponse is the envelope stored in Redis for one cached response.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// captureWriter tees the response body so it can be stored after the
// handler ran.  Bodies over the limit are passed through uncached.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.size += int64(len(b))
	if cw.size <= cw.limit {
		cw.buf.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

// cacheKey hashes method, route and query into a namespaced Redis key.
func cacheKey(prefix string, c echo.Context) string {
	r := c.Request()
	sum := sha1.Sum([]byte(r.Method + ":" + c.Path() + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum)
}

// ResponseCache returns a middleware that serves successful responses to the
// configured methods from Redis for the configured TTL.  With caching
// disabled or no Redis client available it degrades to a pass-through.
// Only 200 responses are stored.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			key := cacheKey(cfg.Prefix, c)
			getCtx, cancelGet := context.WithTimeout(c.Request().Context(), time.Second)
			raw, getErr := rdb.Get(getCtx, key).Bytes()
			cancelGet()
			if getErr == nil {
				var cached cachedResponse
				if json.Unmarshal(raw, &cached) == nil {
					c.Response().Header().Set(echo.HeaderContentType, cached.ContentType)
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(cached.Status, cached.ContentType, cached.Body)
				}
			}

			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Writer = cw

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && cw.size <= cw.limit {
				cached := cachedResponse{
					Status:      cw.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        cw.buf.Bytes(),
				}
				if raw, err := json.Marshal(cached); err == nil {
					// The request context may already be done after a slow
					// handler, so the store runs on its own deadline.
					// Best effort; a failed SET just means a cache miss later.
					setCtx, cancelSet := context.WithTimeout(context.Background(), time.Second)
					rdb.Set(setCtx, key, raw, ttl)
					cancelSet()
				}
			}
			return nil
		}
	}
}
