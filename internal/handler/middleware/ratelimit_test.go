//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"studysync-api/internal/handler/middleware"
	"studysync-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedEngine(rl *middleware.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bookings", rl.Limit(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func hitFrom(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	t.Run("rejects a client that exhausts its burst", func(t *testing.T) {
		rl := middleware.NewRateLimiter(config.NewTestConfig().Booking)
		defer rl.Close()
		r := newLimitedEngine(rl)

		for i := 0; i < config.NewTestConfig().Booking.RateBurst; i++ {
			w := hitFrom(r, "203.0.113.7:4000")
			assert.Equal(t, http.StatusNoContent, w.Code)
		}

		w := hitFrom(r, "203.0.113.7:4000")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "Too many requests")
	})

	t.Run("buckets are per client ip", func(t *testing.T) {
		rl := middleware.NewRateLimiter(config.NewTestConfig().Booking)
		defer rl.Close()
		r := newLimitedEngine(rl)

		for i := 0; i < config.NewTestConfig().Booking.RateBurst; i++ {
			hitFrom(r, "203.0.113.7:4000")
		}
		assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "203.0.113.7:4000").Code)
		assert.Equal(t, http.StatusNoContent, hitFrom(r, "198.51.100.9:4000").Code)
	})

	t.Run("close stops the limiter without panicking", func(t *testing.T) {
		rl := middleware.NewRateLimiter(config.NewTestConfig().Booking)
		rl.Close()
	})
}
