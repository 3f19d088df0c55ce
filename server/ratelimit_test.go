package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func rateLimitedHandler(t *testing.T, rl *RateLimiter) http.Handler {
	t.Helper()
	t.Cleanup(rl.Stop)
	return rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func hitFrom(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	handler := rateLimitedHandler(t, NewRateLimiter(rate.Limit(1), 3))

	for i := 0; i < 3; i++ {
		rec := hitFrom(handler, "10.0.0.1:1234")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}
}

func TestRateLimiterRejectsBeyondBurst(t *testing.T) {
	// Near-zero refill so the bucket cannot replenish mid-test.
	handler := rateLimitedHandler(t, NewRateLimiter(rate.Limit(0.001), 2))

	hitFrom(handler, "10.0.0.1:1234")
	hitFrom(handler, "10.0.0.1:1234")
	rec := hitFrom(handler, "10.0.0.1:1234")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Too many requests", body.Message)
}

func TestRateLimiterBucketsPerIP(t *testing.T) {
	handler := rateLimitedHandler(t, NewRateLimiter(rate.Limit(0.001), 1))

	require.Equal(t, http.StatusOK, hitFrom(handler, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, hitFrom(handler, "10.0.0.1:5678").Code)

	// A different client still has a full bucket.
	assert.Equal(t, http.StatusOK, hitFrom(handler, "10.0.0.2:1234").Code)
}
