package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekicare/ekicare-api/pkg/logger"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_MemoryLimiter(t *testing.T) {
	limiter := NewMemoryLimiter(0.001, 2, time.Minute)
	h := RateLimit(limiter, nil, logger.Nop())(okHandler())

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))

	// les autres clients gardent leur propre bucket
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"))
}

func TestRateLimit_SpoofedForwardedForKeepsBucket(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)

	limiter := NewMemoryLimiter(0.001, 2, time.Minute)
	h := RateLimit(limiter, proxies, logger.Nop())(okHandler())

	call := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
		req.RemoteAddr = "198.51.100.9:4000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("203.0.113.1"))
	assert.Equal(t, http.StatusOK, call("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, call("203.0.113.3"))
}

func TestTrustedProxies_ClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.168.1.1", " "})
	require.NoError(t, err)

	tests := []struct {
		name         string
		remoteAddr   string
		forwardedFor string
		want         string
	}{
		{"direct client", "203.0.113.7:5000", "", "203.0.113.7"},
		{"untrusted peer header ignored", "198.51.100.9:5000", "203.0.113.7", "198.51.100.9"},
		{"trusted proxy", "10.0.0.1:5000", "203.0.113.7", "203.0.113.7"},
		{"proxy chain", "10.0.0.1:5000", "203.0.113.7, 192.168.1.1, 10.0.0.2", "203.0.113.7"},
		{"client prepends a fake hop", "10.0.0.1:5000", "1.2.3.4, 203.0.113.7", "203.0.113.7"},
		{"trusted proxy without header", "192.168.1.1:5000", "", "192.168.1.1"},
		{"garbage hop stops the walk", "10.0.0.1:5000", "203.0.113.7, nonsense", "10.0.0.1"},
		{"ipv4 mapped peer", "[::ffff:10.0.0.1]:5000", "203.0.113.7", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.forwardedFor)
			}
			assert.Equal(t, tt.want, proxies.ClientIP(req))
		})
	}
}

func TestParseTrustedProxies_Invalid(t *testing.T) {
	_, err := ParseTrustedProxies([]string{"10.0.0.0/33"})
	assert.Error(t, err)

	_, err = ParseTrustedProxies([]string{"proxy.internal"})
	assert.Error(t, err)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	h := RateLimit(failingLimiter{}, nil, logger.Nop())(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMemoryLimiter_Evict(t *testing.T) {
	limiter := NewMemoryLimiter(1, 1, time.Minute)
	_, _ = limiter.Allow(context.Background(), "a")

	limiter.evict(time.Now().Add(2 * time.Minute))
	assert.Empty(t, limiter.visitors)
}
