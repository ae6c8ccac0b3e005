package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, time.Minute)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/click-counter", nil)
		req.RemoteAddr = ip + ":5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"), "buckets are per client")
}

func TestClientIP(t *testing.T) {
	limiter := NewRateLimiter(1, 1, time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	assert.Equal(t, "192.0.2.10", limiter.clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "192.0.2.10", limiter.clientIP(req), "untrusted peer header is ignored")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", limiter.clientIP(req))
}

func TestClientIP_TrustedProxy(t *testing.T) {
	limiter := NewRateLimiter(1, 1, time.Minute)
	require.NoError(t, limiter.TrustProxies("10.0.0.0/8", " 192.0.2.1 ", ""))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:4444"
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 203.0.113.5, 192.0.2.1")
	assert.Equal(t, "203.0.113.5", limiter.clientIP(req), "rightmost untrusted hop wins")

	req.Header.Set("X-Forwarded-For", "192.0.2.1")
	assert.Equal(t, "192.0.2.1", limiter.clientIP(req))

	req.Header.Set("X-Forwarded-For", "garbage")
	assert.Equal(t, "10.1.2.3", limiter.clientIP(req))

	req.Header.Del("X-Forwarded-For")
	assert.Equal(t, "10.1.2.3", limiter.clientIP(req))

	assert.Error(t, limiter.TrustProxies("10.0.0.0/99"))
	assert.Error(t, limiter.TrustProxies("proxy.local"))
}

func TestRateLimiter_SpoofedForwardedForSharesBucket(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, time.Minute)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	allowed := 0
	for i := range 50 {
		req := httptest.NewRequest(http.MethodPost, "/click-counter", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}

	assert.Equal(t, 1, allowed)
	assert.Equal(t, 1, limiter.size())
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	limiter := NewRateLimiter(1, 1, time.Minute)
	limiter.Allow("a")
	limiter.Allow("b")
	assert.Equal(t, 2, limiter.size())

	limiter.evictIdle(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, limiter.size())
}

func TestRateLimiter_JanitorStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	limiter := NewRateLimiter(1, 1, time.Millisecond)
	done := make(chan struct{})
	go func() {
		limiter.RunJanitor(5 * time.Millisecond)
		close(done)
	}()

	limiter.Allow("a")
	assert.Eventually(t, func() bool { return limiter.size() == 0 }, time.Second, 5*time.Millisecond)

	limiter.Stop()
	limiter.Stop()
	<-done
}
