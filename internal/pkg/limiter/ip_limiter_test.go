package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestIPRateLimiter_BurstThenReject(t *testing.T) {
	req := require.New(t)

	l := NewIPRateLimiter(rate.Limit(0.001), 2)
	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	status := func() int {
		r := httptest.NewRequest(http.MethodPost, "/signal", nil)
		r.RemoteAddr = "192.0.2.1:5000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	req.Equal(http.StatusOK, status())
	req.Equal(http.StatusOK, status())
	req.Equal(http.StatusTooManyRequests, status())
}

func TestIPRateLimiter_SeparateBucketsPerIP(t *testing.T) {
	req := require.New(t)

	l := NewIPRateLimiter(rate.Limit(0.001), 1)

	req.True(l.GetLimiter("192.0.2.1").Allow())
	req.False(l.GetLimiter("192.0.2.1").Allow())
	req.True(l.GetLimiter("192.0.2.2").Allow())
}
