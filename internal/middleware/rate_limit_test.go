package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/api/v1/health", ok)
	r.GET("/api/v1/sessions", ok)
	return r
}

func do(r http.Handler, path, remote string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(rate.NewLimiter(0, 1)))

	if code := do(r, "/api/v1/sessions", "10.0.0.1:1"); code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", code)
	}
	if code := do(r, "/api/v1/sessions", "10.0.0.1:1"); code != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want 429", code)
	}
	if code := do(r, "/api/v1/health", "10.0.0.1:1"); code != http.StatusOK {
		t.Errorf("health = %d, want 200 regardless of limit", code)
	}
}

func TestIPRateLimitMiddleware(t *testing.T) {
	r := newRouter(IPRateLimitMiddleware(NewIPRateLimiter(0, 1)))

	tests := []struct {
		remote string
		want   int
	}{
		{"10.0.0.1:1", http.StatusOK},
		{"10.0.0.1:2", http.StatusTooManyRequests},
		{"10.0.0.2:1", http.StatusOK},
		{"10.0.0.2:1", http.StatusTooManyRequests},
	}

	for i, tt := range tests {
		if code := do(r, "/api/v1/sessions", tt.remote); code != tt.want {
			t.Errorf("request %d from %s = %d, want %d", i, tt.remote, code, tt.want)
		}
	}
}
