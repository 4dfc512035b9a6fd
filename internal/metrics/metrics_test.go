package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservePassFetch(t *testing.T) {
	before := testutil.ToFloat64(passFetchTotal.WithLabelValues(OutcomeDecode))

	ObservePassFetch(OutcomeDecode, 20*time.Millisecond)

	after := testutil.ToFloat64(passFetchTotal.WithLabelValues(OutcomeDecode))
	if after != before+1 {
		t.Errorf("decode counter = %v, want %v", after, before+1)
	}
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/sessions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := httpRequestsTotal.WithLabelValues("/sessions/:id", http.MethodGet, "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b", "c"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
	}

	if got := testutil.ToFloat64(counter); got != before+3 {
		t.Errorf("route counter = %v, want %v", got, before+3)
	}

	unknown := httpRequestsTotal.WithLabelValues("other", http.MethodGet, "404")
	before = testutil.ToFloat64(unknown)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin", nil))
	if got := testutil.ToFloat64(unknown); got != before+1 {
		t.Errorf("unknown route counter = %v, want %v", got, before+1)
	}
}
