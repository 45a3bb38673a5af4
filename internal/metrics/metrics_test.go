package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()
	Init() // second call must not panic

	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/questions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/api/questions/:id", "GET", "200"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/questions/abc", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/api/questions/:id", "GET", "200"))
	assert.InDelta(t, 1.0, after-before, 0.0001)
}

func TestObserveAI(t *testing.T) {
	before := testutil.ToFloat64(AIRequestsTotal.WithLabelValues("embed", "error"))

	ObserveAI("embed", time.Now(), errors.New("boom"))

	assert.InDelta(t, 1.0, testutil.ToFloat64(AIRequestsTotal.WithLabelValues("embed", "error"))-before, 0.0001)
}

func TestObservePlagiarism(t *testing.T) {
	before := testutil.ToFloat64(PlagiarismVerdictsTotal.WithLabelValues("plagiarized"))

	ObservePlagiarism(true, 93.5)

	assert.InDelta(t, 1.0, testutil.ToFloat64(PlagiarismVerdictsTotal.WithLabelValues("plagiarized"))-before, 0.0001)
}
