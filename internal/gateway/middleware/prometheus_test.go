package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware_LabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /profiles/{username}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := PrometheusMiddleware(mux)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "GET /profiles/{username}", "404"))
	for _, name := range []string{"jane", "john"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profiles/"+name, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "GET /profiles/{username}", "404"))
	assert.Equal(t, 2.0, after-before)
}

func TestPrometheusMiddleware_StatusCodes(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusCreated, http.StatusBadRequest, http.StatusTooManyRequests, http.StatusInternalServerError} {
		handler := PrometheusMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/click-counter", nil))
		assert.Equal(t, code, rec.Code)
	}

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "200"))
	PrometheusMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "200"))-before)
}

func TestStatusRecorder_Hijack(t *testing.T) {
	rw := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	_, _, err := rw.Hijack()
	assert.Error(t, err)
}
