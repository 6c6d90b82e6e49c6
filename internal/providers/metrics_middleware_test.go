package providers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingMetrics struct {
	mu        sync.Mutex
	requests  map[string]int // key: "endpoint:status"
	durations int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{requests: make(map[string]int)}
}

func (r *recordingMetrics) IncRequestsTotal(endpoint string, status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[endpoint+":"+httpStatusBucket(status)]++
}

func (r *recordingMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations++
}

func (r *recordingMetrics) IncActivations(_ string)                    {}
func (r *recordingMetrics) IncUnlockAttempts(_ string, _ string)       {}
func (r *recordingMetrics) IncReleases(_ string)                       {}
func (r *recordingMetrics) SetLockdownActive(_ bool)                   {}
func (r *recordingMetrics) ObservePersistenceDuration(_ time.Duration) {}
func (r *recordingMetrics) IncCacheHits()                              {}
func (r *recordingMetrics) IncCacheMisses()                            {}

func middlewareRouter() RouterProviderInterface {
	router := NewRouterProvider()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/status", ok)
	router.Post("/unlock/answer", ok)
	return router
}

func TestMetricsMiddleware_RecordsRequest(t *testing.T) {
	metrics := newRecordingMetrics()
	handler := MetricsMiddleware(metrics, middlewareRouter(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, 1, metrics.requests["/status:2xx"])
	assert.Equal(t, 1, metrics.durations)
}

func TestMetricsMiddleware_RecordsErrorStatus(t *testing.T) {
	metrics := newRecordingMetrics()
	handler := MetricsMiddleware(metrics, middlewareRouter(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/unlock/answer", nil))

	assert.Equal(t, 1, metrics.requests["/unlock/answer:4xx"])
}

func TestMetricsMiddleware_UnknownPathCollapsed(t *testing.T) {
	metrics := newRecordingMetrics()
	handler := MetricsMiddleware(metrics, middlewareRouter(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/wp-admin/setup.php", nil))
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status/../etc", nil))

	assert.Equal(t, 2, metrics.requests["other:4xx"])
	assert.Zero(t, metrics.requests["/wp-admin/setup.php:4xx"])
}

func TestHttpStatusBucket(t *testing.T) {
	assert.Equal(t, "2xx", httpStatusBucket(201))
	assert.Equal(t, "3xx", httpStatusBucket(302))
	assert.Equal(t, "4xx", httpStatusBucket(404))
	assert.Equal(t, "5xx", httpStatusBucket(500))
}
