package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_StoreOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordStoreOperation("article", "create", nil)
	c.RecordStoreOperation("article", "create", nil)
	c.RecordStoreOperation("tag", "update", errors.New("duplicate"))

	if got := testutil.ToFloat64(c.storeOps.WithLabelValues("article", "create", "ok")); got != 2 {
		t.Errorf("Expected 2 article creates, got %v", got)
	}
	if got := testutil.ToFloat64(c.storeOps.WithLabelValues("tag", "update", "error")); got != 1 {
		t.Errorf("Expected 1 failed tag update, got %v", got)
	}
}

func TestCollector_StorageFailures(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.RecordStorageFailure("set")

	if got := testutil.ToFloat64(c.storageFailures.WithLabelValues("set")); got != 1 {
		t.Errorf("Expected 1 set failure, got %v", got)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordHTTPRequest("GET", "/v1/articles", 200, 15*time.Millisecond)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body := w.Body.String()
	if !strings.Contains(body, `blog_http_requests_total{method="GET",route="/v1/articles",status="200"} 1`) {
		t.Errorf("Expected request counter in output, got:\n%s", body)
	}
	if !strings.Contains(body, "blog_http_request_duration_seconds_bucket") {
		t.Error("Expected latency histogram in output")
	}
}

func TestResult(t *testing.T) {
	if Result(nil) != "ok" || Result(errors.New("x")) != "error" {
		t.Error("Result labels are wrong")
	}
}
