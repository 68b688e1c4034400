package perf

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/svgchart/internal/render"
	renderhttp "github.com/odyssey-erp/svgchart/internal/render/http"
)

const lineBody = `{"data": {
  "north": {"jan": 12, "feb": 18, "mar": 9, "apr": 22, "may": 17, "jun": 25},
  "south": {"jan": 7, "feb": 11, "mar": 15, "apr": 13, "may": 20, "jun": 16},
  "west": {"jan": 3, "feb": 6, "mar": 8, "apr": 5, "may": 9, "jun": 12}
}}`

func newRouter() http.Handler {
	r := chi.NewRouter()
	renderhttp.NewHandler(nil, render.NewService(nil, nil, nil), nil, renderhttp.Config{}).MountRoutes(r)
	return r
}

func TestRenderEndpointLatencyTarget(t *testing.T) {
	router := newRouter()
	samples := make([]time.Duration, 0, 50)
	for i := 0; i < cap(samples); i++ {
		start := time.Now()
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/charts/line", strings.NewReader(lineBody)))
		samples = append(samples, time.Since(start))
		if rr.Code != http.StatusOK {
			t.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
		}
	}
	if p95 := percentile95(samples); p95 > 250*time.Millisecond {
		t.Fatalf("render latency regression: p95=%s threshold=250ms", p95)
	}
}

func BenchmarkRenderEndpoint(b *testing.B) {
	router := newRouter()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/charts/line", strings.NewReader(lineBody)))
	}
}

func percentile95(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	index := int(float64(len(sorted)-1) * 0.95)
	if index < 0 {
		index = 0
	}
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
