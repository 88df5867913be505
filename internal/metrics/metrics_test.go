package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.ObserveFrame(5*time.Millisecond, 3120)
	c.ObserveFrame(7*time.Millisecond, 3100)
	c.ObserveTexture(nil)
	c.ObserveTexture(errors.New("boom"))
	c.ObserveTexture(errors.New("boom"))
	c.ObserveResize()

	if got := testutil.ToFloat64(c.FramesRendered); got != 2 {
		t.Fatalf("frames_rendered_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Triangles); got != 3100 {
		t.Fatalf("frame_triangles = %v, want 3100", got)
	}
	if got := testutil.ToFloat64(c.TextureLoads.WithLabelValues(TextureOK)); got != 1 {
		t.Fatalf("texture_loads_total{ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.TextureLoads.WithLabelValues(TextureFailed)); got != 2 {
		t.Fatalf("texture_loads_total{failed} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Resizes); got != 1 {
		t.Fatalf("viewport_resizes_total = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(c.FrameDuration); n != 1 {
		t.Fatalf("histogram series = %d, want 1", n)
	}
}

func TestCollectorReusesRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(reg)
	if err != nil {
		t.Fatalf("second New: %v", err)
	}
	a.ObserveResize()
	if got := testutil.ToFloat64(b.Resizes); got != 1 {
		t.Fatalf("shared counter = %v, want 1", got)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.ObserveFrame(time.Millisecond, 1)
	c.ObserveTexture(nil)
	c.ObserveResize()
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.ObserveFrame(time.Millisecond, 10)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	for _, want := range []string{"frames_rendered_total 1", "frame_render_duration_seconds_count 1", "viewport_resizes_total 0"} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q:\n%s", want, body)
		}
	}
}
