package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveFrame(10 * time.Millisecond)
	r.ObserveFrame(12 * time.Millisecond)
	r.SetScene(3, 1)
	r.IncSelection()
	r.ObserveTextureSynth(200 * time.Millisecond)
	r.IncSurfaceFallback()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.frames))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.markers))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.arcs))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.selections))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.surfaceFallback))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveFrame(time.Millisecond)
		r.SetScene(1, 1)
		r.IncSelection()
		r.ObserveTextureSynth(time.Second)
		r.IncSurfaceFallback()
	})
}

func TestNamespaceAndHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg, WithNamespace("globe")).ObserveFrame(time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "globe_frames_total 1")
}
