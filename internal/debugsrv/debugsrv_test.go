package debugsrv

import (
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	snap image.Image
	tex  error
}

func (f fakeSource) Snapshot() (image.Image, error) { return f.snap, nil }
func (f fakeSource) Texture() (image.Image, error)  { return nil, f.tex }
func (f fakeSource) Stats() any                     { return map[string]int{"markers": 3} }

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("m 1\n"))
	})
	h := NewRouter(fakeSource{snap: img, tex: ErrNotReady}, metrics, zerolog.Nop())

	rec := serve(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = serve(t, h, "/snapshot.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	got, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), got.Bounds())
	r, _, _, _ := got.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)

	rec = serve(t, h, "/texture.png")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(t, h, "/stats")
	assert.JSONEq(t, `{"markers":3}`, rec.Body.String())

	rec = serve(t, h, "/metrics")
	assert.Equal(t, "m 1\n", rec.Body.String())
}

func TestRouterWithoutMetrics(t *testing.T) {
	h := NewRouter(fakeSource{}, nil, zerolog.Nop())
	assert.Equal(t, http.StatusNotFound, serve(t, h, "/metrics").Code)
}
