package texture

import (
	"bytes"
	"context"
	"image/png"
	"math/rand/v2"
	"testing"
	"time"

	"travelglobe/gfx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testW = 256
	testH = 128
)

func TestSynthesizeDimensions(t *testing.T) {
	tex, err := NewSynthesizer(WithSeed(1)).Synthesize(testW, testH)
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, testW, w)
	assert.Equal(t, testH, h)
	assert.Equal(t, testW, tex.Image().Bounds().Dx())
}

func TestSynthesizeRejectsBadSize(t *testing.T) {
	s := NewSynthesizer(WithSeed(1))
	for _, sz := range [][2]int{{0, 10}, {10, -1}, {gfx.MaxSurfaceSide + 1, 10}} {
		_, err := s.Synthesize(sz[0], sz[1])
		assert.ErrorIs(t, err, ErrTextureSize, "%v", sz)
	}
}

func TestSameSeedSamePixels(t *testing.T) {
	a, err := NewSynthesizer(WithSeed(42)).Synthesize(testW, testH)
	require.NoError(t, err)
	b, err := NewSynthesizer(WithSeed(42)).Synthesize(testW, testH)
	require.NoError(t, err)
	c, err := NewSynthesizer(WithSeed(43)).Synthesize(testW, testH)
	require.NoError(t, err)

	assert.Equal(t, a.img.Pix, b.img.Pix)
	assert.NotEqual(t, a.img.Pix, c.img.Pix)
}

func TestWithSourceIsCalledPerSynthesis(t *testing.T) {
	calls := 0
	s := NewSynthesizer(WithSource(func() rand.Source {
		calls++
		return rand.NewPCG(7, 7)
	}))
	_, err := s.Synthesize(64, 32)
	require.NoError(t, err)
	_, err = s.Synthesize(64, 32)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "same resolution should hit the cache")

	_, err = s.Synthesize(128, 64)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheReuseAndResize(t *testing.T) {
	s := NewSynthesizer(WithSeed(5))
	assert.Nil(t, s.Cached())

	a, err := s.Synthesize(testW, testH)
	require.NoError(t, err)
	b, err := s.Synthesize(testW, testH)
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := s.Synthesize(testW*2, testH*2)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Same(t, c, s.Cached())
}

func TestCachedDoesNotWaitForSynthesis(t *testing.T) {
	first := NewSynthesizer(WithSeed(5))
	prev, err := first.Synthesize(testW, testH)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	s := NewSynthesizer(WithSource(func() rand.Source {
		close(entered)
		<-release
		return rand.NewPCG(1, 2)
	}))
	s.last = prev

	done := make(chan *Texture, 1)
	go func() {
		tex, _ := s.Synthesize(testW*2, testH*2)
		done <- tex
	}()
	<-entered

	got := make(chan *Texture, 1)
	go func() { got <- s.Cached() }()
	select {
	case tex := <-got:
		assert.Same(t, prev, tex)
	case <-time.After(2 * time.Second):
		t.Fatal("Cached blocked behind a running synthesis")
	}

	close(release)
	tex := <-done
	require.NotNil(t, tex)
	assert.Same(t, tex, s.Cached())
}

func TestIslandsUseLandColor(t *testing.T) {
	c := newCanvas(1024, 512)
	paintIslands(c, rand.New(rand.NewPCG(7, 7)))

	opaque := 0
	for i := 0; i < len(c.img.Pix); i += 4 {
		if c.img.Pix[i+3] != 0xFF {
			continue
		}
		opaque++
		assert.Equal(t, []uint8{landColor.R, landColor.G, landColor.B}, c.img.Pix[i:i+3])
	}
	assert.NotZero(t, opaque, "no island fully covered a pixel")
}

func TestMountainsAreDarkGreen(t *testing.T) {
	assert.Greater(t, mountainCol.G, mountainCol.R)
	assert.Greater(t, mountainCol.G, mountainCol.B)
	assert.Less(t, mountainCol.G, landColor.G, "darker than the landmass")
}

func isIce(c gfx.Color) bool { return c.R >= 200 && c.G >= 200 && c.B >= 200 }

func TestPolarRowsAreIce(t *testing.T) {
	tex, err := NewSynthesizer(WithSeed(9)).Synthesize(testW, testH)
	require.NoError(t, err)

	band := testH * 3 / 100
	if band < 1 {
		band = 1
	}
	count := func(y0, y1 int) (ice, total int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < testW; x++ {
				if isIce(tex.At(x, y)) {
					ice++
				}
				total++
			}
		}
		return
	}
	ice, total := count(0, band)
	assert.Greater(t, float64(ice)/float64(total), 0.9, "north")
	ice, total = count(testH-band, testH)
	assert.Greater(t, float64(ice)/float64(total), 0.9, "south")

	// The equator is mostly ocean and land, not ice.
	ice, total = count(testH/2, testH/2+1)
	assert.Less(t, float64(ice)/float64(total), 0.5, "equator")
}

func TestSampleWrapsLongitudeClampsLatitude(t *testing.T) {
	tex, err := NewSynthesizer(WithSeed(3)).Synthesize(testW, testH)
	require.NoError(t, err)

	for _, u := range []float64{0, 0.1, 0.5, 0.93} {
		assert.Equal(t, tex.Sample(u, 0.4), tex.Sample(u+1, 0.4))
		assert.Equal(t, tex.Sample(u, 0.4), tex.Sample(u-1, 0.4))
	}
	assert.Equal(t, tex.Sample(0.3, 0), tex.Sample(0.3, -0.2))
	assert.Equal(t, tex.Sample(0.3, 1), tex.Sample(0.3, 1.5))

	// Texel centers sample exactly.
	x, y := 17, 40
	u := (float64(x) + 0.5) / testW
	v := (float64(y) + 0.5) / testH
	want := tex.At(x, y)
	got := tex.Sample(u, v)
	assert.Equal(t, want.R, got.R)
	assert.Equal(t, want.G, got.G)
	assert.Equal(t, want.B, got.B)
}

func TestCanvasWrapsAcrossSeam(t *testing.T) {
	c := newCanvas(64, 32)
	red := gfx.RGB(0xFF, 0, 0)
	c.fillCircle(0, 16, 4, red)

	at := func(x, y int) uint8 { return c.img.Pix[c.img.PixOffset(x, y)] }
	assert.Equal(t, uint8(0xFF), at(1, 16))
	assert.Equal(t, uint8(0xFF), at(62, 16), "left overflow repainted on the right")
	assert.Equal(t, uint8(0), at(32, 16))

	c.fillCircle(64, 8, 4, red)
	assert.Equal(t, uint8(0xFF), at(1, 8), "right overflow repainted on the left")
}

func TestEncodePNG(t *testing.T) {
	tex, err := NewSynthesizer(WithSeed(2)).Synthesize(64, 32)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tex.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestSynthesizeAsync(t *testing.T) {
	s := NewSynthesizer(WithSeed(11))
	res, ok := <-s.SynthesizeAsync(context.Background(), 64, 32)
	require.True(t, ok)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Texture)
	assert.Same(t, res.Texture, s.Cached())

	_, ok = <-s.SynthesizeAsync(context.Background(), 64, 32)
	assert.True(t, ok)
}

func TestSynthesizeAsyncCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := <-NewSynthesizer(WithSeed(1)).SynthesizeAsync(ctx, 64, 32)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Nil(t, res.Texture)
}
