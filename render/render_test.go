package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-classroom/camera"
	"github.com/lixenwraith/vi-classroom/pose"
	"github.com/lixenwraith/vi-classroom/scene"
)

func TestFramebufferDepthTest(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	red := RGB{255, 0, 0}
	blue := RGB{0, 0, 255}

	assert.True(t, fb.Plot(1, 1, 0.5, red))
	assert.False(t, fb.Plot(1, 1, 0.7, blue), "farther pixel must fail")
	assert.Equal(t, red, fb.At(1, 1))
	assert.True(t, fb.Plot(1, 1, 0.1, blue))
	assert.Equal(t, blue, fb.At(1, 1))

	assert.False(t, fb.Plot(9, 9, 0, red))
	assert.Equal(t, RGBBlack, fb.At(9, 9))

	fb.Clear(RGB{1, 2, 3})
	assert.Equal(t, RGB{1, 2, 3}, fb.At(3, 1))
	assert.True(t, math.IsInf(fb.Depth(3, 1), 1))
}

func TestFramebufferResizeReuses(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.Resize(2, 3)
	w, h := fb.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 3, h)
	assert.InDelta(t, 2.0/3.0, fb.Aspect(), 1e-12)

	fb.Resize(0, 0)
	assert.Equal(t, 1.0, fb.Aspect())
}

func TestDarkenOncePerMask(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Plot(0, 0, 0.5, RGB{200, 200, 200})

	fb.BeginMask()
	assert.True(t, fb.Darken(0, 0, 0.5, 1e-3, 0.5))
	assert.False(t, fb.Darken(0, 0, 0.5, 1e-3, 0.5))
	assert.Equal(t, RGB{100, 100, 100}, fb.At(0, 0))

	fb.BeginMask()
	assert.False(t, fb.Darken(0, 0, 0.9, 1e-3, 0.5), "off-surface")
	assert.False(t, fb.Darken(1, 0, 0.5, 1e-3, 0.5), "empty pixel")
}

func TestBlendAndScale(t *testing.T) {
	a := RGB{0, 0, 0}
	b := RGB{200, 100, 50}
	assert.Equal(t, b, Blend(a, b, 1))
	assert.Equal(t, a, Blend(a, b, 0))
	assert.Equal(t, RGB{100, 50, 25}, Blend(a, b, 0.5))
	assert.Equal(t, RGB{255, 200, 100}, Scale(b, 2))
	assert.Equal(t, RGB{0, 0, 0}, Shade(colorful.Color{R: 1, G: 1, B: 1}, 0, 0))
	assert.Equal(t, RGB{255, 255, 255}, Shade(colorful.Color{R: 1, G: 1, B: 1}, 1, 0))
}

func TestTessellationCounts(t *testing.T) {
	assert.Len(t, tessellateBox(mgl64.Vec3{1, 1, 1}), 12)
	assert.Len(t, tessellatePlane(2, 2), 2)
	assert.Len(t, tessellateSphere(1, 16), 2*16*16-2*16)

	for _, tri := range tessellateBox(mgl64.Vec3{1, 2, 3}) {
		n := tri.V[1].Sub(tri.V[0]).Cross(tri.V[2].Sub(tri.V[0]))
		c := tri.V[0].Add(tri.V[1]).Add(tri.V[2])
		assert.Greater(t, n.Dot(c), 0.0, "box faces point outward")
	}
}

func TestRasterizerCullsBackFaces(t *testing.T) {
	ras := newRasterizer(20, 20)
	ident := mgl64.Ident4()
	front := [3]mgl64.Vec3{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}}
	back := [3]mgl64.Vec3{front[0], front[2], front[1]}

	count := 0
	plot := func(x, y int, z float64) { count++ }
	assert.True(t, ras.Draw(ident, front, true, plot))
	assert.Greater(t, count, 100)

	count = 0
	assert.False(t, ras.Draw(ident, back, true, plot))
	assert.Zero(t, count)
	assert.True(t, ras.Draw(ident, back, false, plot))
}

func TestClipNearDropsBehindCamera(t *testing.T) {
	in := []mgl64.Vec4{{0, 0, -2, 1}, {1, 0, -2, 1}, {0, 1, -2, 1}}
	assert.Empty(t, clipNear(in, nil))

	in = []mgl64.Vec4{{0, 0, 0, 1}, {1, 0, -2, 1}, {0, 1, 0, 1}}
	out := clipNear(in, nil)
	require.Len(t, out, 4)
	for _, v := range out {
		assert.GreaterOrEqual(t, v.Z()+v.W(), -1e-12)
	}
}

func renderScene(t *testing.T, variant pose.Variant, opts Options) (*Framebuffer, FrameStats) {
	t.Helper()
	l := scene.DefaultLayout()
	l.Variant = variant
	s := scene.Build(l)
	s.Update(0)

	fb := NewFramebuffer(160, 90)
	stats := NewRenderer(opts).Render(fb, s, camera.Default())
	return fb, stats
}

func TestRenderClassroom(t *testing.T) {
	fb, stats := renderScene(t, pose.VariantSimple, DefaultOptions())
	bg := FromColorful(scene.DefaultPalette().Background)

	drawn := 0
	w, h := fb.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if fb.At(x, y) != bg {
				drawn++
			}
		}
	}
	assert.Greater(t, drawn, w*h/4)
	assert.Greater(t, stats.Triangles, 100)
	assert.Greater(t, stats.Culled, 0)
	assert.Greater(t, stats.Shadows, 0)

	// the camera target (podium/teacher area) is on screen
	assert.NotEqual(t, bg, fb.At(w/2, h/2))
}

func TestRenderShadowsToggle(t *testing.T) {
	off := DefaultOptions()
	off.Shadows = false
	off.ContactShadows = false
	_, stats := renderScene(t, pose.VariantDetailed, off)
	assert.Zero(t, stats.Shadows)

	_, contact := renderScene(t, pose.VariantDetailed, Options{ContactShadows: true, ContactFactor: 0.8, ContactRings: 2})
	assert.Greater(t, contact.Shadows, 0)
}

func TestRenderDeterministic(t *testing.T) {
	a, _ := renderScene(t, pose.VariantDetailed, DefaultOptions())
	b, _ := renderScene(t, pose.VariantDetailed, DefaultOptions())
	assert.Equal(t, a.color, b.color)
}

func TestRenderEmptyFramebuffer(t *testing.T) {
	s := scene.Build(scene.DefaultLayout())
	stats := NewRenderer(DefaultOptions()).Render(NewFramebuffer(0, 0), s, camera.Default())
	assert.Equal(t, FrameStats{}, stats)
}

func TestDesaturate(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Clear(RGB{R: 200, G: 40, B: 40})

	fb.Desaturate(0)
	assert.Equal(t, RGB{R: 200, G: 40, B: 40}, fb.At(0, 0))

	fb.Desaturate(1)
	c := fb.At(1, 0)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
}
