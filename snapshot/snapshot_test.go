package snapshot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-classroom/camera"
	"github.com/lixenwraith/vi-classroom/pose"
	"github.com/lixenwraith/vi-classroom/render"
	"github.com/lixenwraith/vi-classroom/scene"
)

var sky = render.RGB{R: 0xbf, G: 0xd1, B: 0xe5}

func request(caption string) Request {
	return Request{
		Width:   96,
		Height:  64,
		Time:    1.5,
		Camera:  camera.Default(),
		Caption: caption,
	}
}

func TestImageCopiesFramebuffer(t *testing.T) {
	fb := render.NewFramebuffer(3, 2)
	fb.Clear(sky)
	fb.Plot(1, 1, 0, render.RGB{R: 10, G: 20, B: 30})

	img := Image(fb)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	c := img.RGBAAt(1, 1)
	assert.Equal(t, []uint8{10, 20, 30, 255}, []uint8{c.R, c.G, c.B, c.A})
	c = img.RGBAAt(0, 0)
	assert.Equal(t, []uint8{0xbf, 0xd1, 0xe5, 255}, []uint8{c.R, c.G, c.B, c.A})
}

func TestCapturePosesScene(t *testing.T) {
	s := scene.Build(scene.DefaultLayout())
	r := render.NewRenderer(render.DefaultOptions())

	img, stats := Capture(r, s, request(""))
	assert.Positive(t, stats.Triangles)

	want := s.Evaluator().Student(1.5, 1, false).Get
	head, _ := want(pose.JointHead)
	assert.InDelta(t, head, s.Actor("student-0-1").Joint(pose.JointHead).Rotation[0], 1e-12)

	other, _ := Capture(r, scene.Build(scene.DefaultLayout()), request(""))
	assert.Equal(t, img.Pix, other.Pix, "same time renders the same frame")
}

func TestCaptionDarkensBottomStrip(t *testing.T) {
	s := scene.Build(scene.DefaultLayout())
	r := render.NewRenderer(render.DefaultOptions())

	plain, _ := Capture(r, s, request(""))
	captioned, _ := Capture(r, s, request("t=1.50"))

	b := plain.Bounds()
	assert.NotEqual(t, plain.Pix, captioned.Pix)
	// top row untouched
	top := plain.Pix[:plain.Stride]
	assert.Equal(t, top, captioned.Pix[:captioned.Stride])

	p := plain.RGBAAt(b.Max.X-1, b.Max.Y-1)
	c := captioned.RGBAAt(b.Max.X-1, b.Max.Y-1)
	assert.Less(t, int(c.R)+int(c.G)+int(c.B), int(p.R)+int(p.G)+int(p.B))
}

func TestCaptionSkippedOnTinyImage(t *testing.T) {
	fb := render.NewFramebuffer(8, 4)
	fb.Clear(sky)
	img := Image(fb)
	before := append([]uint8(nil), img.Pix...)
	DrawCaption(img, "x")
	assert.Equal(t, before, img.Pix)
}

func TestWritePNG(t *testing.T) {
	s := scene.Build(scene.DefaultLayout())
	img, _ := Capture(render.NewRenderer(render.DefaultOptions()), s, request("classroom"))

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, WritePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	assert.Error(t, WritePNG(filepath.Join(t.TempDir(), "missing", "frame.png"), img))
}
