// Package snapshot renders a single frame to a PNG file
package snapshot

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/vi-classroom/camera"
	"github.com/lixenwraith/vi-classroom/render"
	"github.com/lixenwraith/vi-classroom/scene"
)

// captionPad is the strip height added around the caption baseline
const captionPad = 4

// Request describes one capture
type Request struct {
	Width   int
	Height  int
	Time    float64 // scene time to pose actors at
	Camera  camera.Camera
	Caption string // empty for none
}

// Capture poses the scene at req.Time and renders it into a new image
func Capture(r *render.Renderer, s *scene.Scene, req Request) (*image.RGBA, render.FrameStats) {
	s.Update(req.Time)

	fb := render.NewFramebuffer(req.Width, req.Height)
	stats := r.Render(fb, s, req.Camera)

	img := Image(fb)
	if req.Caption != "" {
		DrawCaption(img, req.Caption)
	}
	return img, stats
}

// Image copies a framebuffer into an RGBA image
func Image(fb *render.Framebuffer) *image.RGBA {
	w, h := fb.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			c := fb.At(x, y)
			i := x * 4
			row[i] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = 0xff
		}
	}
	return img
}

// DrawCaption writes text on a dark strip along the bottom edge
func DrawCaption(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	strip := (metrics.Ascent + metrics.Descent).Ceil() + captionPad

	b := img.Bounds()
	if strip > b.Dy() {
		return
	}
	band := image.Rect(b.Min.X, b.Max.Y-strip, b.Max.X, b.Max.Y)
	draw.Draw(img, band, image.NewUniform(color.RGBA{0, 0, 0, 0xa0}), image.Point{}, draw.Over)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(b.Min.X + captionPad),
			Y: fixed.I(b.Max.Y-captionPad/2) - metrics.Descent,
		},
	}
	drawer.DrawString(text)
}

// WritePNG encodes img to path
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return nil
}
