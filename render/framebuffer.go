// Package render rasterises a scene into a pixel framebuffer with a depth
// buffer, flat Lambert shading and floor shadows.
package render

import "math"

// Framebuffer is a row-major colour + depth target.
// Depth is NDC z in [-1, 1]; smaller is nearer.
type Framebuffer struct {
	color  []RGB
	depth  []float64
	mask   []uint32
	maskID uint32
	width  int
	height int
}

// NewFramebuffer creates a buffer with the specified dimensions
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient
func (b *Framebuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.color) < size {
		b.color = make([]RGB, size)
		b.depth = make([]float64, size)
		b.mask = make([]uint32, size)
	} else {
		b.color = b.color[:size]
		b.depth = b.depth[:size]
		b.mask = b.mask[:size]
	}
	b.width = width
	b.height = height
	b.Clear(RGBBlack)
}

// Size returns width and height in pixels
func (b *Framebuffer) Size() (int, int) {
	return b.width, b.height
}

// Aspect returns width / height, 1 for an empty buffer
func (b *Framebuffer) Aspect() float64 {
	if b.height == 0 {
		return 1
	}
	return float64(b.width) / float64(b.height)
}

// Clear resets colour and depth using exponential copy
func (b *Framebuffer) Clear(bg RGB) {
	if len(b.color) == 0 {
		return
	}
	b.color[0] = bg
	b.depth[0] = math.Inf(1)
	for filled := 1; filled < len(b.color); filled *= 2 {
		copy(b.color[filled:], b.color[:filled])
	}
	for filled := 1; filled < len(b.depth); filled *= 2 {
		copy(b.depth[filled:], b.depth[:filled])
	}
	for i := range b.mask {
		b.mask[i] = 0
	}
	b.maskID = 0
}

func (b *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the colour at a pixel, black when out of bounds
func (b *Framebuffer) At(x, y int) RGB {
	if !b.inBounds(x, y) {
		return RGBBlack
	}
	return b.color[y*b.width+x]
}

// Depth returns the stored depth at a pixel
func (b *Framebuffer) Depth(x, y int) float64 {
	if !b.inBounds(x, y) {
		return math.Inf(1)
	}
	return b.depth[y*b.width+x]
}

// Plot writes an opaque pixel if it passes the depth test
func (b *Framebuffer) Plot(x, y int, z float64, c RGB) bool {
	if !b.inBounds(x, y) {
		return false
	}
	idx := y*b.width + x
	if z >= b.depth[idx] {
		return false
	}
	b.depth[idx] = z
	b.color[idx] = c
	return true
}

// BlendPlot alpha-blends a pixel that passes the depth test without writing depth
func (b *Framebuffer) BlendPlot(x, y int, z float64, c RGB, alpha float64) bool {
	if !b.inBounds(x, y) {
		return false
	}
	idx := y*b.width + x
	if z >= b.depth[idx] {
		return false
	}
	b.color[idx] = Blend(b.color[idx], c, alpha)
	return true
}

// Desaturate blends every pixel toward its grey value by amount in [0, 1]
func (b *Framebuffer) Desaturate(amount float64) {
	if amount <= 0 {
		return
	}
	for i, c := range b.color {
		b.color[i] = Blend(c, Grayscale(c), amount)
	}
}

// BeginMask starts a new stencil pass; each pixel is darkened at most once per pass
func (b *Framebuffer) BeginMask() {
	b.maskID++
	if b.maskID == 0 {
		for i := range b.mask {
			b.mask[i] = 0
		}
		b.maskID = 1
	}
}

// Darken scales an already drawn pixel once per mask pass when z lies on
// that surface (within bias). Empty pixels are never darkened.
func (b *Framebuffer) Darken(x, y int, z, bias, factor float64) bool {
	if !b.inBounds(x, y) {
		return false
	}
	idx := y*b.width + x
	d := b.depth[idx]
	if b.mask[idx] == b.maskID || math.IsInf(d, 1) || math.Abs(z-d) > bias {
		return false
	}
	b.mask[idx] = b.maskID
	b.color[idx] = Scale(b.color[idx], factor)
	return true
}
