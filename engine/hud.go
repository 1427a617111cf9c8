package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/vi-classroom/render"
)

var (
	hudFg     = render.RGB{R: 235, G: 235, B: 240}
	hudBg     = render.RGB{R: 20, G: 24, B: 32}
	hudDim    = render.RGB{R: 100, G: 100, B: 110}
	hudPaused = render.RGB{R: 255, G: 200, B: 50}
)

const controlsHelp = " arrows/hjkl:orbit  +/-:zoom  a/d pgup/pgdn:pan  r:reset  space:pause  v:variant  s:snap  q:quit"

// StatusLine is the top HUD row
func (v *Viewer) StatusLine() string {
	return fmt.Sprintf(" %s  %4.0f fps  %5.1f ms  actors %d  hands %d  tris %d  shadow px %d",
		v.layout.Variant,
		v.counter.FPS(),
		float64(v.counter.FrameTime())/float64(time.Millisecond),
		len(v.scene.Actors),
		v.scene.RaisingHands(),
		v.lastStats.Triangles,
		v.lastStats.Shadows,
	)
}

func (v *Viewer) drawHUD() {
	w, h := v.display.Size()
	if w <= 0 || h <= 0 {
		return
	}

	v.display.DrawText(0, 0, pad(v.StatusLine(), w), hudFg, hudBg)
	if v.clock.IsPaused() && w > 10 {
		v.display.DrawText(w-9, 0, "[PAUSED]", hudPaused, hudBg)
	}

	if h < 2 {
		return
	}
	bottom := controlsHelp
	fg := hudDim
	if v.message != "" && time.Now().Before(v.messageUntil) {
		bottom = " " + v.message
		fg = hudFg
	}
	v.display.DrawText(0, h-1, pad(bottom, w), fg, hudBg)
}

// pad fills the row so the HUD band is solid
func pad(s string, w int) string {
	n := len([]rune(s))
	if n >= w {
		return s
	}
	b := make([]rune, 0, w)
	b = append(b, []rune(s)...)
	for ; n < w; n++ {
		b = append(b, ' ')
	}
	return string(b)
}
