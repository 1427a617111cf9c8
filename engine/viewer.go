// Package engine runs the classroom viewer: a fixed-rate frame loop that
// poses the scene, rasterises it and presents it on a Display.
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/vi-classroom/camera"
	"github.com/lixenwraith/vi-classroom/config"
	"github.com/lixenwraith/vi-classroom/core"
	"github.com/lixenwraith/vi-classroom/logx"
	"github.com/lixenwraith/vi-classroom/pose"
	"github.com/lixenwraith/vi-classroom/render"
	"github.com/lixenwraith/vi-classroom/scene"
	"github.com/lixenwraith/vi-classroom/snapshot"
	"github.com/lixenwraith/vi-classroom/terminal"
	"github.com/lixenwraith/vi-classroom/vmath"
)

const (
	inputBuffer    = 64
	messageTimeout = 2 * time.Second

	// paused frames fade toward grey over pauseFade
	pauseDesaturate = 0.6
	pauseFade       = 400 * time.Millisecond
)

// Display is the output surface; *terminal.Screen implements it
type Display interface {
	Size() (width, height int)
	Blit(fb *render.Framebuffer)
	DrawText(x, y int, text string, fg, bg render.RGB)
	Show()
	Sync()
	PollEvent() terminal.Event
	Interrupt()
}

var _ Display = (*terminal.Screen)(nil)

// Sounds is the optional audio feedback
type Sounds interface {
	PlayBell()
	PlayClick()
}

// Options carries the optional collaborators of a Viewer
type Options struct {
	Sounds  Sounds          // nil for silence
	Watcher *config.Watcher // nil disables hot reload
	Clock   *PausableClock  // nil for a real-time clock

	// SnapshotDir receives PNGs taken with the snapshot key
	SnapshotDir string
}

// Viewer owns the scene and every piece of per-frame state.
// All fields are touched only by the render goroutine.
type Viewer struct {
	cfg     *config.Config
	log     logx.Log
	display Display
	sounds  Sounds
	watcher *config.Watcher
	clock   *PausableClock

	layout   scene.Layout
	scene    *scene.Scene
	renderer *render.Renderer
	orbit    *camera.OrbitControls
	fb       *render.Framebuffer

	counter   FrameCounter
	lastStats render.FrameStats

	dragging       bool
	mouseX, mouseY int

	snapshotDir  string
	message      string
	messageUntil time.Time
}

// NewViewer builds the scene described by cfg
func NewViewer(cfg *config.Config, display Display, log logx.Log, opts Options) *Viewer {
	clock := opts.Clock
	if clock == nil {
		clock = NewPausableClock()
	}
	v := &Viewer{
		cfg:         cfg,
		log:         log,
		display:     display,
		sounds:      opts.Sounds,
		watcher:     opts.Watcher,
		clock:       clock,
		renderer:    render.NewRenderer(cfg.RenderOptions()),
		orbit:       camera.NewOrbitControls(cfg.CameraDefaults()),
		fb:          render.NewFramebuffer(0, 0),
		snapshotDir: opts.SnapshotDir,
	}
	v.rebuild(cfg.Layout())
	v.resize()
	return v
}

// Scene returns the live scene
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Camera returns the current view
func (v *Viewer) Camera() camera.Camera { return v.orbit.Camera() }

// Clock returns the scene clock
func (v *Viewer) Clock() *PausableClock { return v.clock }

// Stats returns the renderer counters of the last frame
func (v *Viewer) Stats() render.FrameStats { return v.lastStats }

func (v *Viewer) rebuild(l scene.Layout) {
	v.layout = l
	v.scene = scene.Build(l)
	v.log.Info("scene built",
		logx.String("variant", l.Variant.String()),
		logx.Int("actors", len(v.scene.Actors)),
		logx.Int("meshes", v.scene.MeshCount()),
		logx.Int("raising", v.scene.RaisingHands()),
	)
}

func (v *Viewer) period() time.Duration {
	return time.Second / time.Duration(v.cfg.FPS)
}

// Run drives the viewer until quit, input close or ctx cancellation
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	events := make(chan terminal.Event, inputBuffer)

	g.Go(core.Guard(func() error {
		v.readInput(ctx, events)
		return nil
	}))

	var reloads <-chan config.Reload
	if v.watcher != nil {
		reloads = v.watcher.Reloads()
		g.Go(core.Guard(func() error {
			return v.watcher.Run(ctx)
		}))
	}

	g.Go(core.Guard(func() error {
		// cancel before waking the reader so it observes ctx on return
		defer v.display.Interrupt()
		defer cancel()
		return v.loop(ctx, events, reloads)
	}))

	if v.sounds != nil && v.cfg.Audio.Bell {
		v.sounds.PlayBell()
	}

	return g.Wait()
}

func (v *Viewer) readInput(ctx context.Context, out chan<- terminal.Event) {
	defer close(out)
	for {
		ev := v.display.PollEvent()
		if ctx.Err() != nil || ev.Type == terminal.EventClosed {
			return
		}
		if ev.Type == terminal.EventInterrupt {
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (v *Viewer) loop(ctx context.Context, events <-chan terminal.Event, reloads <-chan config.Reload) error {
	ticker := time.NewTicker(v.period())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case r := <-reloads:
			if r.Err != nil {
				v.log.Warn("config reload rejected", logx.Err(r.Err))
				v.flash("config error, keeping previous")
				continue
			}
			v.Apply(r.Config)
			ticker.Reset(v.period())

		case <-ticker.C:
		drainInput:
			for {
				select {
				case ev, ok := <-events:
					if !ok {
						return nil
					}
					if !v.Handle(ev) {
						return nil
					}
				default:
					break drainInput
				}
			}
			v.Frame()
		}
	}
}

// Apply swaps in a reloaded config, keeping the clock and, unless the camera
// section changed, the user's current view
func (v *Viewer) Apply(cfg *config.Config) {
	prev := v.cfg
	v.cfg = cfg
	v.renderer.SetOptions(cfg.RenderOptions())
	if cfg.CameraDefaults() != prev.CameraDefaults() {
		v.orbit = camera.NewOrbitControls(cfg.CameraDefaults())
	}
	v.rebuild(cfg.Layout())
	v.flash("config reloaded")
}

// Handle processes one input event and reports whether the viewer keeps running
func (v *Viewer) Handle(ev terminal.Event) bool {
	switch ev.Type {
	case terminal.EventResize:
		v.resize()
		v.display.Sync()
		return true
	case terminal.EventMouse:
		v.drag(ev)
		return true
	case terminal.EventKey:
	default:
		return true
	}

	switch ev.Key {
	case terminal.KeyEscape, terminal.KeyCtrlC:
		return false
	case terminal.KeyLeft:
		v.orbit.StepLeft()
	case terminal.KeyRight:
		v.orbit.StepRight()
	case terminal.KeyUp:
		v.orbit.StepUp()
	case terminal.KeyDown:
		v.orbit.StepDown()
	case terminal.KeyPgUp:
		v.orbit.Pan(0, v.orbit.PanStep)
	case terminal.KeyPgDn:
		v.orbit.Pan(0, -v.orbit.PanStep)
	case terminal.KeyRune:
		return v.handleRune(ev.Rune)
	}
	return true
}

func (v *Viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'h':
		v.orbit.StepLeft()
	case 'l':
		v.orbit.StepRight()
	case 'k':
		v.orbit.StepUp()
	case 'j':
		v.orbit.StepDown()
	case '+', '=':
		v.orbit.ZoomIn()
	case '-', '_':
		v.orbit.ZoomOut()
	case 'a':
		v.orbit.Pan(-v.orbit.PanStep, 0)
	case 'd':
		v.orbit.Pan(v.orbit.PanStep, 0)
	case 'r':
		v.orbit.Reset()
	case ' ':
		if v.clock.Toggle() {
			v.log.Debug("paused", logx.Float64("t", v.clock.Seconds()))
		}
	case 'v':
		v.ToggleVariant()
	case 's':
		if path, err := v.Snapshot(); err != nil {
			v.log.Error("snapshot failed", logx.Err(err))
			v.flash("snapshot failed")
		} else {
			v.flash("saved " + path)
		}
	}
	return true
}

func (v *Viewer) drag(ev terminal.Event) {
	if !ev.MouseDown {
		v.dragging = false
		return
	}
	if v.dragging {
		v.orbit.Drag(ev.MouseX-v.mouseX, ev.MouseY-v.mouseY)
	}
	v.dragging = true
	v.mouseX, v.mouseY = ev.MouseX, ev.MouseY
}

func (v *Viewer) resize() {
	w, h := v.display.Size()
	v.fb.Resize(terminal.PixelSize(w, h))
}

// ToggleVariant rebuilds the scene with the other pose variant
func (v *Viewer) ToggleVariant() {
	l := v.layout
	if l.Variant == pose.VariantSimple {
		l.Variant = pose.VariantDetailed
	} else {
		l.Variant = pose.VariantSimple
	}
	v.rebuild(l)
	v.flash("variant " + l.Variant.String())
}

// Snapshot writes the current view at the configured snapshot size
func (v *Viewer) Snapshot() (string, error) {
	t := v.clock.Seconds()
	req := snapshot.Request{
		Width:  v.cfg.Snapshot.Width,
		Height: v.cfg.Snapshot.Height,
		Time:   t,
		Camera: v.orbit.Camera(),
	}
	if v.cfg.Snapshot.Caption {
		req.Caption = Caption(v.layout.Variant, t)
	}
	img, _ := snapshot.Capture(v.renderer, v.scene, req)

	name := fmt.Sprintf("classroom-%s.png", time.Now().Format("20060102-150405.000"))
	path := filepath.Join(v.snapshotDir, name)
	if err := snapshot.WritePNG(path, img); err != nil {
		return "", err
	}
	if v.sounds != nil {
		v.sounds.PlayClick()
	}
	v.log.Info("snapshot written", logx.String("path", path), logx.Float64("t", t))
	return path, nil
}

// Caption labels a snapshot
func Caption(variant pose.Variant, t float64) string {
	return fmt.Sprintf("classroom %s  t=%.2fs", variant, t)
}

func (v *Viewer) flash(msg string) {
	v.message = msg
	v.messageUntil = time.Now().Add(messageTimeout)
}

// Frame poses, renders and presents one frame
func (v *Viewer) Frame() {
	start := time.Now()

	v.scene.Update(v.clock.Seconds())
	v.lastStats = v.renderer.Render(v.fb, v.scene, v.orbit.Camera())
	if v.clock.IsPaused() {
		fade := vmath.Smoothstep(0, pauseFade.Seconds(), v.clock.CurrentPauseDuration().Seconds())
		v.fb.Desaturate(pauseDesaturate * fade)
	}
	v.display.Blit(v.fb)

	v.counter.Record(start, time.Since(start))
	v.drawHUD()
	v.display.Show()
}
