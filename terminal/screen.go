package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/vi-classroom/render"
)

// HalfBlock is the upper half block; fg paints the upper pixel, bg the lower
const HalfBlock = '▀'

// Screen is the tcell-backed rendering host
type Screen struct {
	screen tcell.Screen
	mode   ColorMode

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

var (
	activeMu sync.Mutex
	active   *Screen
)

// New creates a screen on the controlling terminal
func New(mode ColorMode) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	return NewWithScreen(s, mode), nil
}

// NewWithScreen wraps an existing tcell screen, e.g. a simulation screen
func NewWithScreen(s tcell.Screen, mode ColorMode) *Screen {
	return &Screen{screen: s, mode: mode}
}

// Init enters raw mode and the alternate screen, hides the cursor and
// enables mouse reporting
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := s.screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	s.screen.HideCursor()
	s.screen.EnableMouse(tcell.MouseDragEvents)
	s.screen.Clear()
	s.initialized = true

	activeMu.Lock()
	active = s
	activeMu.Unlock()
	return nil
}

// Fini restores terminal state. Safe to call multiple times
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized || s.finalized {
		return
	}
	s.finalized = true
	s.screen.DisableMouse()
	s.screen.Fini()

	activeMu.Lock()
	if active == s {
		active = nil
	}
	activeMu.Unlock()
}

// Restore finalizes the active screen; used by crash handlers
func Restore() {
	activeMu.Lock()
	s := active
	activeMu.Unlock()
	if s != nil {
		s.Fini()
	}
}

// Size returns current terminal dimensions in cells
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// ColorMode returns the mode colours are emitted in
func (s *Screen) ColorMode() ColorMode {
	return s.mode
}

// PixelSize returns the framebuffer size that fills rows cells high
func PixelSize(width, rows int) (int, int) {
	return width, rows * 2
}

// Blit writes a framebuffer at the top-left, two pixels per cell
func (s *Screen) Blit(fb *render.Framebuffer) {
	w, h := fb.Size()
	cols, rows := s.screen.Size()
	for cy := 0; cy*2 < h && cy < rows; cy++ {
		for cx := 0; cx < w && cx < cols; cx++ {
			top := fb.At(cx, cy*2)
			bottom := top
			if cy*2+1 < h {
				bottom = fb.At(cx, cy*2+1)
			}
			style := tcell.StyleDefault.
				Foreground(toColor(top, s.mode)).
				Background(toColor(bottom, s.mode))
			s.screen.SetContent(cx, cy, HalfBlock, nil, style)
		}
	}
}

// DrawText writes a single line of text starting at (x, y)
func (s *Screen) DrawText(x, y int, text string, fg, bg render.RGB) {
	style := tcell.StyleDefault.Foreground(toColor(fg, s.mode)).Background(toColor(bg, s.mode))
	cols, _ := s.screen.Size()
	for _, r := range text {
		if x >= cols {
			return
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Show presents pending changes
func (s *Screen) Show() {
	s.screen.Show()
}

// Sync forces a full redraw
func (s *Screen) Sync() {
	s.screen.Sync()
}

// PollEvent blocks until the next relevant event; EventClosed after Fini
func (s *Screen) PollEvent() Event {
	for {
		if ev, ok := translate(s.screen.PollEvent()); ok {
			return ev
		}
	}
}

// Interrupt wakes a blocked PollEvent
func (s *Screen) Interrupt() {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}
