package terminal

import (
	"github.com/gdamore/tcell/v2"
)

// EventType classifies input events
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventMouse
	EventInterrupt
	EventClosed
)

// Key identifies special keys; printable input uses KeyRune
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyEnter
	KeyCtrlC
	KeyPgUp
	KeyPgDn
)

// Event is a terminal event stripped to what the viewer needs
type Event struct {
	Type EventType
	Key  Key
	Rune rune

	// Resize
	Width, Height int

	// Mouse position in cells and primary button state
	MouseX, MouseY int
	MouseDown      bool
}

var keyMap = map[tcell.Key]Key{
	tcell.KeyUp:     KeyUp,
	tcell.KeyDown:   KeyDown,
	tcell.KeyLeft:   KeyLeft,
	tcell.KeyRight:  KeyRight,
	tcell.KeyEscape: KeyEscape,
	tcell.KeyEnter:  KeyEnter,
	tcell.KeyCtrlC:  KeyCtrlC,
	tcell.KeyPgUp:   KeyPgUp,
	tcell.KeyPgDn:   KeyPgDn,
}

// translate converts a tcell event; ok is false for events the viewer ignores
func translate(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case nil:
		return Event{Type: EventClosed}, true
	case *tcell.EventKey:
		if e.Key() == tcell.KeyRune {
			return Event{Type: EventKey, Key: KeyRune, Rune: e.Rune()}, true
		}
		if k, ok := keyMap[e.Key()]; ok {
			return Event{Type: EventKey, Key: k}, true
		}
		return Event{}, false
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true
	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:      EventMouse,
			MouseX:    x,
			MouseY:    y,
			MouseDown: e.Buttons()&tcell.Button1 != 0,
		}, true
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}, true
	}
	return Event{}, false
}
