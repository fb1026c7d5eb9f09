// Package input turns SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseDrag
	EventMouseWheel
	EventMouseClick
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX float32
	DeltaY float32
	Button uint8
}

// Input collects the events of one frame.
type Input struct {
	events   []Event
	dragging bool
	dragged  bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. It returns true when the window was closed.
// A left-button press and release without motion in between is reported
// as a click; motion while the button is held is reported as drag.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			if i.dragging && e.State&sdl.ButtonLMask() != 0 {
				i.dragged = true
				i.events = append(i.events, Event{
					Type:   EventMouseDrag,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					DeltaX: float32(e.XRel),
					DeltaY: float32(e.YRel),
				})
			}

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.dragging = true
				i.dragged = false
			} else if e.Type == sdl.MOUSEBUTTONUP {
				if !i.dragged {
					i.events = append(i.events, Event{
						Type:   EventMouseClick,
						MouseX: int(e.X),
						MouseY: int(e.Y),
						Button: e.Button,
					})
				}
				i.dragging = false
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{Type: EventMouseWheel, DeltaY: float32(e.Y)})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether a key is currently held.
func IsKeyDown(scancode sdl.Scancode) bool {
	return sdl.GetKeyboardState()[scancode] != 0
}
