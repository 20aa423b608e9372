// Package input polls SDL2 events and maps keys to viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is something the viewer does in response to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPitchUp
	ActionPitchDown
	ActionYawLeft
	ActionYawRight
	ActionRollLeft
	ActionRollRight
	ActionZoomIn
	ActionZoomOut
	ActionReset
	ActionToggleOutline
	ActionScreenshot
)

// String returns a short action name.
func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionPitchUp:
		return "pitch-up"
	case ActionPitchDown:
		return "pitch-down"
	case ActionYawLeft:
		return "yaw-left"
	case ActionYawRight:
		return "yaw-right"
	case ActionRollLeft:
		return "roll-left"
	case ActionRollRight:
		return "roll-right"
	case ActionZoomIn:
		return "zoom-in"
	case ActionZoomOut:
		return "zoom-out"
	case ActionReset:
		return "reset"
	case ActionToggleOutline:
		return "toggle-outline"
	case ActionScreenshot:
		return "screenshot"
	default:
		return "none"
	}
}

// ActionFor maps a key and its modifiers to an action: w/s pitch, a/d yaw,
// q/e roll, z zooms in and shift+z zooms out, r resets, b toggles the
// volume outline, p saves a screenshot, Escape quits.
func ActionFor(key sdl.Keycode, mod uint16) Action {
	shift := mod&uint16(sdl.KMOD_SHIFT) != 0
	switch key {
	case sdl.K_ESCAPE:
		return ActionQuit
	case sdl.K_w:
		return ActionPitchUp
	case sdl.K_s:
		return ActionPitchDown
	case sdl.K_a:
		return ActionYawLeft
	case sdl.K_d:
		return ActionYawRight
	case sdl.K_q:
		return ActionRollLeft
	case sdl.K_e:
		return ActionRollRight
	case sdl.K_z:
		if shift {
			return ActionZoomOut
		}
		return ActionZoomIn
	case sdl.K_r:
		return ActionReset
	case sdl.K_b:
		return ActionToggleOutline
	case sdl.K_p:
		return ActionScreenshot
	}
	return ActionNone
}

// EventType classifies polled events.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventAction
)

// Event is one processed input event.
type Event struct {
	Type   EventType
	Action Action
	Width  int
	Height int
}

// Input collects the events of one frame.
type Input struct {
	events []Event
}

// New creates an input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update polls SDL events. It returns true once the viewer should quit.
// Held keys repeat, so rotation continues while a key is down.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			action := ActionFor(e.Keysym.Sym, e.Keysym.Mod)
			if action == ActionNone {
				continue
			}
			i.events = append(i.events, Event{Type: EventAction, Action: action})
			if action == ActionQuit {
				quit = true
			}
		}
	}
	return quit
}

// Events returns the events collected by the last Update.
func (i *Input) Events() []Event {
	return i.events
}
