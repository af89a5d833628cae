package input

import "github.com/veandco/go-sdl2/sdl"

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionCycleTechnique
	ActionCyclePolicy
	ActionToggleMirror
	ActionToggleBackend
	ActionDumpStats
	ActionScreenshot
	ActionOpenScene
)

// DefaultBindings maps scancodes to viewer actions.
var DefaultBindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE: ActionQuit,
	sdl.SCANCODE_T:      ActionCycleTechnique,
	sdl.SCANCODE_P:      ActionCyclePolicy,
	sdl.SCANCODE_M:      ActionToggleMirror,
	sdl.SCANCODE_B:      ActionToggleBackend,
	sdl.SCANCODE_F1:     ActionDumpStats,
	sdl.SCANCODE_F12:    ActionScreenshot,
	sdl.SCANCODE_O:      ActionOpenScene,
}

// Actions returns the actions triggered by key presses in events, in event order.
func Actions(events []Event, bindings map[sdl.Scancode]Action) []Action {
	var out []Action
	for _, e := range events {
		if e.Type != EventKeyDown {
			continue
		}
		if a, ok := bindings[e.Key]; ok {
			out = append(out, a)
		}
	}
	return out
}
