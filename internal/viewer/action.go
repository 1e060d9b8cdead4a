package viewer

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleWireframe
	ActionToggleHUD
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionReset
)

// KeyBindings maps key names to actions. Names follow the terminal key
// notation ("left", "esc", "x"); the window presenter translates its own
// key codes to the same names.
var KeyBindings = map[string]Action{
	"esc":    ActionQuit,
	"escape": ActionQuit,
	"q":      ActionQuit,
	"ctrl+c": ActionQuit,
	"x":      ActionToggleWireframe,
	"?":      ActionToggleHUD,
	"left":   ActionOrbitLeft,
	"h":      ActionOrbitLeft,
	"right":  ActionOrbitRight,
	"l":      ActionOrbitRight,
	"up":     ActionOrbitUp,
	"k":      ActionOrbitUp,
	"down":   ActionOrbitDown,
	"j":      ActionOrbitDown,
	"r":      ActionReset,
}

// KeyAction returns the action bound to a key name.
func KeyAction(key string) Action {
	return KeyBindings[key]
}

// Help lists the key bindings for usage text.
const Help = `Controls:
  x           Toggle wireframe
  arrows/hjkl Orbit the light
  r           Reset the light
  ?           Toggle HUD
  esc/q       Quit`
