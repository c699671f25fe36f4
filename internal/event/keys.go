package event

// KeyCode is a physical key. Values match GLFW's key tokens so the host can
// convert with KeyCode(glfw.Key) and this package stays free of cgo.
type KeyCode int

const (
	KeyUnknown      KeyCode = -1
	KeySpace        KeyCode = 32
	KeyA            KeyCode = 65
	KeyD            KeyCode = 68
	KeyR            KeyCode = 82
	KeyS            KeyCode = 83
	KeyW            KeyCode = 87
	KeyEscape       KeyCode = 256
	KeyF12          KeyCode = 301
	KeyLeftControl  KeyCode = 341
	KeyRightControl KeyCode = 345
)

// Action matches glfw.Action.
type Action int

const (
	Release Action = 0
	Press   Action = 1
	Repeat  Action = 2
)

func (a Action) String() string {
	switch a {
	case Release:
		return "release"
	case Press:
		return "press"
	case Repeat:
		return "repeat"
	}
	return "unknown"
}
