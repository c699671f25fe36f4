package input

import "minecraf2/internal/event"

// Direction is a movement intent, not a physical key
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
	DirectionCount // Sentinel value for array sizing
)

var directionNames = [DirectionCount]string{"forward", "backward", "left", "right", "up", "down"}

func (d Direction) String() string {
	if d < 0 || d >= DirectionCount {
		return "invalid"
	}
	return directionNames[d]
}

// Intent is the last known held state of each movement direction.
// It is sampled once per frame; nothing is queued.
type Intent [DirectionCount]bool

// Set records whether d is held
func (in *Intent) Set(d Direction, held bool) {
	if d < 0 || d >= DirectionCount {
		return
	}
	in[d] = held
}

// Active returns true if d is currently held
func (in Intent) Active(d Direction) bool {
	if d < 0 || d >= DirectionCount {
		return false
	}
	return in[d]
}

// Any returns true if at least one direction is held
func (in Intent) Any() bool {
	for _, held := range in {
		if held {
			return true
		}
	}
	return false
}

// Clear releases every direction
func (in *Intent) Clear() {
	*in = Intent{}
}

// Bindings maps physical keys to movement directions
type Bindings struct {
	keyToDirection map[event.KeyCode]Direction
	spinToggle     event.KeyCode
}

// NewBindings creates bindings with the default layout:
// W/S forward/back, A/D strafe, Space up, Left Control down, R toggles spin.
func NewBindings() *Bindings {
	b := &Bindings{
		keyToDirection: make(map[event.KeyCode]Direction),
		spinToggle:     event.KeyR,
	}

	b.BindKey(event.KeyW, Forward)
	b.BindKey(event.KeyS, Backward)
	b.BindKey(event.KeyA, Left)
	b.BindKey(event.KeyD, Right)
	b.BindKey(event.KeySpace, Up)
	b.BindKey(event.KeyLeftControl, Down)

	return b
}

// BindKey binds a physical key to a direction, replacing any previous binding of that key
func (b *Bindings) BindKey(key event.KeyCode, d Direction) {
	if d < 0 || d >= DirectionCount {
		return
	}
	b.keyToDirection[key] = d
}

// Lookup returns the direction bound to key
func (b *Bindings) Lookup(key event.KeyCode) (Direction, bool) {
	d, ok := b.keyToDirection[key]
	return d, ok
}

// IsSpinToggle reports whether key toggles the model spin
func (b *Bindings) IsSpinToggle(key event.KeyCode) bool {
	return key == b.spinToggle
}

// HandleKey applies a key event to intent. Press holds the bound direction,
// release lets go of it; repeats and unbound keys are ignored.
// It reports whether the key was bound.
func (b *Bindings) HandleKey(intent *Intent, e event.Key) bool {
	d, ok := b.Lookup(e.Key)
	if !ok {
		return false
	}

	switch e.Action {
	case event.Press:
		intent.Set(d, true)
	case event.Release:
		intent.Set(d, false)
	}
	return true
}
