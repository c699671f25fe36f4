package host

import (
	"minecraf2/internal/event"
	"minecraf2/internal/vmath"
)

// translator turns raw window callbacks into viewer events. Escape and F12
// are host keys and never reach the viewer.
type translator struct {
	captured bool

	// cursorValid is false until the first cursor sample after a capture
	// change, so warping the cursor does not turn into a camera jump.
	cursorValid  bool
	lastX, lastY float64

	pending []event.Event

	wantClose      bool
	wantScreenshot bool
}

func (t *translator) key(k event.KeyCode, a event.Action) {
	switch {
	case k == event.KeyEscape && a == event.Press:
		if t.captured {
			t.setCaptured(false)
		} else {
			t.wantClose = true
		}
	case k == event.KeyEscape:
	case k == event.KeyF12:
		if a == event.Press {
			t.wantScreenshot = true
		}
	default:
		t.pending = append(t.pending, event.Key{Key: k, Action: a})
	}
}

func (t *translator) leftClick() {
	if !t.captured {
		t.setCaptured(true)
	}
}

func (t *translator) cursor(x, y float64) {
	if !t.cursorValid {
		t.lastX, t.lastY = x, y
		t.cursorValid = true
		return
	}
	dx, dy := x-t.lastX, y-t.lastY
	t.lastX, t.lastY = x, y
	if !t.captured || (dx == 0 && dy == 0) {
		return
	}
	t.pending = append(t.pending, event.MouseMotion{Delta: vmath.Vec2{X: float32(dx), Y: float32(dy)}})
}

func (t *translator) resize(width, height int) {
	t.pending = append(t.pending, event.FramebufferResize{Width: width, Height: height})
}

func (t *translator) setCaptured(captured bool) {
	t.captured = captured
	t.cursorValid = false
	t.pending = append(t.pending, event.InputCaptured{Captured: captured})
}

// flush hands every queued event to fn in arrival order and empties the queue.
func (t *translator) flush(fn func(event.Event)) {
	for _, e := range t.pending {
		fn(e)
	}
	clear(t.pending)
	t.pending = t.pending[:0]
}

func (t *translator) takeScreenshot() bool {
	want := t.wantScreenshot
	t.wantScreenshot = false
	return want
}
