// Package event defines the platform events the host delivers to the viewer.
//
// Event is a closed sum type: only the variants in this package implement it,
// and consumers dispatch with a type switch.
package event

import "minecraf2/internal/vmath"

// Event is one input notification from the host.
type Event interface {
	isEvent()
}

// Key is a physical key press, release or repeat.
type Key struct {
	Key    KeyCode
	Action Action
}

// MouseMotion carries the pointer movement since the previous motion event,
// in screen units.
type MouseMotion struct {
	Delta vmath.Vec2
}

// InputCaptured reports that the host grabbed (or released) the pointer.
type InputCaptured struct {
	Captured bool
}

// FramebufferResize reports the new drawable size in pixels.
type FramebufferResize struct {
	Width, Height int
}

func (Key) isEvent()               {}
func (MouseMotion) isEvent()       {}
func (InputCaptured) isEvent()     {}
func (FramebufferResize) isEvent() {}
