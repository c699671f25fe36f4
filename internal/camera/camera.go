// Package camera implements the free-flying first-person camera: a position
// plus yaw and pitch in radians, with no roll.
package camera

import (
	"minecraf2/internal/input"
	"minecraf2/internal/vmath"

	"github.com/chewxy/math32"
)

// WorldUp is the fixed up axis used for the view basis and vertical movement.
var WorldUp = vmath.Vec3{X: 0, Y: 1, Z: 0}

// Camera holds the pose. Yaw and pitch are unbounded: nothing wraps or clamps
// them, so past ±90° of pitch the forward vector flips over.
type Camera struct {
	Position vmath.Vec3
	Yaw      float32
	Pitch    float32
}

// New returns a camera at pos with the given orientation.
func New(pos vmath.Vec3, yaw, pitch float32) Camera {
	return Camera{Position: pos, Yaw: yaw, Pitch: pitch}
}

// Forward returns the unit view direction. Yaw 0 looks down +X and yaw π/2
// looks down -Z.
func (c Camera) Forward() vmath.Vec3 {
	sinYaw, cosYaw := math32.Sincos(c.Yaw)
	sinPitch, cosPitch := math32.Sincos(c.Pitch)
	return vmath.Vec3{
		X: cosYaw * cosPitch,
		Y: sinPitch,
		Z: -sinYaw * cosPitch,
	}
}

// Right returns the horizontal strafe direction. It is zero when looking
// straight up or down.
func (c Camera) Right() vmath.Vec3 {
	return c.Forward().Cross(WorldUp).Normalize()
}

// View returns the world-to-view matrix.
func (c Camera) View() vmath.Mat4 {
	center := c.Position.Add(c.Forward())
	return vmath.Mat4LookAt(c.Position, center, WorldUp)
}

// Look turns the camera by a pointer delta. Moving the pointer right or down
// decreases yaw or pitch by sensitivity per unit.
func (c *Camera) Look(delta vmath.Vec2, sensitivity float32) {
	c.Yaw -= sensitivity * delta.X
	c.Pitch -= sensitivity * delta.Y
}

// MoveDirection sums the held directions into an unnormalized vector built
// from the camera's forward, right and world-up axes.
func (c Camera) MoveDirection(intent input.Intent) vmath.Vec3 {
	forward := c.Forward()
	right := c.Right()

	var move vmath.Vec3
	if intent.Active(input.Forward) {
		move = move.Add(forward)
	}
	if intent.Active(input.Backward) {
		move = move.Sub(forward)
	}
	if intent.Active(input.Left) {
		move = move.Sub(right)
	}
	if intent.Active(input.Right) {
		move = move.Add(right)
	}
	if intent.Active(input.Up) {
		move = move.Add(WorldUp)
	}
	if intent.Active(input.Down) {
		move = move.Sub(WorldUp)
	}
	return move
}

// Move integrates one frame of flight at speed units per second and returns
// the displacement. Opposing keys cancel; the result never exceeds speed*dt.
func (c *Camera) Move(intent input.Intent, speed, dt float32) vmath.Vec3 {
	move := c.MoveDirection(intent)
	if move.IsZero() {
		return vmath.Vec3{}
	}

	step := move.Normalize().Scale(speed * dt)
	c.Position = c.Position.Add(step)
	return step
}
