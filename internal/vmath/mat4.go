package vmath

import "github.com/chewxy/math32"

// Mat4 is a 4x4 homogeneous transform stored column-major, the layout
// glUniformMatrix4fv expects with transpose=false:
//
//	m[col*4+row]
//
//	M00 M01 M02 M03
//	M10 M11 M12 M13
//	M20 M21 M22 M23
//	M30 M31 M32 M33
//
// is laid out in memory as M00 M10 M20 M30 M01 M11 ...
type Mat4 [16]float32

// Mat4Identity returns the identity transform.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b. Applied to a column vector, b acts first.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			m[col*4+row] = sum
		}
	}
	return m
}

// Mul returns m × b.
func (m Mat4) Mul(b Mat4) Mat4 {
	return Mat4Mul(m, b)
}

// At returns the element at the given row and column.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// MulPoint transforms p as a point (w=1) and divides by the resulting w.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// ApproxEqual reports whether every element differs from o by at most eps.
func (m Mat4) ApproxEqual(o Mat4, eps float32) bool {
	for i := range m {
		if math32.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// Mat4Translate returns the identity with the translation column set.
func Mat4Translate(x, y, z float32) Mat4 {
	m := Mat4Identity()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

// Mat4Scale returns the identity with the diagonal set to the scale factors.
func Mat4Scale(x, y, z float32) Mat4 {
	m := Mat4Identity()
	m[0] = x
	m[5] = y
	m[10] = z
	return m
}

// Mat4Ortho maps the view-space box [l,r]x[b,t]x[-near,-far] to the
// OpenGL clip cube [-1,1]^3, like glOrtho.
func Mat4Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near

	return Mat4{
		2 / rl, 0, 0, 0,
		0, 2 / tb, 0, 0,
		0, 0, -2 / fn, 0,
		-(right + left) / rl, -(top + bottom) / tb, -(far + near) / fn, 1,
	}
}

// Mat4Perspective is the symmetric frustum of gluPerspective. fovy is in radians.
func Mat4Perspective(fovy, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovy/2)
	nf := near - far

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / nf, -1,
		0, 0, 2 * far * near / nf, 0,
	}
}

// Mat4RotateAxis rotates by angle radians about the axis (x,y,z) using
// Rodrigues' formula. The axis is normalized; a zero axis gives the identity.
func Mat4RotateAxis(x, y, z, angle float32) Mat4 {
	axis := Vec3{x, y, z}.Normalize()
	if axis.IsZero() {
		return Mat4Identity()
	}
	x, y, z = axis.X, axis.Y, axis.Z

	s, c := math32.Sincos(angle)
	k := 1 - c

	return Mat4{
		x*x*k + c, x*y*k + z*s, x*z*k - y*s, 0,
		x*y*k - z*s, y*y*k + c, y*z*k + x*s, 0,
		x*z*k + y*s, y*z*k - x*s, z*z*k + c, 0,
		0, 0, 0, 1,
	}
}

// Mat4LookAt builds the world-to-view transform of a camera at eye looking
// at center, as gluLookAt does. When eye->center is parallel to up the right
// axis collapses to zero and the result is finite but degenerate.
func Mat4LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}
