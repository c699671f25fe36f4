package vmath

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = float32(1e-5)

func assertVec3(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, float64(tol), "x")
	assert.InDelta(t, want.Y, got.Y, float64(tol), "y")
	assert.InDelta(t, want.Z, got.Z, float64(tol), "z")
}

func assertMat4(t *testing.T, want, got Mat4) {
	t.Helper()
	assert.Truef(t, want.ApproxEqual(got, tol), "want %v\n got %v", want, got)
}

var sampleMats = []Mat4{
	{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
	Mat4Translate(1, -2, 3),
	Mat4Scale(2, 0.5, -1),
	Mat4Perspective(math32.Pi/3, 1.5, 0.1, 100),
	Mat4RotateAxis(1, 1, 0, 0.7),
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-4, 5, 0.5}

	assert.Equal(t, Vec3{-3, 7, 3.5}, a.Add(b))
	assert.Equal(t, Vec3{5, -3, 2.5}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, float32(7.5), a.Dot(b))
	assert.Equal(t, Vec2{1, -1}, Vec2{3, 2}.Sub(Vec2{2, 3}))
}

func TestCross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, x.Cross(y))

	pairs := [][2]Vec3{
		{{1, 2, 3}, {4, 5, 6}},
		{{-1, 0.5, 2}, {0, 0, 1}},
		{{0.3, -7, 1}, {2, 2, 2}},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		got := a.Cross(b)
		assertVec3(t, got, b.Cross(a).Scale(-1))
		want := mgl32.Vec3{a.X, a.Y, a.Z}.Cross(mgl32.Vec3{b.X, b.Y, b.Z})
		assertVec3(t, Vec3{want[0], want[1], want[2]}, got)
	}
}

func TestNormalize(t *testing.T) {
	for _, v := range []Vec3{{3, 4, 0}, {1, 1, 1}, {-0.001, 0, 0.002}, {100, -200, 300}} {
		n := v.Normalize()
		assert.InDelta(t, 1, n.Len(), 1e-5, "|normalize(%v)|", v)
		assert.Greater(t, n.Dot(v), float32(0))
	}
}

func TestNormalizeZero(t *testing.T) {
	n := Vec3{}.Normalize()
	assert.Equal(t, Vec3{}, n)
	assert.True(t, n.IsZero())
}

func TestIdentityIsNeutral(t *testing.T) {
	id := Mat4Identity()
	for _, m := range sampleMats {
		assert.Equal(t, m, Mat4Mul(m, id))
		assert.Equal(t, m, Mat4Mul(id, m))
	}
}

func TestMulAssociative(t *testing.T) {
	for i := range sampleMats {
		a := sampleMats[i]
		b := sampleMats[(i+1)%len(sampleMats)]
		c := sampleMats[(i+2)%len(sampleMats)]
		left := Mat4Mul(Mat4Mul(a, b), c)
		right := Mat4Mul(a, Mat4Mul(b, c))
		scale := float32(1)
		for _, v := range left {
			scale = math32.Max(scale, math32.Abs(v))
		}
		assert.Truef(t, left.ApproxEqual(right, 1e-5*scale), "(ab)c=%v\na(bc)=%v", left, right)
	}
}

func TestMulMatchesMathgl(t *testing.T) {
	a := sampleMats[0]
	b := sampleMats[4]
	want := mgl32.Mat4(a).Mul4(mgl32.Mat4(b))
	assertMat4(t, Mat4(want), a.Mul(b))
}

func TestMulIsNotCommutative(t *testing.T) {
	tr := Mat4Translate(1, 0, 0)
	rot := Mat4RotateAxis(0, 0, 1, math32.Pi/2)
	p := Vec3{1, 0, 0}

	// rotate first, then translate
	assertVec3(t, Vec3{1, 1, 0}, tr.Mul(rot).MulPoint(p))
	// translate first, then rotate
	assertVec3(t, Vec3{0, 2, 0}, rot.Mul(tr).MulPoint(p))
}

func TestTranslateAndScale(t *testing.T) {
	assert.Equal(t, Mat4(mgl32.Translate3D(1, 2, 3)), Mat4Translate(1, 2, 3))
	assert.Equal(t, Mat4(mgl32.Scale3D(4, 5, 6)), Mat4Scale(4, 5, 6))
	assert.Equal(t, Vec3{3, 4, 5}, Mat4Translate(2, 2, 2).MulPoint(Vec3{1, 2, 3}))
	assert.Equal(t, Vec3{2, 6, -3}, Mat4Scale(2, 3, -1).MulPoint(Vec3{1, 2, 3}))
}

func TestOrthoMapsBoxToClipCube(t *testing.T) {
	cases := []struct{ l, r, b, t, n, f float32 }{
		{-1, 1, -1, 1, 0.1, 100},
		{0, 900, 600, 0, -1, 1},
		{-3, 5, 2, 10, 1, 20},
	}
	for _, c := range cases {
		m := Mat4Ortho(c.l, c.r, c.b, c.t, c.n, c.f)
		// near and far are distances along -Z
		assertVec3(t, Vec3{-1, -1, -1}, m.MulPoint(Vec3{c.l, c.b, -c.n}))
		assertVec3(t, Vec3{1, 1, 1}, m.MulPoint(Vec3{c.r, c.t, -c.f}))
		assertMat4(t, Mat4(mgl32.Ortho(c.l, c.r, c.b, c.t, c.n, c.f)), m)
	}
}

func TestPerspective(t *testing.T) {
	fovy := float32(math32.Pi / 3)
	m := Mat4Perspective(fovy, 16.0/9.0, 0.1, 100)
	assertMat4(t, Mat4(mgl32.Perspective(fovy, 16.0/9.0, 0.1, 100)), m)

	assert.Equal(t, float32(-1), m.At(3, 2))
	assert.Equal(t, float32(0), m.At(3, 3))
	assertVec3(t, Vec3{0, 0, -1}, m.MulPoint(Vec3{0, 0, -0.1}))
	assertVec3(t, Vec3{0, 0, 1}, m.MulPoint(Vec3{0, 0, -100}))
}

func TestRotateAxis(t *testing.T) {
	assertMat4(t, Mat4Identity(), Mat4RotateAxis(0, 0, 1, 0))

	half := Mat4RotateAxis(0, 0, 1, math32.Pi)
	assertVec3(t, Vec3{-1, 0, 0}, half.MulPoint(Vec3{1, 0, 0}))
	assertVec3(t, Vec3{0, -1, 0}, half.MulPoint(Vec3{0, 1, 0}))
	assertVec3(t, Vec3{0, 0, 1}, half.MulPoint(Vec3{0, 0, 1}))
	assertMat4(t, Mat4Scale(-1, -1, 1), half)

	axis := mgl32.Vec3{1, 2, -3}.Normalize()
	want := mgl32.HomogRotate3D(0.9, axis)
	assertMat4(t, Mat4(want), Mat4RotateAxis(1, 2, -3, 0.9))

	assert.Equal(t, Mat4Identity(), Mat4RotateAxis(0, 0, 0, 1.2))
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, -5}
	center := Vec3{0.2, 0.1, -4}
	up := Vec3{0, 1, 0}

	want := mgl32.LookAtV(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0.2, 0.1, -4}, mgl32.Vec3{0, 1, 0})
	got := Mat4LookAt(eye, center, up)
	assertMat4(t, Mat4(want), got)

	// the eye lands on the origin and the target on -Z
	assertVec3(t, Vec3{}, got.MulPoint(eye))
	d := center.Sub(eye).Len()
	assertVec3(t, Vec3{0, 0, -d}, got.MulPoint(center))
}

func TestLookAtParallelUpIsFinite(t *testing.T) {
	m := Mat4LookAt(Vec3{}, Vec3{0, 1, 0}, Vec3{0, 1, 0})
	for i, v := range m {
		assert.Falsef(t, math32.IsNaN(v) || math32.IsInf(v, 0), "element %d = %v", i, v)
	}
}
