package Panel2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPanelKernels(t *testing.T) {
	var (
		p   = NewPanel(0, 0, 1, r2.Vec{X: 0.2, Y: 0.1}, r2.Vec{X: 0.9, Y: -0.3})
		h   = 1.e-5
		tol = 1.e-6
		pts = []r2.Vec{{X: 0.5, Y: 0.8}, {X: 0.1, Y: -0.7}, {X: 1.5, Y: 0.4}, {X: -0.5, Y: -0.2}}
	)
	// Velocity is the curl of the stream function, u = dpsi/dy, v = -dpsi/dx
	curl := func(psi func(r2.Vec) float64, pt r2.Vec) r2.Vec {
		return r2.Vec{
			X: (psi(r2.Vec{X: pt.X, Y: pt.Y + h}) - psi(r2.Vec{X: pt.X, Y: pt.Y - h})) / (2 * h),
			Y: -(psi(r2.Vec{X: pt.X + h, Y: pt.Y}) - psi(r2.Vec{X: pt.X - h, Y: pt.Y})) / (2 * h),
		}
	}
	psiA := func(pt r2.Vec) float64 { pp, pm := p.LinearVortex(pt); return pp - pm }
	psiB := func(pt r2.Vec) float64 { pp, pm := p.LinearVortex(pt); return pp + pm }
	for _, pt := range pts {
		vA, vB := p.LinearVortexVelocity(pt)
		assertVecInDelta(t, curl(psiA, pt), vA, tol)
		assertVecInDelta(t, curl(psiB, pt), vB, tol)
		assertVecInDelta(t, r2.Add(vA, vB), p.UniformVortexVelocity(pt), 1.e-14)
		assertVecInDelta(t, curl(p.UniformSource, pt), p.UniformSourceVelocity(pt), tol)
	}
}

func TestPanelJumps(t *testing.T) {
	var (
		p   = NewPanel(0, 0, 1, r2.Vec{X: 1, Y: 0}, r2.Vec{X: 0, Y: 1})
		nL  = r2.Vec{X: -p.S.Y, Y: p.S.X}
		eps = 1.e-7
		mid = p.Midpoint()
	)
	left, right := r2.Add(mid, r2.Scale(eps, nL)), r2.Sub(mid, r2.Scale(eps, nL))
	// A unit source sheet pushes half the flux to each side
	assert.InDelta(t, 0.5, r2.Dot(p.UniformSourceVelocity(left), nL), 1.e-6)
	assert.InDelta(t, -0.5, r2.Dot(p.UniformSourceVelocity(right), nL), 1.e-6)
	// A unit vortex sheet has a unit jump in tangential velocity
	jump := r2.Sub(p.UniformVortexVelocity(left), p.UniformVortexVelocity(right))
	assert.InDelta(t, 1., r2.Dot(jump, p.S), 1.e-6)
	assert.InDelta(t, 0., r2.Dot(jump, nL), 1.e-6)
	// Outward normal of a counter clockwise contour
	assertVecInDelta(t, r2.Vec{X: p.S.Y, Y: -p.S.X}, p.Normal(), 0)
}

func TestNullPanel(t *testing.T) {
	p := NewPanel(3, 4, 5, r2.Vec{X: 1}, r2.Vec{X: 1})
	assert.True(t, p.IsNull())
	pp, pm := p.LinearVortex(r2.Vec{X: 0.5, Y: 0.5})
	assert.Equal(t, 0., pp)
	assert.Equal(t, 0., pm)
	assert.Equal(t, 0., p.UniformSource(r2.Vec{X: 0.5}))
	assert.Equal(t, r2.Vec{}, p.UniformSourceVelocity(r2.Vec{X: 0.5}))
}

func TestNodeOnPanel(t *testing.T) {
	// Self influence at the end nodes is finite
	p := NewPanel(0, 0, 1, r2.Vec{}, r2.Vec{X: 0.1})
	for _, pt := range []r2.Vec{p.A, p.B} {
		pp, pm := p.LinearVortex(pt)
		assert.False(t, isBad(pp) || isBad(pm))
		assert.False(t, isBad(p.UniformSource(pt)))
	}
	n := NewNode(r2.Vec{}, r2.Vec{Y: 1}, 0)
	// Tangent is the normal rotated clockwise
	assert.Equal(t, r2.Vec{X: 1}, n.Tangent)
}

func isBad(x float64) bool { return x != x || x > 1.e300 || x < -1.e300 }

func assertVecInDelta(t *testing.T, expected, actual r2.Vec, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta)
	assert.InDelta(t, expected.Y, actual.Y, delta)
}
