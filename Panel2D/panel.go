package Panel2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// NoIndex marks a node that carries no circulation or source unknown
	NoIndex = -1
	// LengthPrecision is the smallest panel length and normal offset treated as non zero
	LengthPrecision = 1.e-9
)

const (
	oneOver2Pi = 1. / (2 * math.Pi)
	oneOver4Pi = 1. / (4 * math.Pi)
)

type Node struct {
	Pos           r2.Vec
	Normal        r2.Vec // Unit outward normal
	Tangent       r2.Vec // Normal rotated clockwise, the direction of positive circulation
	Index         int
	IsAirfoilNode bool
	IsWakeNode    bool
}

func NewNode(pos, normal r2.Vec, index int) (n Node) {
	n = Node{
		Pos:     pos,
		Normal:  normal,
		Tangent: r2.Vec{X: normal.Y, Y: -normal.X},
		Index:   index,
	}
	return
}

type Panel struct {
	Index          int
	NodeA, NodeB   int // Positions in the node arena
	A, B           r2.Vec
	S              r2.Vec // Unit direction from A to B
	Length         float64
	IsAirfoilPanel bool
	IsWakePanel    bool
}

func NewPanel(index, nodeA, nodeB int, a, b r2.Vec) (p Panel) {
	p = Panel{
		Index: index,
		NodeA: nodeA,
		NodeB: nodeB,
		A:     a,
		B:     b,
	}
	d := r2.Sub(b, a)
	p.Length = r2.Norm(d)
	if p.Length > LengthPrecision {
		p.S = r2.Scale(1./p.Length, d)
	}
	return
}

func (p Panel) IsNull() bool { return p.Length <= LengthPrecision }

// Normal is the outward normal for a counter clockwise contour
func (p Panel) Normal() r2.Vec { return r2.Vec{X: p.S.Y, Y: -p.S.X} }

func (p Panel) Midpoint() r2.Vec { return r2.Scale(0.5, r2.Add(p.A, p.B)) }

// localFrame holds the geometry of a field point relative to the panel, x
// along the panel from A, y to the left of it
type localFrame struct {
	x1, x2, y      float64
	r1s, r2s       float64
	lnr1, lnr2     float64
	theta1, theta2 float64
}

func (p Panel) frame(pt r2.Vec) (f localFrame) {
	d := r2.Sub(pt, p.A)
	f.x1 = r2.Dot(d, p.S)
	f.x2 = f.x1 - p.Length
	f.y = r2.Cross(p.S, d)
	if math.Abs(f.y) < LengthPrecision {
		f.y = 0
	}
	f.r1s = f.x1*f.x1 + f.y*f.y
	f.r2s = f.x2*f.x2 + f.y*f.y
	f.lnr1, f.lnr2 = logR(f.r1s), logR(f.r2s)
	f.theta1, f.theta2 = angle(f.y, f.x1), angle(f.y, f.x2)
	return
}

// angle returns the polar angle in [0,2pi), placing the branch cut downstream along the panel axis
func angle(y, x float64) (th float64) {
	th = math.Atan2(y, x)
	if th < 0 {
		th += 2 * math.Pi
	}
	return
}

func logR(rs float64) float64 {
	if rs < LengthPrecision*LengthPrecision {
		return 0
	}
	return 0.5 * math.Log(rs)
}

// LinearVortex returns the stream function at pt induced by a vortex density
// varying linearly along the panel. The coefficient of the circulation at A
// is psiP-psiM and at B is psiP+psiM.
func (p Panel) LinearVortex(pt r2.Vec) (psiP, psiM float64) {
	if p.IsNull() {
		return
	}
	f := p.frame(pt)
	psis := f.x1*f.lnr1 - f.x2*f.lnr2 - (f.x1 - f.x2) + f.y*(f.theta2-f.theta1)
	psid := ((f.x1+f.x2)*psis + f.r2s*f.lnr2 - f.r1s*f.lnr1 + 0.5*(f.x1*f.x1-f.x2*f.x2)) / (f.x1 - f.x2)
	psiP, psiM = psis*oneOver4Pi, psid*oneOver4Pi
	return
}

// LinearVortexVelocity returns the velocity at pt per unit circulation at A and at B
func (p Panel) LinearVortexVelocity(pt r2.Vec) (dVdgA, dVdgB r2.Vec) {
	if p.IsNull() {
		return
	}
	var (
		f  = p.frame(pt)
		L  = p.Length
		cu = f.theta2 - f.theta1
		cv = f.lnr2 - f.lnr1
		lu = f.x1*cu + f.y*cv
		lv = f.x1*cv + L - f.y*cu
	)
	dVdgA = p.toGlobal(oneOver2Pi*(cu-lu/L), oneOver2Pi*(cv-lv/L))
	dVdgB = p.toGlobal(oneOver2Pi*lu/L, oneOver2Pi*lv/L)
	return
}

// UniformVortexVelocity is the velocity at pt of a unit constant vortex density
func (p Panel) UniformVortexVelocity(pt r2.Vec) r2.Vec {
	if p.IsNull() {
		return r2.Vec{}
	}
	f := p.frame(pt)
	return p.toGlobal(oneOver2Pi*(f.theta2-f.theta1), oneOver2Pi*(f.lnr2-f.lnr1))
}

// UniformSource returns the stream function at pt of a unit constant source density
func (p Panel) UniformSource(pt r2.Vec) (psi float64) {
	if p.IsNull() {
		return
	}
	f := p.frame(pt)
	psi = oneOver2Pi * (f.x1*f.theta1 - f.x2*f.theta2 + f.y*(f.lnr1-f.lnr2))
	return
}

func (p Panel) UniformSourceVelocity(pt r2.Vec) r2.Vec {
	if p.IsNull() {
		return r2.Vec{}
	}
	f := p.frame(pt)
	return p.toGlobal(oneOver2Pi*(f.lnr1-f.lnr2), oneOver2Pi*(f.theta2-f.theta1))
}

func (p Panel) toGlobal(u, v float64) r2.Vec {
	nL := r2.Vec{X: -p.S.Y, Y: p.S.X}
	return r2.Add(r2.Scale(u, p.S), r2.Scale(v, nL))
}
