package Stream2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/stream2d/utils"
)

// GetVelocity returns the freestream plus the velocity induced at pt by the
// surface vorticity, the blunt trailing edge panel and optionally the panel sources
func (s *Stream2D) GetVelocity(alpha, qinf float64, pt r2.Vec, includeSources bool) r2.Vec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.built() {
		return r2.Vec{}
	}
	return s.velocity(alpha, qinf, pt, includeSources)
}

func (s *Stream2D) velocity(alpha, qinf float64, pt r2.Vec, includeSources bool) (v r2.Vec) {
	var (
		N = s.nNodes
	)
	v.X, v.Y = freestream(alpha, qinf)
	for j := 0; j < N-1; j++ {
		dA, dB := s.panels[j].LinearVortexVelocity(pt)
		v = r2.Add(v, r2.Add(r2.Scale(s.gamma(j), dA), r2.Scale(s.gamma(j+1), dB)))
	}
	if !s.sharpTE {
		v = r2.Add(v, r2.Scale(s.gamma(0)-s.gamma(N-1), s.teVelocity(pt)))
	}
	if includeSources {
		for j, p := range s.panels {
			if s.srcStrength[j] != 0 {
				v = r2.Add(v, r2.Scale(s.srcStrength[j], p.UniformSourceVelocity(pt)))
			}
		}
	}
	return
}

// StreamValue is the total stream function at pt, sources included
func (s *Stream2D) StreamValue(alpha, qinf float64, pt r2.Vec) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.built() {
		return 0
	}
	return s.streamValue(alpha, qinf, pt)
}

func (s *Stream2D) streamValue(alpha, qinf float64, pt r2.Vec) (psi float64) {
	var (
		N      = s.nNodes
		vx, vy = freestream(alpha, qinf)
	)
	psi = vx*pt.Y - vy*pt.X
	for j := 0; j < N-1; j++ {
		psiP, psiM := s.panels[j].LinearVortex(pt)
		psi += (psiP-psiM)*s.gamma(j) + (psiP+psiM)*s.gamma(j+1)
	}
	if !s.sharpTE {
		psi += s.teCoefficient(pt) * (s.gamma(0) - s.gamma(N-1))
	}
	for j, p := range s.panels {
		if s.srcStrength[j] != 0 {
			psi += s.srcStrength[j] * p.UniformSource(pt)
		}
	}
	return
}

// SurfaceVelocity is the velocity just off node i projected on the node tangent
func (s *Stream2D) SurfaceVelocity(alpha, qinf float64, i int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= s.nNodes {
		return 0
	}
	return s.surfaceVelocity(alpha, qinf, i)
}

func (s *Stream2D) surfaceVelocity(alpha, qinf float64, i int) float64 {
	n := s.nodes[i]
	v := s.velocity(alpha, qinf, s.offsetPoint(i), true)
	return r2.Dot(v, n.Tangent)
}

func (s *Stream2D) offsetPoint(i int) r2.Vec {
	n := s.nodes[i]
	return r2.Add(n.Pos, r2.Scale(s.offsetDistance(i), n.Normal))
}

// offsetDistance scales the sampling step with the adjacent panel lengths, a
// fixed step either sits in the vertex log singularity or overshoots the sheet
func (s *Stream2D) offsetDistance(i int) float64 {
	var (
		sum float64
		cnt int
	)
	if i > 0 {
		sum += s.panels[i-1].Length
		cnt++
	}
	if i < s.nNodes-1 {
		sum += s.panels[i].Length
		cnt++
	}
	return s.cfg.SurfaceOffset * sum / float64(cnt)
}

// Cpv is the pressure coefficient just off node i
func (s *Stream2D) Cpv(alpha, qinf float64, i int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= s.nNodes || qinf == 0 {
		return 0
	}
	return s.cpv(alpha, qinf, i)
}

func (s *Stream2D) cpv(alpha, qinf float64, i int) float64 {
	v := s.velocity(alpha, qinf, s.offsetPoint(i), true)
	return 1 - r2.Norm2(v)/(qinf*qinf)
}

// CpDistribution returns the node abscissa and pressure coefficient around the section
func (s *Stream2D) CpDistribution(alpha, qinf float64) (x, cp []float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.built() || qinf == 0 {
		return
	}
	x, cp = make([]float64, s.nNodes), make([]float64, s.nNodes)
	utils.ParallelRange(s.nNodes, func(kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			x[i] = s.nodes[i].Pos.X
			cp[i] = s.cpv(alpha, qinf, i)
		}
	})
	return
}

// EdgeVelocities returns the magnitude of the surface velocity at each node,
// the edge velocity a boundary layer solver consumes
func (s *Stream2D) EdgeVelocities(alpha, qinf float64) (ue []float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.built() {
		return
	}
	ue = make([]float64, s.nNodes)
	for i := range ue {
		ue[i] = math.Abs(s.surfaceVelocity(alpha, qinf, i))
	}
	return
}

// StreamResiduals returns the stream function at each airfoil node less the
// body stream function of the linear solution, zero for a converged state
func (s *Stream2D) StreamResiduals(alpha, qinf float64) (res []float64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasLinearSolution {
		err = ErrNoLinearSolution
		return
	}
	a := alpha * math.Pi / 180.
	psiBody := qinf*(s.psi0*math.Cos(a)+s.psi90*math.Sin(a)) + s.psiSrc
	res = make([]float64, s.nNodes)
	for i := range res {
		res[i] = s.streamValue(alpha, qinf, s.nodes[i].Pos) - psiBody
	}
	return
}

// Coefficients holds the pressure integrated section forces, the moment is
// about the quarter chord and positive nose up
type Coefficients struct {
	Cl, Cd, Cm float64
	XCP        float64
	ClGamma    float64 // Kutta-Joukowski lift from the total circulation
}

func (s *Stream2D) Coefficients(alpha, qinf float64) (c Coefficients, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasLinearSolution {
		err = ErrNoLinearSolution
		return
	}
	if qinf == 0 {
		return
	}
	var (
		N       = s.nNodes
		chord   = s.foil.Chord()
		xMin, _ = s.foil.Bounds()
		ref     = r2.Vec{X: xMin + 0.25*chord}
		cp      = make([]float64, N)
		sa, ca  = math.Sincos(alpha * math.Pi / 180.)
	)
	var (
		force        r2.Vec
		moment, circ float64
	)
	for i := range cp {
		cp[i] = s.cpv(alpha, qinf, i)
	}
	for j := 0; j < N-1; j++ {
		p := s.panels[j]
		if p.IsNull() {
			continue
		}
		cpMid := 0.5 * (cp[j] + cp[j+1])
		dF := r2.Scale(-cpMid*p.Length/chord, p.Normal())
		force = r2.Add(force, dF)
		r := r2.Scale(1/chord, r2.Sub(p.Midpoint(), ref))
		moment -= r2.Cross(r, dF)
		circ += 0.5 * (s.gamma(j) + s.gamma(j+1)) * p.Length
	}
	c.Cl = -force.X*sa + force.Y*ca
	c.Cd = force.X*ca + force.Y*sa
	c.Cm = moment
	c.ClGamma = 2 * circ / (qinf * chord)
	if math.Abs(c.Cl) > 1.e-9 {
		c.XCP = ref.X - c.Cm/c.Cl*chord
	}
	return
}
