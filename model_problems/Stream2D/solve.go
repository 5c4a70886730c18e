package Stream2D

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/stream2d/utils"
)

// Solve assembles and inverts the vortex influence matrix, then computes the
// unit freestream circulation bases at 0 and 90 degrees and the source to
// circulation operator. The inverse and the bases are reused by every
// CalcSolution until the geometry changes.
func (s *Stream2D) Solve() (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.solve()
}

func (s *Stream2D) solve() (err error) {
	if !s.built() {
		return ErrNoModel
	}
	var (
		N = s.nNodes
	)
	s.aij = s.assembleVortexMatrix()
	s.aij.SetReadOnly("Aij")
	cond := s.aij.ConditionNumber()
	if math.IsInf(cond, 0) || math.IsNaN(cond) || cond > s.cfg.MaxConditionNumber {
		s.failLinearSolution(cond)
		return ErrSingularSystem
	}
	if s.aijInv, err = s.aij.Inverse(); err != nil {
		s.failLinearSolution(cond)
		return ErrSingularSystem
	}
	s.aijInv.SetReadOnly("AijInv")
	sol0 := s.aijInv.MulVec(s.makeRHS(0, 1))
	sol90 := s.aijInv.MulVec(s.makeRHS(90, 1))
	if utils.IsNan(sol0) || utils.IsNan(sol90) {
		s.failLinearSolution(cond)
		return ErrSingularSystem
	}
	copy(s.gam0, sol0[:N])
	copy(s.gam90, sol90[:N])
	s.psi0, s.psi90 = sol0[N], sol90[N]
	s.hasLinearSolution = true
	log.WithFields(log.Fields{
		"nodes":     N,
		"condition": cond,
	}).Debug("influence matrix inverted")
	return s.makeBpij()
}

func (s *Stream2D) failLinearSolution(cond float64) {
	sMin, sMax := s.aij.SingularValues()
	log.WithFields(log.Fields{
		"condition":       cond,
		"singularValueLo": sMin,
		"singularValueHi": sMax,
	}).Warn("influence matrix is singular, circulation bases zeroed")
	for i := range s.gam0 {
		s.gam0[i], s.gam90[i], s.gammaInv[i], s.gammaSrc[i] = 0, 0, 0, 0
	}
	s.psi0, s.psi90, s.psiSrc = 0, 0, 0
	s.aijInv = s.aij.Copy()
	s.aijInv.Zero()
	s.bpijValid = false
	s.hasLinearSolution = false
}

// MakeRHS returns minus the freestream stream function at each airfoil node,
// with zero on the Kutta row and on the sharp trailing edge row
func (s *Stream2D) MakeRHS(alpha, qinf float64) (rhs []float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.built() {
		return
	}
	return s.makeRHS(alpha, qinf)
}

func (s *Stream2D) makeRHS(alpha, qinf float64) (rhs []float64) {
	var (
		N      = s.nNodes
		vx, vy = freestream(alpha, qinf)
	)
	rhs = make([]float64, N+1)
	for i := 0; i < N; i++ {
		p := s.nodes[i].Pos
		rhs[i] = -vx*p.Y + vy*p.X
	}
	if s.sharpTE {
		rhs[N-1] = 0
	}
	return
}

func freestream(alpha, qinf float64) (vx, vy float64) {
	a := alpha * math.Pi / 180.
	return qinf * math.Cos(a), qinf * math.Sin(a)
}

// CalcSolution superposes the bases for the angle of attack alpha in degrees
// and adds the circulation induced by the current source strengths
func (s *Stream2D) CalcSolution(alpha, qinf float64) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calcSolution(alpha, qinf)
}

func (s *Stream2D) calcSolution(alpha, qinf float64) (err error) {
	if !s.built() {
		return ErrNoModel
	}
	if !s.hasLinearSolution {
		return ErrNoLinearSolution
	}
	s.superpose(alpha, qinf)
	if !s.bpijValid {
		if err = s.makeBpij(); err != nil {
			return
		}
	}
	gSrc := s.bpij.MulVec(s.srcStrength)
	copy(s.gammaSrc, gSrc[:s.nNodes])
	s.psiSrc = gSrc[s.nNodes]
	return
}

// ZeroLiftAngle returns the angle in degrees at which the circulation of the
// superposed bases vanishes
func (s *Stream2D) ZeroLiftAngle() (alpha0 float64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasLinearSolution {
		err = ErrNoLinearSolution
		return
	}
	var (
		n   = s.nNodes - 2
		ds  = make([]float64, n)
		g0  = make([]float64, n)
		g90 = make([]float64, n)
	)
	for i := 0; i < n; i++ {
		ds[i] = s.panels[i].Length + s.panels[i+1].Length
		g0[i], g90[i] = s.gam0[i+1], s.gam90[i+1]
	}
	lift0, lift90 := floats.Dot(ds, g0), floats.Dot(ds, g90)
	alpha0 = -math.Atan2(lift0, lift90) * 180. / math.Pi
	return
}
