package Stream2D

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/stream2d/utils"
)

// VelocityField evaluates GetVelocity over pts on all CPUs under a single read lock
func (s *Stream2D) VelocityField(alpha, qinf float64, pts []r2.Vec, includeSources bool) (vel []r2.Vec) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vel = make([]r2.Vec, len(pts))
	if !s.built() {
		return
	}
	utils.ParallelRange(len(pts), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			vel[k] = s.velocity(alpha, qinf, pts[k], includeSources)
		}
	})
	return
}

func (s *Stream2D) StreamField(alpha, qinf float64, pts []r2.Vec) (psi []float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	psi = make([]float64, len(pts))
	if !s.built() {
		return
	}
	utils.ParallelRange(len(pts), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			psi[k] = s.streamValue(alpha, qinf, pts[k])
		}
	})
	return
}

// CpField is the pressure coefficient 1-|V|^2/qinf^2 at each point, sources included
func (s *Stream2D) CpField(alpha, qinf float64, pts []r2.Vec) (cp []float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp = make([]float64, len(pts))
	if !s.built() || qinf == 0 {
		return
	}
	utils.ParallelRange(len(pts), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			v := s.velocity(alpha, qinf, pts[k], true)
			cp[k] = 1 - r2.Norm2(v)/(qinf*qinf)
		}
	})
	return
}
