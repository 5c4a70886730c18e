package Stream2D

import (
	log "github.com/sirupsen/logrus"
)

// MakeBpij rebuilds the source influence matrix B and the operator Bp = -(Aij^-1)B
// mapping panel source strengths to node circulations
func (s *Stream2D) MakeBpij() (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.makeBpij()
}

func (s *Stream2D) makeBpij() (err error) {
	if !s.built() {
		return ErrNoModel
	}
	if !s.hasLinearSolution {
		return ErrNoLinearSolution
	}
	s.bij = s.assembleSourceMatrix()
	s.bpij = s.aijInv.Mul(s.bij).Scale(-1)
	s.bpijValid = true
	return
}

// ViscousInput carries a boundary layer state, one entry per airfoil node and
// optionally one per marched wake node
type ViscousInput struct {
	DStar     []float64
	Ue        []float64
	WakeDStar []float64
	WakeUe    []float64
}

// MakeSigma converts the mass defect ue*dstar into panel source strengths by
// differencing it away from the stagnation point at iLE on both surfaces
func (s *Stream2D) MakeSigma(in ViscousInput, iLE int) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.makeSigma(in, iLE)
}

func (s *Stream2D) makeSigma(in ViscousInput, iLE int) (err error) {
	if !s.built() {
		return ErrNoModel
	}
	var (
		N      = s.nNodes
		nWakeN = s.nWakeNodes()
	)
	if iLE < 1 || iLE > N-1 {
		return ErrDegenerateLeadingEdge
	}
	if len(in.DStar) != N || len(in.Ue) != N {
		return ErrInputSize
	}
	hasWake := len(in.WakeDStar) != 0 || len(in.WakeUe) != 0
	if hasWake && (len(in.WakeDStar) != nWakeN || len(in.WakeUe) != nWakeN) {
		return ErrInputSize
	}
	md := make([]float64, N)
	for i := range md {
		md[i] = in.Ue[i] * in.DStar[i]
	}
	// Both marches start from zero defect at the stagnation node
	md[iLE] = 0
	for i := range s.srcStrength {
		s.srcStrength[i] = 0
	}
	// Upper surface, flow runs from the stagnation point toward node 0
	for i := iLE - 1; i >= 0; i-- {
		if p := s.panels[i]; !p.IsNull() {
			s.srcStrength[i] = (md[i] - md[i+1]) / p.Length
		}
	}
	// Lower surface
	for i := iLE; i < N-1; i++ {
		if p := s.panels[i]; !p.IsNull() {
			s.srcStrength[i] = (md[i+1] - md[i]) / p.Length
		}
	}
	if hasWake {
		wmd := make([]float64, nWakeN)
		for k := range wmd {
			wmd[k] = in.WakeUe[k] * in.WakeDStar[k]
		}
		// The link panel carries no source, wake panel k joins marched nodes k and k+1
		for k := 0; k < nWakeN-1; k++ {
			j := s.firstWakePanelIndex + 1 + k
			if p := s.panels[j]; !p.IsNull() {
				s.srcStrength[j] = (wmd[k+1] - wmd[k]) / p.Length
			}
		}
	}
	copy(s.dstar, in.DStar)
	return
}

// GetLEIndex returns the first node past the stagnation point, where the
// inviscid circulation turns negative, or -1 when there is no sign change
func (s *Stream2D) GetLEIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLEIndex()
}

func (s *Stream2D) getLEIndex() int {
	for i := 1; i < s.nNodes; i++ {
		if s.gammaInv[i] < -s.cfg.StagnationTolerance {
			return i
		}
	}
	return -1
}

// ResetViscousSolution clears the sources and the displacement thickness
func (s *Stream2D) ResetViscousSolution() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetViscousSolution()
}

func (s *Stream2D) resetViscousSolution() {
	for i := range s.srcStrength {
		s.srcStrength[i] = 0
	}
	for i := range s.dstar {
		s.dstar[i] = 0
		s.gammaSrc[i] = 0
	}
	s.psiSrc = 0
}

// SetAirfoilSourceStrengths sets one source density per airfoil panel
func (s *Stream2D) SetAirfoilSourceStrengths(src []float64) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.built() {
		return ErrNoModel
	}
	if len(src) != s.nNodes-1 {
		return ErrInputSize
	}
	copy(s.srcStrength, src)
	return
}

// SetWakeSourceStrengths sets one source density per wake panel, the entry of the link panel is ignored
func (s *Stream2D) SetWakeSourceStrengths(src []float64) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.built() {
		return ErrNoModel
	}
	if len(src) != s.nWakePanels() {
		return ErrInputSize
	}
	copy(s.srcStrength[s.firstWakePanelIndex:], src)
	if len(src) > 0 {
		s.srcStrength[s.firstWakePanelIndex] = 0
		log.WithField("wakePanels", len(src)).Debug("wake sources set")
	}
	return
}

func (s *Stream2D) SourceStrengths() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.srcStrength...)
}

func (s *Stream2D) DStar() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.dstar...)
}
