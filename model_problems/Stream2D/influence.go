package Stream2D

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/stream2d/utils"
)

// AssembleVortexMatrix returns the (N+1)x(N+1) stream function influence matrix.
// Columns 0..N-1 are the node circulations, column N is the body stream
// function. Row N is the Kutta condition.
func (s *Stream2D) AssembleVortexMatrix() (A utils.Matrix, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.built() {
		err = ErrNoModel
		return
	}
	A = s.assembleVortexMatrix()
	return
}

func (s *Stream2D) assembleVortexMatrix() (A utils.Matrix) {
	var (
		N = s.nNodes
	)
	A = utils.NewMatrix(N+1, N+1)
	for i := 0; i < N; i++ {
		pt := s.nodes[i].Pos
		for j := 0; j < N-1; j++ {
			psiP, psiM := s.panels[j].LinearVortex(pt)
			A.Increment(i, j, psiP-psiM)
			A.Increment(i, j+1, psiP+psiM)
		}
		if !s.sharpTE {
			// Trailing edge panel strength is proportional to gamma[0]-gamma[N-1]
			c := s.teCoefficient(pt)
			A.Increment(i, 0, c)
			A.Increment(i, N-1, -c)
		}
		A.Set(i, N, -1)
	}
	if s.sharpTE {
		// Coincident end nodes give duplicate rows, match the second difference of
		// gamma on both sides of the trailing edge instead
		row := make([]float64, N+1)
		for _, c := range []struct {
			j   int
			val float64
		}{{0, 1}, {1, -2}, {2, 1}, {N - 3, -1}, {N - 2, 2}, {N - 1, -1}} {
			row[c.j] += c.val
		}
		A.SetRow(N-1, row)
	}
	A.Set(N, 0, 1)
	A.Set(N, N-1, 1)
	return
}

func (s *Stream2D) teCoefficient(pt r2.Vec) float64 {
	psiSig := s.tePanel.UniformSource(pt)
	psiP, _ := s.tePanel.LinearVortex(pt)
	return 0.5*s.sigTE*psiSig - 0.5*s.gamTE*psiP
}

// teVelocity is the velocity at pt of the blunt trailing edge panel per unit gamma[0]-gamma[N-1]
func (s *Stream2D) teVelocity(pt r2.Vec) r2.Vec {
	return r2.Add(
		r2.Scale(0.5*s.sigTE, s.tePanel.UniformSourceVelocity(pt)),
		r2.Scale(-0.25*s.gamTE, s.tePanel.UniformVortexVelocity(pt)),
	)
}

// AssembleSourceMatrix returns the (N+1)xNPanels stream function influence of
// unit source density on every panel, zero on the Kutta row, on the sharp
// trailing edge row and on the link panel column.
func (s *Stream2D) AssembleSourceMatrix() (B utils.Matrix, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.built() {
		err = ErrNoModel
		return
	}
	B = s.assembleSourceMatrix()
	return
}

func (s *Stream2D) assembleSourceMatrix() (B utils.Matrix) {
	var (
		N       = s.nNodes
		nPanels = len(s.panels)
		nRows   = N
	)
	B = utils.NewMatrix(N+1, nPanels)
	if s.sharpTE {
		nRows = N - 1
	}
	for i := 0; i < nRows; i++ {
		pt := s.nodes[i].Pos
		for j := 0; j < nPanels; j++ {
			if s.isLinkPanel(j) {
				continue
			}
			B.Set(i, j, s.panels[j].UniformSource(pt))
		}
	}
	return
}

func (s *Stream2D) isLinkPanel(j int) bool {
	return j == s.firstWakePanelIndex && j < len(s.panels)
}
