package Stream2D

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/stream2d/Panel2D"
	"github.com/notargets/stream2d/geometry2D"
	"github.com/notargets/stream2d/utils"
)

/*
Stream2D is a linear vorticity stream function panel model of an airfoil section.

The node arena holds the N airfoil nodes followed by the wake nodes, the first
wake node being the synthetic start node at the trailing edge. The panel arena
holds the N-1 airfoil panels, then the link panel joining the synthetic start
node to the first marched wake node, then the wake panels.

Rebuilds take the write lock, queries the read lock. Unexported methods assume
the caller holds the lock.
*/
type Stream2D struct {
	mu  sync.RWMutex
	cfg Config

	foil    *geometry2D.Foil
	nodes   []Panel2D.Node
	panels  []Panel2D.Panel
	tePanel Panel2D.Panel
	nNodes  int
	sharpTE bool
	sigTE   float64
	gamTE   float64
	matSize int

	aij, aijInv utils.Matrix // Assembled and inverted vortex influence
	bij, bpij   utils.Matrix // Source influence and source to circulation operator
	bpijValid   bool

	gam0, gam90         []float64 // Unit freestream bases at 0 and 90 degrees
	psi0, psi90         float64   // Body stream function of each basis
	psiSrc              float64   // Body stream function induced by the sources
	gammaInv, gammaSrc  []float64
	srcStrength         []float64 // One per panel, airfoil then link then wake
	dstar               []float64 // One per airfoil node
	hasLinearSolution   bool
	wakeTruncated       bool
	firstWakePanelIndex int
}

func NewStream2D(cfg Config) (s *Stream2D) {
	s = &Stream2D{
		cfg: cfg.withDefaults(),
	}
	return
}

func (s *Stream2D) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Stream2D) SetConfig(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg.withDefaults()
}

// SetFoil rebuilds the panel model. A nil or degenerate foil leaves the current model untouched.
// A foil without one normal per node is replaced by a copy with computed normals.
func (s *Stream2D) SetFoil(f *geometry2D.Foil) (err error) {
	if f == nil || f.N() < 3 {
		return ErrDegenerateFoil
	}
	if len(f.Normals) != f.N() {
		if f, err = geometry2D.NewFoil(f.Name, f.Nodes); err != nil {
			return ErrDegenerateFoil
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		N = f.N()
	)
	s.foil = f
	s.nNodes = N
	s.matSize = N + 1
	s.sharpTE = f.IsSharpTE()
	s.nodes = make([]Panel2D.Node, N)
	for i := 0; i < N; i++ {
		s.nodes[i] = Panel2D.NewNode(f.Nodes[i], f.Normals[i], i)
		s.nodes[i].IsAirfoilNode = true
	}
	s.panels = make([]Panel2D.Panel, N-1)
	for i := 0; i < N-1; i++ {
		s.panels[i] = Panel2D.NewPanel(i, i, i+1, f.Nodes[i], f.Nodes[i+1])
		s.panels[i].IsAirfoilPanel = true
	}
	s.sigTE, s.gamTE = 0, 0
	s.tePanel = Panel2D.Panel{Index: Panel2D.NoIndex}
	if !s.sharpTE {
		s.tePanel = Panel2D.NewPanel(Panel2D.NoIndex, N-1, 0, f.Nodes[N-1], f.Nodes[0])
		bis := f.TEBisector()
		s.sigTE = r2.Cross(bis, s.tePanel.S)
		s.gamTE = r2.Dot(bis, s.tePanel.S)
	}
	s.firstWakePanelIndex = len(s.panels)
	s.gam0 = make([]float64, N)
	s.gam90 = make([]float64, N)
	s.gammaInv = make([]float64, N)
	s.gammaSrc = make([]float64, N)
	s.dstar = make([]float64, N)
	s.srcStrength = make([]float64, len(s.panels))
	s.psi0, s.psi90, s.psiSrc = 0, 0, 0
	s.aij, s.aijInv, s.bij, s.bpij = utils.Matrix{}, utils.Matrix{}, utils.Matrix{}, utils.Matrix{}
	s.bpijValid = false
	s.hasLinearSolution = false
	s.wakeTruncated = false
	log.WithFields(log.Fields{
		"foil":    f.Name,
		"nodes":   N,
		"sharpTE": s.sharpTE,
	}).Debug("panel model built")
	return
}

func (s *Stream2D) built() bool { return s.nNodes >= 3 }

func (s *Stream2D) Foil() *geometry2D.Foil {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.foil
}

func (s *Stream2D) NNodes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nNodes
}

func (s *Stream2D) NPanels() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.panels)
}

func (s *Stream2D) MatSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matSize
}

func (s *Stream2D) IsSharpTE() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sharpTE
}

// TEWeights returns the source and vortex weights of the blunt trailing edge panel
func (s *Stream2D) TEWeights() (sigTE, gamTE float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sigTE, s.gamTE
}

func (s *Stream2D) Node(i int) Panel2D.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[i]
}

func (s *Stream2D) Panel(i int) Panel2D.Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.panels[i]
}

func (s *Stream2D) HasLinearSolution() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasLinearSolution
}

func (s *Stream2D) Gamma0() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.gam0...)
}

func (s *Stream2D) Gamma90() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.gam90...)
}

func (s *Stream2D) GammaInv() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.gammaInv...)
}

func (s *Stream2D) GammaSrc() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.gammaSrc...)
}

// Gamma is the total circulation density at airfoil node i
func (s *Stream2D) Gamma(i int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gamma(i)
}

func (s *Stream2D) gamma(i int) float64 {
	if i < 0 || i >= s.nNodes {
		return 0
	}
	return s.gammaInv[i] + s.gammaSrc[i]
}
