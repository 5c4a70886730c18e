package Stream2D

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/stream2d/Panel2D"
	"github.com/notargets/stream2d/geometry2D"
)

// BoundaryLayer supplies the displacement thickness and edge velocity that
// MakeSigma turns into panel sources
type BoundaryLayer interface {
	Displacement(ls LayerSurface) (in ViscousInput, err error)
}

// LayerSurface is the solved model as a boundary layer sees it. It is handed
// to Displacement while the model is locked and is only valid during that call.
type LayerSurface struct {
	s           *Stream2D
	Alpha, Qinf float64
	ILE         int // First node past the stagnation point
}

func (ls LayerSurface) NNodes() int { return ls.s.nNodes }

func (ls LayerSurface) Node(i int) Panel2D.Node { return ls.s.nodes[i] }

// PanelLength is the length of the airfoil panel from node i to node i+1
func (ls LayerSurface) PanelLength(i int) float64 { return ls.s.panels[i].Length }

func (ls LayerSurface) KinematicViscosity() float64 { return ls.s.cfg.KinematicViscosity }

// EdgeVelocity is the tangential speed a distance h off node i, beyond the
// surface sampling step. Panel sources are left out.
func (ls LayerSurface) EdgeVelocity(i int, h float64) float64 {
	var (
		s = ls.s
		n = s.nodes[i]
	)
	pt := r2.Add(n.Pos, r2.Scale(h+s.offsetDistance(i), n.Normal))
	return math.Abs(r2.Dot(s.velocity(ls.Alpha, ls.Qinf, pt, false), n.Tangent))
}

// ExternalLayer passes through the state of a boundary layer solved elsewhere
type ExternalLayer struct {
	Input ViscousInput
}

func (el ExternalLayer) Displacement(_ LayerSurface) (ViscousInput, error) {
	return el.Input, nil
}

// BlasiusLayer estimates a laminar flat plate displacement thickness from the
// arc length to the stagnation point, scaled by Coef
type BlasiusLayer struct {
	Coef float64
}

func (bl BlasiusLayer) Displacement(ls LayerSurface) (in ViscousInput, err error) {
	if ls.s == nil || ls.ILE < 1 {
		err = ErrDegenerateLeadingEdge
		return
	}
	var (
		N   = ls.NNodes()
		iLE = ls.ILE
		nu  = ls.KinematicViscosity()
	)
	arc := make([]float64, N)
	half := 0.5 * ls.PanelLength(iLE-1)
	arc[iLE-1] = half
	for i := iLE - 2; i >= 0; i-- {
		arc[i] = arc[i+1] + ls.PanelLength(i)
	}
	arc[iLE] = half
	for i := iLE + 1; i < N; i++ {
		arc[i] = arc[i-1] + ls.PanelLength(i-1)
	}
	in.DStar = make([]float64, N)
	in.Ue = make([]float64, N)
	for i := 0; i < N; i++ {
		l := arc[i]
		if re := l * math.Abs(ls.Qinf) / nu; re > 0 {
			in.DStar[i] = 1.721 * l / math.Sqrt(re) * bl.Coef
		}
		in.Ue[i] = ls.EdgeVelocity(i, in.DStar[i])
	}
	return
}

// ApplyBoundaryLayer solves for alpha, injects the sources of bl and updates
// the circulation. A nil layer resets to the inviscid solution. Without a
// stagnation point the sources are left unchanged and ErrDegenerateLeadingEdge
// is returned. The model stays locked for the whole sequence.
func (s *Stream2D) ApplyBoundaryLayer(bl BoundaryLayer, alpha, qinf float64) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyBoundaryLayer(bl, alpha, qinf)
}

func (s *Stream2D) applyBoundaryLayer(bl BoundaryLayer, alpha, qinf float64) (err error) {
	if bl == nil {
		s.resetViscousSolution()
		return s.calcSolution(alpha, qinf)
	}
	if err = s.calcSolution(alpha, qinf); err != nil {
		return
	}
	iLE := s.getLEIndex()
	if iLE < 1 {
		log.WithFields(log.Fields{
			"alpha": alpha,
		}).Warn("no stagnation point, boundary layer sources not applied")
		return ErrDegenerateLeadingEdge
	}
	var in ViscousInput
	if in, err = bl.Displacement(LayerSurface{s: s, Alpha: alpha, Qinf: qinf, ILE: iLE}); err != nil {
		return
	}
	if err = s.makeSigma(in, iLE); err != nil {
		return
	}
	return s.calcSolution(alpha, qinf)
}

// MakeBlasiusSigma applies a BlasiusLayer and optionally returns the section
// thickened by the displacement thickness
func (s *Stream2D) MakeBlasiusSigma(alpha, qinf, coef float64, makeFoil bool) (virtual *geometry2D.Foil, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err = s.applyBoundaryLayer(BlasiusLayer{Coef: coef}, alpha, qinf); err != nil {
		return
	}
	if !makeFoil {
		return
	}
	if virtual, err = s.foil.Offset(s.foil.Name+" displaced", s.dstar); err != nil {
		err = fmt.Errorf("building displaced foil: %w", err)
	}
	return
}
