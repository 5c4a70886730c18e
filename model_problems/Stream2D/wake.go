package Stream2D

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/stream2d/Panel2D"
)

// MakeWakePanels replaces the wake with a streamline marched from the trailing
// edge at angle of attack alpha (degrees). Marching stops past x = 1+WakeLength,
// before any node beyond xMax, or after MaxWakeNodes steps. A non positive xMax
// does not limit the wake.
func (s *Stream2D) MakeWakePanels(alpha, qinf, xMax float64) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.makeWakePanels(alpha, qinf, xMax)
}

func (s *Stream2D) makeWakePanels(alpha, qinf, xMax float64) (err error) {
	if !s.built() {
		return ErrNoModel
	}
	if !s.hasLinearSolution {
		return ErrNoLinearSolution
	}
	var (
		N      = s.nNodes
		cfg    = s.cfg
		xEnd   = 1 + cfg.WakeLength
		bis    = s.foil.TEBisector()
		start  = r2.Add(s.foil.TEMidpoint(), r2.Scale(cfg.WakeStartOffset, bis))
		dir    = bis
		pt     = start
		length = cfg.FirstWakePanelLength
	)
	var marched []r2.Vec
	if xMax <= 0 {
		xMax = math.Inf(1)
	}
	if cfg.AdjustFirstWakePanel {
		length = 0.5 * (s.panels[0].Length + s.panels[N-2].Length)
	}
	s.superpose(alpha, qinf)

	s.wakeTruncated = false
	for pt.X < xEnd {
		if len(marched) >= cfg.MaxWakeNodes {
			s.wakeTruncated = true
			break
		}
		if v := s.velocity(alpha, qinf, pt, false); r2.Norm(v) > Panel2D.LengthPrecision {
			dir = r2.Unit(v)
		}
		next := r2.Add(pt, r2.Scale(length, dir))
		if next.X > xMax {
			break
		}
		marched = append(marched, next)
		pt = next
		length *= cfg.WakeProgressionFactor
	}

	s.nodes = s.nodes[:N]
	s.panels = s.panels[:N-1]
	if len(marched) != 0 {
		startNode := Panel2D.NewNode(start, r2.Vec{X: -bis.Y, Y: bis.X}, Panel2D.NoIndex)
		startNode.IsWakeNode = true
		s.nodes = append(s.nodes, startNode)
		prev := start
		for _, p := range marched {
			d := r2.Unit(r2.Sub(p, prev))
			n := Panel2D.NewNode(p, r2.Vec{X: -d.Y, Y: d.X}, len(s.nodes))
			n.IsWakeNode = true
			s.nodes = append(s.nodes, n)
			prev = p
		}
		for k := N; k < len(s.nodes)-1; k++ {
			p := Panel2D.NewPanel(len(s.panels), k, k+1, s.nodes[k].Pos, s.nodes[k+1].Pos)
			p.IsWakePanel = true
			s.panels = append(s.panels, p)
		}
	}
	src := make([]float64, len(s.panels))
	copy(src, s.srcStrength[:N-1])
	s.srcStrength = src
	s.bpijValid = false

	fields := log.Fields{
		"alpha":      alpha,
		"wakeNodes":  len(marched),
		"wakePanels": s.nWakePanels(),
	}
	if s.wakeTruncated {
		log.WithFields(fields).Warn("wake truncated at the node limit")
	} else {
		log.WithFields(fields).Debug("wake built")
	}
	return
}

// superpose forms the inviscid circulation for alpha without touching the source terms
func (s *Stream2D) superpose(alpha, qinf float64) {
	a := alpha * math.Pi / 180.
	for i := range s.gammaInv {
		s.gammaInv[i] = qinf * (s.gam0[i]*math.Cos(a) + s.gam90[i]*math.Sin(a))
	}
}

// nWakeNodes counts the marched wake nodes, the synthetic start node excluded
func (s *Stream2D) nWakeNodes() int {
	if n := len(s.nodes) - s.nNodes - 1; n > 0 {
		return n
	}
	return 0
}

func (s *Stream2D) nWakePanels() int { return len(s.panels) - s.firstWakePanelIndex }

func (s *Stream2D) NWakeNodes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nWakeNodes()
}

// NWakePanels counts the wake panels including the link panel
func (s *Stream2D) NWakePanels() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nWakePanels()
}

// FirstWakePanelIndex is the panel arena position of the link panel
func (s *Stream2D) FirstWakePanelIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.firstWakePanelIndex
}

func (s *Stream2D) WakeTruncated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wakeTruncated
}

// WakeNodes returns the synthetic start node followed by the marched nodes
func (s *Stream2D) WakeNodes() (wn []Panel2D.Node) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.nodes) > s.nNodes {
		wn = append(wn, s.nodes[s.nNodes:]...)
	}
	return
}
