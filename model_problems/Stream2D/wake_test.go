package Stream2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/stream2d/Panel2D"
)

func TestWakeGeometry(t *testing.T) {
	for _, closed := range []bool{true, false} {
		s := newSolved(t, "0012", 40, closed)
		cfg := s.Config()
		require.Equal(t, 1.5, cfg.WakeLength)
		require.Equal(t, 1.1, cfg.WakeProgressionFactor)
		require.True(t, cfg.AdjustFirstWakePanel)
		require.NoError(t, s.CalcSolution(3, 1))
		require.NoError(t, s.MakeWakePanels(3, 1, 0))

		var (
			N      = s.NNodes()
			link   = s.FirstWakePanelIndex()
			nWake  = s.NWakeNodes()
			wnodes = s.WakeNodes()
		)
		assert.False(t, s.WakeTruncated())
		assert.True(t, nWake > 0 && nWake <= 100)
		assert.Equal(t, nWake+1, len(wnodes))
		assert.Equal(t, nWake, s.NWakePanels())
		assert.Equal(t, N-1+nWake, s.NPanels())
		assert.Equal(t, s.NPanels(), len(s.SourceStrengths()))

		// Synthetic start node carries no unknown
		start := wnodes[0]
		assert.Equal(t, Panel2D.NoIndex, start.Index)
		assert.True(t, start.IsWakeNode)
		assert.False(t, start.IsAirfoilNode)
		te := r2.Scale(0.5, r2.Add(s.Node(0).Pos, s.Node(N-1).Pos))
		assert.InDelta(t, cfg.WakeStartOffset, r2.Norm(r2.Sub(start.Pos, te)), 1.e-12)

		// First wake panel matches the trailing edge panels
		expected := 0.5 * (s.Panel(0).Length + s.Panel(N-2).Length)
		lp := s.Panel(link)
		assert.True(t, lp.IsWakePanel)
		assert.False(t, lp.IsAirfoilPanel)
		assert.InDelta(t, expected, lp.Length, 1.e-9)
		for k := link + 1; k < s.NPanels(); k++ {
			assert.InDelta(t, 1.1, s.Panel(k).Length/s.Panel(k-1).Length, 1.e-9)
			assert.True(t, s.Panel(k).IsWakePanel)
		}
		last := wnodes[len(wnodes)-1].Pos
		assert.True(t, last.X >= 1+cfg.WakeLength)
		prev := wnodes[len(wnodes)-2].Pos
		assert.True(t, prev.X < 1+cfg.WakeLength)
		for k := 1; k < len(wnodes); k++ {
			assert.True(t, wnodes[k].Pos.X > wnodes[k-1].Pos.X)
			assert.True(t, wnodes[k].IsWakeNode)
		}

		// Rebuilding replaces the wake rather than appending to it
		require.NoError(t, s.MakeWakePanels(3, 1, 0))
		assert.Equal(t, nWake, s.NWakeNodes())
		assert.Equal(t, N-1+nWake, s.NPanels())
	}
}

func TestWakeLimits(t *testing.T) {
	s := newSolved(t, "0012", 40, false)
	require.NoError(t, s.CalcSolution(0, 1))
	{ // Downstream bound
		require.NoError(t, s.MakeWakePanels(0, 1, 1.2))
		assert.False(t, s.WakeTruncated())
		for _, n := range s.WakeNodes() {
			assert.True(t, n.Pos.X <= 1.2)
		}
	}
	{ // Node cap
		cfg := s.Config()
		cfg.MaxWakeNodes = 5
		s.SetConfig(cfg)
		require.NoError(t, s.MakeWakePanels(0, 1, 0))
		assert.True(t, s.WakeTruncated())
		assert.Equal(t, 5, s.NWakeNodes())
		assert.True(t, s.WakeNodes()[5].Pos.X < 1+cfg.WakeLength)
	}
	{ // Fixed first panel
		cfg := DefaultConfig()
		cfg.AdjustFirstWakePanel = false
		cfg.FirstWakePanelLength = 0.02
		s.SetConfig(cfg)
		require.NoError(t, s.MakeWakePanels(0, 1, 0))
		assert.InDelta(t, 0.02, s.Panel(s.FirstWakePanelIndex()).Length, 1.e-12)
	}
	{ // Symmetric section at zero incidence sheds a straight wake
		for _, n := range s.WakeNodes() {
			assert.InDelta(t, 0., n.Pos.Y, 1.e-9)
		}
	}
	{ // No room for any node
		require.NoError(t, s.MakeWakePanels(0, 1, 0.5))
		assert.Equal(t, 0, s.NWakeNodes())
		assert.Equal(t, 0, s.NWakePanels())
		assert.Empty(t, s.WakeNodes())
		assert.Equal(t, s.NNodes()-1, len(s.SourceStrengths()))
	}
}

func TestWakeKeepsAirfoilSources(t *testing.T) {
	s := newSolved(t, "0012", 20, true)
	N := s.NNodes()
	src := make([]float64, N-1)
	for i := range src {
		src[i] = float64(i) * 1.e-3
	}
	require.NoError(t, s.SetAirfoilSourceStrengths(src))
	require.NoError(t, s.MakeWakePanels(2, 1, 0))
	all := s.SourceStrengths()
	assert.Equal(t, src, all[:N-1])
	for _, v := range all[N-1:] {
		assert.Equal(t, 0., v)
	}
	assert.Equal(t, ErrInputSize, s.SetWakeSourceStrengths([]float64{1}))
	wsrc := make([]float64, s.NWakePanels())
	for k := range wsrc {
		wsrc[k] = 1
	}
	require.NoError(t, s.SetWakeSourceStrengths(wsrc))
	all = s.SourceStrengths()
	assert.Equal(t, 0., all[s.FirstWakePanelIndex()])
	assert.Equal(t, 1., all[len(all)-1])
	assert.False(t, math.IsNaN(s.GetVelocity(2, 1, r2.Vec{X: 2, Y: 0.1}, true).X))
}
