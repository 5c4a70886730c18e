package Stream2D

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestGetLEIndex(t *testing.T) {
	s := newSolved(t, "0012", 40, true)
	// No circulation yet, so no sign change
	assert.Equal(t, -1, s.GetLEIndex())
	require.NoError(t, s.CalcSolution(4, 1))
	iLE := s.GetLEIndex()
	// Stagnation moves onto the lower surface at positive incidence
	assert.True(t, iLE > 40 && iLE < 50, "iLE = %d", iLE)
	g := s.GammaInv()
	for i := 1; i < iLE; i++ {
		assert.True(t, g[i] >= 0)
	}
}

func TestMakeSigma(t *testing.T) {
	s := newSolved(t, "0012", 20, false)
	require.NoError(t, s.CalcSolution(0, 1))
	require.NoError(t, s.MakeWakePanels(0, 1, 0))
	var (
		N     = s.NNodes()
		iLE   = 20
		nWake = s.NWakeNodes()
		in    = ViscousInput{
			DStar:     make([]float64, N),
			Ue:        make([]float64, N),
			WakeDStar: make([]float64, nWake),
			WakeUe:    make([]float64, nWake),
		}
	)
	for i := 0; i < N; i++ {
		in.DStar[i] = 1.e-3 * float64(absInt(i-iLE))
		in.Ue[i] = 1
	}
	for k := 0; k < nWake; k++ {
		in.WakeDStar[k] = 0.03 - 1.e-4*float64(k)
		in.WakeUe[k] = 1
	}
	require.NoError(t, s.MakeSigma(in, iLE))
	src := s.SourceStrengths()
	// Mass defect grows away from the stagnation point on both sides
	for i := 0; i < N-1; i++ {
		assert.InDelta(t, 1.e-3/s.Panel(i).Length, src[i], 1.e-9)
	}
	link := s.FirstWakePanelIndex()
	assert.Equal(t, 0., src[link])
	for j := link + 1; j < s.NPanels(); j++ {
		assert.InDelta(t, -1.e-4/s.Panel(j).Length, src[j], 1.e-9)
	}
	assert.Equal(t, in.DStar, s.DStar())

	assert.Equal(t, ErrDegenerateLeadingEdge, s.MakeSigma(in, -1))
	assert.Equal(t, ErrInputSize, s.MakeSigma(ViscousInput{DStar: []float64{1}, Ue: []float64{1}}, iLE))
	bad := in
	bad.WakeUe = bad.WakeUe[:1]
	assert.Equal(t, ErrInputSize, s.MakeSigma(bad, iLE))

	s.ResetViscousSolution()
	for _, v := range s.SourceStrengths() {
		assert.Equal(t, 0., v)
	}
	for _, v := range s.DStar() {
		assert.Equal(t, 0., v)
	}
}

func TestBlasiusSigma(t *testing.T) {
	s := newSolved(t, "0012", 40, true)
	virtual, err := s.MakeBlasiusSigma(2, 1, 1, true)
	require.NoError(t, err)
	require.NotNil(t, virtual)
	N := s.NNodes()
	assert.Equal(t, N, virtual.N())
	dstar := s.DStar()
	iLE := s.GetLEIndex()
	for i := 0; i < N; i++ {
		assert.True(t, dstar[i] > 0)
		disp := r2.Sub(virtual.Nodes[i], s.Node(i).Pos)
		assert.InDelta(t, dstar[i], r2.Norm(disp), 1.e-12)
	}
	// Thickness grows toward the trailing edge on both surfaces, about 1.721/sqrt(Re) at one chord
	assert.True(t, dstar[0] > dstar[iLE-5])
	assert.True(t, dstar[N-1] > dstar[iLE+5])
	assert.InDelta(t, 1.721*0.00316, dstar[0], 1.e-3)
	assert.True(t, maxAbs(s.GammaSrc()) > 0)
	assert.InDelta(t, 0., s.Gamma(0)+s.Gamma(N-1), 1.e-9)
	res, err := s.StreamResiduals(2, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0., maxAbs(res), 1.e-6)

	// A nil layer is the inviscid path
	require.NoError(t, s.ApplyBoundaryLayer(nil, 2, 1))
	for _, g := range s.GammaSrc() {
		assert.Equal(t, 0., g)
	}
}

func TestDegenerateLeadingEdge(t *testing.T) {
	s := newSolved(t, "0012", 20, false)
	N := s.NNodes()
	src := make([]float64, N-1)
	src[3] = 0.01
	require.NoError(t, s.SetAirfoilSourceStrengths(src))
	// No freestream, so no stagnation point to march from
	err := s.ApplyBoundaryLayer(BlasiusLayer{Coef: 1}, 0, 0)
	assert.Equal(t, ErrDegenerateLeadingEdge, err)
	assert.Equal(t, src, s.SourceStrengths()[:N-1])
	_, err = s.MakeBlasiusSigma(0, 0, 1, true)
	assert.Equal(t, ErrDegenerateLeadingEdge, err)

	// External layer of the wrong size is rejected after the stagnation point is found
	err = s.ApplyBoundaryLayer(ExternalLayer{Input: ViscousInput{DStar: []float64{1}}}, 3, 1)
	assert.Equal(t, ErrInputSize, err)
}

func TestMakeSigmaStagnationNode(t *testing.T) {
	s := newSolved(t, "0012", 20, false)
	require.NoError(t, s.CalcSolution(0, 1))
	var (
		N   = s.NNodes()
		iLE = 20
		in  = ViscousInput{DStar: make([]float64, N), Ue: make([]float64, N)}
	)
	for i := 0; i < N; i++ {
		in.DStar[i] = 1.e-3 * float64(1+absInt(i-iLE))
		in.Ue[i] = 1
	}
	// The defect at the stagnation node itself never enters the sources
	require.NoError(t, s.MakeSigma(in, iLE))
	src := s.SourceStrengths()
	assert.InDelta(t, in.DStar[iLE-1]/s.Panel(iLE-1).Length, src[iLE-1], 1.e-12)
	assert.InDelta(t, in.DStar[iLE+1]/s.Panel(iLE).Length, src[iLE], 1.e-12)
	in.DStar[iLE] = 0.5
	require.NoError(t, s.MakeSigma(in, iLE))
	assert.Equal(t, src, s.SourceStrengths())
}

func TestLayerSurfaceEdgeVelocity(t *testing.T) {
	s := newSolved(t, "0012", 40, true)
	alpha, qinf := 3., 1.
	require.NoError(t, s.CalcSolution(alpha, qinf))
	require.NoError(t, s.MakeWakePanels(alpha, qinf, 0))
	N := s.NNodes()
	src := make([]float64, N-1)
	for i := range src {
		src[i] = 0.02
	}
	require.NoError(t, s.SetAirfoilSourceStrengths(src))
	wsrc := make([]float64, s.NWakePanels())
	for k := range wsrc {
		wsrc[k] = 0.01
	}
	require.NoError(t, s.SetWakeSourceStrengths(wsrc))
	require.NoError(t, s.CalcSolution(alpha, qinf))

	ls := LayerSurface{s: s, Alpha: alpha, Qinf: qinf, ILE: s.GetLEIndex()}
	assert.Equal(t, N, ls.NNodes())
	h := 2.e-3
	for _, i := range []int{0, 10, ls.ILE, 60, N - 1} {
		n := s.Node(i)
		pt := r2.Add(n.Pos, r2.Scale(h+s.offsetDistance(i), n.Normal))
		without := math.Abs(r2.Dot(s.GetVelocity(alpha, qinf, pt, false), n.Tangent))
		with := math.Abs(r2.Dot(s.GetVelocity(alpha, qinf, pt, true), n.Tangent))
		// Edge velocity is the vortex sheet flow, the injected sources stay out
		assert.Equal(t, without, ls.EdgeVelocity(i, h), "node %d", i)
		assert.NotEqual(t, with, ls.EdgeVelocity(i, h), "node %d", i)
	}

	_, err := BlasiusLayer{Coef: 1}.Displacement(LayerSurface{})
	assert.Equal(t, ErrDegenerateLeadingEdge, err)
}

// lockCheckLayer records whether the model was locked while it ran
type lockCheckLayer struct {
	s      *Stream2D
	locked bool
	iLE    int
}

func (l *lockCheckLayer) Displacement(ls LayerSurface) (in ViscousInput, err error) {
	if l.s.mu.TryRLock() {
		l.s.mu.RUnlock()
	} else {
		l.locked = true
	}
	l.iLE = ls.ILE
	in.DStar = make([]float64, ls.NNodes())
	in.Ue = make([]float64, ls.NNodes())
	return
}

func TestApplyBoundaryLayerLocking(t *testing.T) {
	s := newSolved(t, "0012", 30, true)
	layer := &lockCheckLayer{s: s}
	require.NoError(t, s.ApplyBoundaryLayer(layer, 4, 1))
	assert.True(t, layer.locked)
	assert.Equal(t, s.GetLEIndex(), layer.iLE)

	// Boundary layer passes interleave with other writers without tearing the state
	var wg sync.WaitGroup
	for w := 0; w < 3; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for n := 0; n < 5; n++ {
				alpha := 2. + float64(w)
				_, err := s.MakeBlasiusSigma(alpha, 1, 1, false)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for alpha := 1.; alpha <= 5; alpha++ {
			assert.NoError(t, s.CalcSolution(alpha, 1))
			assert.NoError(t, s.MakeWakePanels(alpha, 1, 0))
		}
	}()
	wg.Wait()
	_, err := s.MakeBlasiusSigma(3, 1, 1, false)
	require.NoError(t, err)
	N := s.NNodes()
	assert.InDelta(t, 0., s.Gamma(0)+s.Gamma(N-1), 1.e-9)
	res, err := s.StreamResiduals(3, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0., maxAbs(res), 1.e-6)
}

func absInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
