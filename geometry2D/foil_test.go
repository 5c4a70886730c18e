package geometry2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNACA4(t *testing.T) {
	{ // Symmetric, closed trailing edge
		f, err := NACA4("0012", 40, true)
		require.NoError(t, err)
		assert.Equal(t, 81, f.N())
		assert.True(t, f.IsSharpTE())
		assert.InDelta(t, 1., f.Chord(), 1.e-12)
		assert.Equal(t, 40, f.LeadingEdge())
		// Mirror image about the chord line
		for i := 0; i < f.N(); i++ {
			j := f.N() - 1 - i
			assert.InDelta(t, f.Nodes[i].X, f.Nodes[j].X, 1.e-14)
			assert.InDelta(t, f.Nodes[i].Y, -f.Nodes[j].Y, 1.e-14)
		}
		// Maximum thickness of 12% near 30% chord
		var tMax float64
		for i := 0; i < 40; i++ {
			tMax = math.Max(tMax, 2*f.Nodes[i].Y)
		}
		assert.InDelta(t, 0.12, tMax, 2.e-3)
		assert.InDelta(t, 1., f.TEBisector().X, 1.e-12)
	}
	{ // Blunt trailing edge
		f, err := NACA4("0012", 40, false)
		require.NoError(t, err)
		assert.False(t, f.IsSharpTE())
		gap := r2.Norm(r2.Sub(f.Nodes[0], f.Nodes[f.N()-1]))
		assert.InDelta(t, 0.00252, gap, 1.e-4)
	}
	{ // Cambered section lies mostly above the chord line
		f, err := NACA4("2412", 30, true)
		require.NoError(t, err)
		xMin, xMax := f.Bounds()
		assert.InDelta(t, 0., xMin, 1.e-3)
		assert.InDelta(t, 1., xMax, 1.e-12)
		var sum float64
		for _, p := range f.Nodes {
			sum += p.Y
		}
		assert.True(t, sum > 0)
	}
	{ // Bad input
		_, err := NACA4("12", 40, true)
		assert.Error(t, err)
		_, err = NACA4("00x2", 40, true)
		assert.Error(t, err)
		_, err = NACA4("0000", 40, true)
		assert.Error(t, err)
	}
}

func TestFoilNormals(t *testing.T) {
	f, err := Circle(101)
	require.NoError(t, err)
	assert.True(t, f.IsSharpTE())
	center := r2.Vec{X: 0.5}
	for i := 1; i < f.N()-1; i++ {
		radial := r2.Unit(r2.Sub(f.Nodes[i], center))
		// Outward normals of a circle are radial
		assert.InDelta(t, 1., r2.Dot(radial, f.Normals[i]), 1.e-9)
	}
	assert.InDelta(t, 1., f.Chord(), 1.e-3)

	off, err := f.Offset("grown", ConstDistances(f.N(), 0.1))
	require.NoError(t, err)
	assert.InDelta(t, 0.6, r2.Norm(r2.Sub(off.Nodes[25], center)), 1.e-9)
	_, err = f.Offset("bad", []float64{1})
	assert.Error(t, err)

	_, err = NewFoil("tiny", []r2.Vec{{X: 0}, {X: 1}})
	assert.Error(t, err)
	_, err = Circle(3)
	assert.Error(t, err)
}

func ConstDistances(n int, d float64) (dist []float64) {
	dist = make([]float64, n)
	for i := range dist {
		dist[i] = d
	}
	return
}
