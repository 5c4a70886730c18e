package geometry2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Foil is an ordered airfoil boundary. Nodes run counter clockwise from the
// upper trailing edge around the leading edge to the lower trailing edge, so
// the outward normal of each segment is its direction rotated clockwise.
type Foil struct {
	Name    string
	Nodes   []r2.Vec
	Normals []r2.Vec // Unit outward normal at each node
}

func NewFoil(name string, nodes []r2.Vec) (f *Foil, err error) {
	if len(nodes) < 3 {
		err = fmt.Errorf("foil %q needs at least 3 nodes, have %d", name, len(nodes))
		return
	}
	f = &Foil{
		Name:  name,
		Nodes: make([]r2.Vec, len(nodes)),
	}
	copy(f.Nodes, nodes)
	f.ComputeNormals()
	return
}

func (f *Foil) N() int { return len(f.Nodes) }

// ComputeNormals averages the outward normals of the segments adjoining each node
func (f *Foil) ComputeNormals() {
	var (
		n = len(f.Nodes)
	)
	segNormal := func(i int) r2.Vec {
		d := r2.Sub(f.Nodes[i+1], f.Nodes[i])
		if r2.Norm(d) == 0 {
			return r2.Vec{}
		}
		return r2.Unit(r2.Vec{X: d.Y, Y: -d.X})
	}
	f.Normals = make([]r2.Vec, n)
	for i := 0; i < n; i++ {
		var sum r2.Vec
		if i > 0 {
			sum = r2.Add(sum, segNormal(i-1))
		}
		if i < n-1 {
			sum = r2.Add(sum, segNormal(i))
		}
		if r2.Norm(sum) > 0 {
			f.Normals[i] = r2.Unit(sum)
		}
	}
}

// Bounds returns the x extent of the section
func (f *Foil) Bounds() (xMin, xMax float64) {
	xMin, xMax = math.Inf(1), math.Inf(-1)
	for _, p := range f.Nodes {
		xMin = math.Min(xMin, p.X)
		xMax = math.Max(xMax, p.X)
	}
	return
}

func (f *Foil) TEMidpoint() r2.Vec {
	return r2.Scale(0.5, r2.Add(f.Nodes[0], f.Nodes[len(f.Nodes)-1]))
}

// LeadingEdge is the node farthest from the trailing edge midpoint
func (f *Foil) LeadingEdge() (iLE int) {
	var (
		te   = f.TEMidpoint()
		dMax float64
	)
	for i, p := range f.Nodes {
		if d := r2.Norm(r2.Sub(p, te)); d > dMax {
			dMax, iLE = d, i
		}
	}
	return
}

func (f *Foil) Chord() float64 {
	return r2.Norm(r2.Sub(f.Nodes[f.LeadingEdge()], f.TEMidpoint()))
}

// IsSharpTE compares the trailing edge gap to a thousandth of the chord
func (f *Foil) IsSharpTE() bool {
	var (
		d   = r2.Sub(f.Nodes[len(f.Nodes)-1], f.Nodes[0])
		tol = f.Chord() / 1000.
	)
	return math.Abs(d.X) < tol && math.Abs(d.Y) < tol
}

// TEBisector points downstream, halfway between the last upper and lower surface segments
func (f *Foil) TEBisector() r2.Vec {
	var (
		n     = len(f.Nodes)
		upper = r2.Sub(f.Nodes[0], f.Nodes[1])
		lower = r2.Sub(f.Nodes[n-1], f.Nodes[n-2])
	)
	if r2.Norm(upper) > 0 {
		upper = r2.Unit(upper)
	}
	if r2.Norm(lower) > 0 {
		lower = r2.Unit(lower)
	}
	bis := r2.Add(upper, lower)
	if r2.Norm(bis) == 0 {
		return r2.Vec{X: 1}
	}
	return r2.Unit(bis)
}

// Offset moves every node along its normal, used to build displacement bodies
func (f *Foil) Offset(name string, dist []float64) (fo *Foil, err error) {
	if len(dist) != len(f.Nodes) {
		err = fmt.Errorf("offset needs %d distances, have %d", len(f.Nodes), len(dist))
		return
	}
	nodes := make([]r2.Vec, len(f.Nodes))
	for i, p := range f.Nodes {
		nodes[i] = r2.Add(p, r2.Scale(dist[i], f.Normals[i]))
	}
	return NewFoil(name, nodes)
}
