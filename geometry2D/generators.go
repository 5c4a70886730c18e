package geometry2D

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"
)

// NACA4 builds a 4 digit section with unit chord and cosine clustering, nPerSide
// panels on each surface. A closed trailing edge uses the modified thickness
// coefficient so both surfaces meet at x = 1.
func NACA4(designation string, nPerSide int, closedTE bool) (f *Foil, err error) {
	var (
		m, p, t float64
		a4      = -0.1015
	)
	if len(designation) != 4 {
		err = fmt.Errorf("NACA designation must have 4 digits, got %q", designation)
		return
	}
	if nPerSide < 2 {
		err = fmt.Errorf("need at least 2 panels per side, got %d", nPerSide)
		return
	}
	var digits [3]int
	for i, s := range []string{designation[0:1], designation[1:2], designation[2:4]} {
		if digits[i], err = strconv.Atoi(s); err != nil {
			err = fmt.Errorf("bad NACA designation %q: %w", designation, err)
			return
		}
	}
	m, p, t = float64(digits[0])/100., float64(digits[1])/10., float64(digits[2])/100.
	if t <= 0 {
		err = fmt.Errorf("NACA %s has zero thickness", designation)
		return
	}
	if closedTE {
		a4 = -0.1036
	}
	surface := func(x float64) (xu, yu, xl, yl float64) {
		yt := 5 * t * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x + a4*x*x*x*x)
		var yc, dyc float64
		if m > 0 && p > 0 {
			if x < p {
				yc = m / (p * p) * (2*p*x - x*x)
				dyc = 2 * m / (p * p) * (p - x)
			} else {
				yc = m / ((1 - p) * (1 - p)) * ((1 - 2*p) + 2*p*x - x*x)
				dyc = 2 * m / ((1 - p) * (1 - p)) * (p - x)
			}
		}
		th := math.Atan(dyc)
		xu, yu = x-yt*math.Sin(th), yc+yt*math.Cos(th)
		xl, yl = x+yt*math.Sin(th), yc-yt*math.Cos(th)
		return
	}
	nodes := make([]r2.Vec, 0, 2*nPerSide+1)
	for i := nPerSide; i >= 0; i-- {
		x := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(nPerSide)))
		xu, yu, _, _ := surface(x)
		nodes = append(nodes, r2.Vec{X: xu, Y: yu})
	}
	for i := 1; i <= nPerSide; i++ {
		x := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(nPerSide)))
		_, _, xl, yl := surface(x)
		nodes = append(nodes, r2.Vec{X: xl, Y: yl})
	}
	if closedTE {
		// Force exact closure, the polynomial leaves a residue near 1e-17
		nodes[0].Y, nodes[len(nodes)-1].Y = 0, 0
	}
	return NewFoil("NACA "+designation, nodes)
}

// Circle places nNodes on a circle of unit diameter spanning 0 <= x <= 1. The
// first and last nodes coincide at x = 1, which the solver treats as a sharp
// trailing edge.
func Circle(nNodes int) (f *Foil, err error) {
	if nNodes < 4 {
		err = fmt.Errorf("circle needs at least 4 nodes, got %d", nNodes)
		return
	}
	nodes := make([]r2.Vec, nNodes)
	for i := range nodes {
		phi := 2 * math.Pi * float64(i) / float64(nNodes-1)
		nodes[i] = r2.Vec{X: 0.5 + 0.5*math.Cos(phi), Y: 0.5 * math.Sin(phi)}
	}
	nodes[nNodes-1] = nodes[0]
	return NewFoil(fmt.Sprintf("Circle %d", nNodes), nodes)
}
