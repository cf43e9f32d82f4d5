package gompc

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// geomEps is the tolerance for cross products and determinants. Values below
// this threshold are treated as zero (parallel facets, coincident vertices).
const geomEps = 1e-9

// feasTol is the relative slack allowed when testing A x <= b. Vertex
// enumeration intersects facet pairs exactly, so membership of the result in
// every other halfplane must absorb rounding error.
const feasTol = 1e-7

var (
	ErrEmpty     = errors.New("polyhedron is empty")
	ErrUnbounded = errors.New("polyhedron is unbounded")
)

// Polyhedron is a convex polyhedron in H-representation, {x : A x <= b}.
// It is the geometric carrier of a critical region; the solver that produced
// A and b lives elsewhere.
type Polyhedron struct {
	a *mat.Dense
	b *mat.VecDense

	verts []r2.Vec // lazily enumerated, counter-clockwise
}

// NewPolyhedron wraps the halfplane description A x <= b.
func NewPolyhedron(a *mat.Dense, b *mat.VecDense) (*Polyhedron, error) {
	m, _ := a.Dims()
	if b.Len() != m {
		return nil, fmt.Errorf("polyhedron: A has %d rows but b has %d entries", m, b.Len())
	}
	return &Polyhedron{a: a, b: b}, nil
}

// NewBox returns the axis-aligned box with corners lo and hi.
func NewBox(lo, hi r2.Vec) *Polyhedron {
	a := mat.NewDense(4, 2, []float64{
		1, 0,
		-1, 0,
		0, 1,
		0, -1,
	})
	b := mat.NewVecDense(4, []float64{hi.X, -lo.X, hi.Y, -lo.Y})
	return &Polyhedron{a: a, b: b}
}

// Dim returns the dimension of the ambient space.
func (ph *Polyhedron) Dim() int {
	_, n := ph.a.Dims()
	return n
}

// Contains reports whether x satisfies every halfplane up to a small
// relative tolerance.
func (ph *Polyhedron) Contains(x mat.Vector) bool {
	m, n := ph.a.Dims()
	if x.Len() != n {
		return false
	}
	for i := 0; i < m; i++ {
		dot := 0.0
		for j := 0; j < n; j++ {
			dot += ph.a.At(i, j) * x.AtVec(j)
		}
		bi := ph.b.AtVec(i)
		if dot > bi+feasTol*(1+math.Abs(bi)) {
			return false
		}
	}
	return true
}

// Bounded reports whether the polyhedron has a trivial recession cone.
// Only 2-dimensional polyhedra are supported.
func (ph *Polyhedron) Bounded() (bool, error) {
	m, n := ph.a.Dims()
	if n != 2 {
		return false, fmt.Errorf("boundedness check requires a 2-dimensional polyhedron, got %d", n)
	}
	if m < 3 {
		return false, nil
	}
	// A nontrivial recession cone {d : A d <= 0} in the plane contains an
	// extreme ray tangent to one of the facets, so testing the rotated
	// facet normals covers every case.
	for i := 0; i < m; i++ {
		for _, d := range [2]r2.Vec{
			{X: ph.a.At(i, 1), Y: -ph.a.At(i, 0)},
			{X: -ph.a.At(i, 1), Y: ph.a.At(i, 0)},
		} {
			norm := math.Hypot(d.X, d.Y)
			if norm < geomEps {
				continue
			}
			d = r2.Scale(1/norm, d)
			recedes := true
			for k := 0; k < m; k++ {
				if ph.a.At(k, 0)*d.X+ph.a.At(k, 1)*d.Y > geomEps {
					recedes = false
					break
				}
			}
			if recedes {
				return false, nil
			}
		}
	}
	return true, nil
}

// Vertices enumerates the vertices of a bounded 2-dimensional polyhedron in
// counter-clockwise order. The result is cached on first use.
func (ph *Polyhedron) Vertices() ([]r2.Vec, error) {
	if ph.verts != nil {
		return ph.verts, nil
	}
	m, n := ph.a.Dims()
	if n != 2 {
		return nil, fmt.Errorf("vertex enumeration requires a 2-dimensional polyhedron, got %d", n)
	}
	bounded, err := ph.Bounded()
	if err != nil {
		return nil, err
	}
	if !bounded {
		return nil, ErrUnbounded
	}

	// Intersect every facet pair and keep the feasible intersections.
	var verts []r2.Vec
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			a11, a12 := ph.a.At(i, 0), ph.a.At(i, 1)
			a21, a22 := ph.a.At(j, 0), ph.a.At(j, 1)
			det := a11*a22 - a12*a21
			if math.Abs(det) < geomEps {
				continue
			}
			b1, b2 := ph.b.AtVec(i), ph.b.AtVec(j)
			v := r2.Vec{
				X: (b1*a22 - a12*b2) / det,
				Y: (a11*b2 - b1*a21) / det,
			}
			if !ph.Contains(mat.NewVecDense(2, []float64{v.X, v.Y})) {
				continue
			}
			dup := false
			for _, w := range verts {
				if math.Hypot(v.X-w.X, v.Y-w.Y) < feasTol {
					dup = true
					break
				}
			}
			if !dup {
				verts = append(verts, v)
			}
		}
	}
	if len(verts) == 0 {
		return nil, ErrEmpty
	}
	if len(verts) < 3 {
		return nil, fmt.Errorf("polyhedron is not full-dimensional (%d vertices)", len(verts))
	}

	// Order counter-clockwise around the centroid.
	var c r2.Vec
	for _, v := range verts {
		c = r2.Add(c, v)
	}
	c = r2.Scale(1/float64(len(verts)), c)
	sort.Slice(verts, func(i, j int) bool {
		ai := math.Atan2(verts[i].Y-c.Y, verts[i].X-c.X)
		aj := math.Atan2(verts[j].Y-c.Y, verts[j].X-c.X)
		return ai < aj
	})

	ph.verts = verts
	return verts, nil
}

// Center returns the centroid of the vertex hull. It marks where region
// annotations are placed, nothing more.
func (ph *Polyhedron) Center() (r2.Vec, error) {
	verts, err := ph.Vertices()
	if err != nil {
		return r2.Vec{}, err
	}
	var c r2.Vec
	for _, v := range verts {
		c = r2.Add(c, v)
	}
	return r2.Scale(1/float64(len(verts)), c), nil
}

// BoundingBox returns the smallest axis-aligned box containing the
// polyhedron.
func (ph *Polyhedron) BoundingBox() (lo, hi r2.Vec, err error) {
	verts, err := ph.Vertices()
	if err != nil {
		return r2.Vec{}, r2.Vec{}, err
	}
	lo, hi = verts[0], verts[0]
	for _, v := range verts[1:] {
		lo.X = math.Min(lo.X, v.X)
		lo.Y = math.Min(lo.Y, v.Y)
		hi.X = math.Max(hi.X, v.X)
		hi.Y = math.Max(hi.Y, v.Y)
	}
	return lo, hi, nil
}

// Plot adds the filled polygon of the polyhedron to p. A nil fill draws the
// outline only.
func (ph *Polyhedron) Plot(p *plot.Plot, fill color.Color) error {
	verts, err := ph.Vertices()
	if err != nil {
		return fmt.Errorf("plotting polyhedron: %w", err)
	}
	xys := make(plotter.XYs, len(verts))
	for i, v := range verts {
		xys[i].X = v.X
		xys[i].Y = v.Y
	}
	poly, err := plotter.NewPolygon(xys)
	if err != nil {
		return fmt.Errorf("plotting polyhedron: %w", err)
	}
	if fill != nil {
		poly.Color = fill
	}
	poly.LineStyle.Color = color.Black
	poly.LineStyle.Width = vg.Points(0.75)
	p.Add(poly)
	return nil
}
