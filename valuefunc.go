package gompc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
)

// ValueFunctionOptions configures PlotValueFunction.
type ValueFunctionOptions struct {
	// Resolution is the number of grid points per axis, 0 means 100.
	Resolution int
	// Levels is the number of contour levels, 0 means 10.
	Levels int
	// CacheDir, if non-empty, stores sampled grids keyed by the solution
	// and the sampling window, so repeated renders skip the evaluation.
	CacheDir string
}

// valueGrid exposes a sampled value function as a plotter grid.
type valueGrid struct {
	vals       [][]float64 // vals[col][row]
	xs, ys     []float64
	vmin, vmax float64
}

func (g *valueGrid) Dims() (c, r int)   { return len(g.xs), len(g.ys) }
func (g *valueGrid) Z(c, r int) float64 { return g.vals[c][r] }
func (g *valueGrid) X(c int) float64    { return g.xs[c] }
func (g *valueGrid) Y(r int) float64    { return g.ys[r] }
func (g *valueGrid) Min() float64       { return g.vmin }
func (g *valueGrid) Max() float64       { return g.vmax }

// gridData is the gob image of a sampled grid.
type gridData struct {
	Vals       [][]float64
	VMin, VMax float64
}

// sampleValueFunction evaluates V* on a res-by-res grid over [lo, hi].
// Points outside the partition take the largest sampled value, so the
// contour tracer never meets a hole; the feasible-set outline drawn under
// the contours marks the true domain.
func sampleValueFunction(sol *ExplicitSolution, lo, hi r2.Vec, res int) (*valueGrid, error) {
	xs := make([]float64, res)
	ys := make([]float64, res)
	floats.Span(xs, lo.X, hi.X)
	floats.Span(ys, lo.Y, hi.Y)

	vals := make([][]float64, res)
	vmin, vmax := math.Inf(1), math.Inf(-1)
	x := mat.NewVecDense(2, nil)
	for c := 0; c < res; c++ {
		vals[c] = make([]float64, res)
		for r := 0; r < res; r++ {
			x.SetVec(0, xs[c])
			x.SetVec(1, ys[r])
			v, ok := sol.V(x)
			if !ok {
				vals[c][r] = math.NaN()
				continue
			}
			vals[c][r] = v
			vmin = math.Min(vmin, v)
			vmax = math.Max(vmax, v)
		}
	}
	if math.IsInf(vmax, -1) {
		return nil, fmt.Errorf("no grid point lies in the partition")
	}
	for c := range vals {
		for r := range vals[c] {
			if math.IsNaN(vals[c][r]) {
				vals[c][r] = vmax
			}
		}
	}
	return &valueGrid{vals: vals, xs: xs, ys: ys, vmin: vmin, vmax: vmax}, nil
}

// gridSignature flattens everything the sampled grid depends on: the region
// geometry and the quadratic value pieces.
func gridSignature(sol *ExplicitSolution) []float64 {
	var sig []float64
	for i := range sol.Regions {
		cr := &sol.Regions[i]
		sig = append(sig, cr.Region.a.RawMatrix().Data...)
		sig = append(sig, cr.Region.b.RawVector().Data...)
		sig = append(sig, cr.Value.P.RawMatrix().Data...)
		sig = append(sig, cr.Value.Q.RawVector().Data...)
		sig = append(sig, cr.Value.C)
	}
	return sig
}

// PlotValueFunction plots the level sets of the optimal value function
// V*(x) of a 2d explicit MPC solution over the bounding box of the
// program's feasible set. The feasible set is outlined underneath. The
// returned color map is scaled to the sampled range, for an optional color
// bar.
func PlotValueFunction(p *plot.Plot, prog *MultiParametricQuadraticProgram, sol *ExplicitSolution, opt ValueFunctionOptions) (palette.ColorMap, error) {
	if len(sol.Regions) == 0 {
		return nil, fmt.Errorf("value function: %w", ErrNoData)
	}
	if sol.Dim() != 2 {
		return nil, fmt.Errorf("can plot only 2-dimensional partitions: %w", ErrDimension)
	}
	fs, err := prog.GetFeasibleSet()
	if err != nil {
		return nil, fmt.Errorf("value function: %w", err)
	}
	lo, hi, err := fs.BoundingBox()
	if err != nil {
		return nil, fmt.Errorf("value function: %w", err)
	}

	res := opt.Resolution
	if res <= 0 {
		res = 100
	}
	nLevels := opt.Levels
	if nLevels <= 0 {
		nLevels = 10
	}

	var grid *valueGrid
	if opt.CacheDir != "" {
		ck := makeCacheKey(gridSignature(sol), lo.X, lo.Y, hi.X, hi.Y, res)
		var cached gridData
		if ck.load(opt.CacheDir, &cached) {
			xs := make([]float64, res)
			ys := make([]float64, res)
			floats.Span(xs, lo.X, hi.X)
			floats.Span(ys, lo.Y, hi.Y)
			grid = &valueGrid{vals: cached.Vals, xs: xs, ys: ys, vmin: cached.VMin, vmax: cached.VMax}
		} else {
			grid, err = sampleValueFunction(sol, lo, hi, res)
			if err != nil {
				return nil, fmt.Errorf("value function: %w", err)
			}
			// The cache is best effort: a failed save only costs the next
			// render a re-evaluation.
			_ = ck.save(opt.CacheDir, gridData{Vals: grid.vals, VMin: grid.vmin, VMax: grid.vmax})
		}
	} else {
		grid, err = sampleValueFunction(sol, lo, hi, res)
		if err != nil {
			return nil, fmt.Errorf("value function: %w", err)
		}
	}

	if err := fs.Plot(p, nil); err != nil {
		return nil, fmt.Errorf("value function: %w", err)
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(grid.vmin)
	cm.SetMax(grid.vmax)
	levels := make([]float64, nLevels+2)
	floats.Span(levels, grid.vmin, grid.vmax)
	contour := plotter.NewContour(grid, levels[1:len(levels)-1], cm.Palette(nLevels))
	p.Add(contour)

	p.Title.Text = "V*(x)"
	p.X.Label.Text = "x_1"
	p.Y.Label.Text = "x_2"
	return cm, nil
}
