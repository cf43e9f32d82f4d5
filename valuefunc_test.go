package gompc

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
)

// quadraticSolution covers the box [-2,2]^2 with the single piece
// V(x) = ||x||^2.
func quadraticSolution() *ExplicitSolution {
	box := NewBox(r2.Vec{X: -2, Y: -2}, r2.Vec{X: 2, Y: 2})
	return &ExplicitSolution{Regions: []CriticalRegion{{
		Region: box,
		Input: AffineFunction{
			K: mat.NewDense(1, 2, []float64{0, 0}),
			G: mat.NewVecDense(1, []float64{0}),
		},
		Value: QuadraticFunction{
			P: mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
			Q: mat.NewVecDense(2, []float64{0, 0}),
		},
	}}}
}

func TestSampleValueFunction(t *testing.T) {
	sol := quadraticSolution()
	grid, err := sampleValueFunction(sol, r2.Vec{X: -2, Y: -2}, r2.Vec{X: 2, Y: 2}, 5)
	require.NoError(t, err)

	c, r := grid.Dims()
	assert.Equal(t, 5, c)
	assert.Equal(t, 5, r)

	// Center of the grid is the origin.
	assert.InDelta(t, 0, grid.Z(2, 2), 1e-12)
	// Corners carry the maximum, 4 + 4.
	assert.InDelta(t, 8, grid.Z(0, 0), 1e-12)
	assert.InDelta(t, 0, grid.Min(), 1e-12)
	assert.InDelta(t, 8, grid.Max(), 1e-12)
	assert.InDelta(t, -2, grid.X(0), 1e-12)
	assert.InDelta(t, 2, grid.Y(4), 1e-12)
}

func TestPlotValueFunction(t *testing.T) {
	sol := quadraticSolution()
	prog := &MultiParametricQuadraticProgram{
		FeasibleSet: NewBox(r2.Vec{X: -2, Y: -2}, r2.Vec{X: 2, Y: 2}),
	}

	p := plot.New()
	cm, err := PlotValueFunction(p, prog, sol, ValueFunctionOptions{Resolution: 9})
	require.NoError(t, err)
	assert.Equal(t, "V*(x)", p.Title.Text)
	assert.Equal(t, "x_1", p.X.Label.Text)
	assert.Equal(t, "x_2", p.Y.Label.Text)
	assert.InDelta(t, 0, cm.Min(), 1e-12)
	assert.InDelta(t, 8, cm.Max(), 1e-12)
}

func TestPlotValueFunctionErrors(t *testing.T) {
	prog := &MultiParametricQuadraticProgram{
		FeasibleSet: NewBox(r2.Vec{X: -2, Y: -2}, r2.Vec{X: 2, Y: 2}),
	}

	_, err := PlotValueFunction(plot.New(), prog, &ExplicitSolution{}, ValueFunctionOptions{})
	assert.ErrorIs(t, err, ErrNoData)

	a := mat.NewDense(1, 3, []float64{1, 0, 0})
	b := mat.NewVecDense(1, []float64{1})
	ph, err := NewPolyhedron(a, b)
	require.NoError(t, err)
	sol := &ExplicitSolution{Regions: []CriticalRegion{{Region: ph}}}
	_, err = PlotValueFunction(plot.New(), prog, sol, ValueFunctionOptions{})
	assert.ErrorIs(t, err, ErrDimension)

	_, err = PlotValueFunction(plot.New(), &MultiParametricQuadraticProgram{}, quadraticSolution(), ValueFunctionOptions{})
	assert.Error(t, err)
}

func TestPlotValueFunctionCache(t *testing.T) {
	sol := quadraticSolution()
	prog := &MultiParametricQuadraticProgram{
		FeasibleSet: NewBox(r2.Vec{X: -2, Y: -2}, r2.Vec{X: 2, Y: 2}),
	}
	dir := t.TempDir()
	opt := ValueFunctionOptions{Resolution: 9, CacheDir: dir}

	_, err := PlotValueFunction(plot.New(), prog, sol, opt)
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// The second render reads the stored grid and reaches the same range.
	p := plot.New()
	cm, err := PlotValueFunction(p, prog, sol, opt)
	require.NoError(t, err)
	assert.InDelta(t, 8, cm.Max(), 1e-12)
}
